package repository

import (
	"context"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/store"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

// ServiceOrderRepository persists service orders and enforces the status
// lifecycle on every write.
type ServiceOrderRepository struct {
	db     *DB
	coll   collection[models.ServiceOrder]
	strict bool
}

// NewServiceOrderRepository creates a new ServiceOrderRepository. With strict
// set, status changes must follow the transition table.
func NewServiceOrderRepository(db *DB, strict bool) *ServiceOrderRepository {
	return &ServiceOrderRepository{
		db:     db,
		coll:   collection[models.ServiceOrder]{db: db, name: store.Orders},
		strict: strict,
	}
}

func (r *ServiceOrderRepository) List(ctx context.Context) ([]models.ServiceOrder, error) {
	return r.coll.all(ctx)
}

func (r *ServiceOrderRepository) GetByID(ctx context.Context, id string) (*models.ServiceOrder, error) {
	o, err := r.coll.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create assigns id and creation time. Status defaults to aberta and
// priority to media; an order created as finalizada is stamped as completed.
func (r *ServiceOrderRepository) Create(ctx context.Context, o models.ServiceOrder) (*models.ServiceOrder, error) {
	now := r.db.now()
	o.ID = r.db.newID()
	o.CreatedAt = now
	o.CompletedAt = nil
	if o.Status == "" {
		o.Status = models.OrderOpen
	}
	if o.Priority == "" {
		o.Priority = models.PriorityMedium
	}
	if o.Status == models.OrderCompleted {
		o.CompletedAt = &now
	}
	created, err := r.coll.insert(ctx, o)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update shallow-merges patch. A status change goes through the lifecycle
// rules and keeps finalizadoEm consistent with the status.
func (r *ServiceOrderRepository) Update(ctx context.Context, id string, patch models.ServiceOrderPatch) (*models.ServiceOrder, error) {
	o, err := r.coll.update(ctx, id, func(o *models.ServiceOrder) error {
		return patch.Apply(o, r.db.now(), r.strict)
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Finalize moves an order to finalizada and stamps the completion time.
// Orders already finalizada or cancelada are rejected.
func (r *ServiceOrderRepository) Finalize(ctx context.Context, id string) (*models.ServiceOrder, error) {
	o, err := r.coll.update(ctx, id, func(o *models.ServiceOrder) error {
		if o.Status.IsTerminal() {
			return utils.ErrInvalidTransition
		}
		return o.TransitionTo(models.OrderCompleted, r.db.now(), r.strict)
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ServiceOrderRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.coll.remove(ctx, id)
}
