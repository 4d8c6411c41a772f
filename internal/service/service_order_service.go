package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/repository"
	"github.com/marianorefrig/mariano_api/internal/sse"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

// ServiceOrderService manages repair tickets.
type ServiceOrderService struct {
	orderRepo *repository.ServiceOrderRepository
	notifier  sse.Notifier
}

// NewServiceOrderService constructs a ServiceOrderService.
func NewServiceOrderService(orderRepo *repository.ServiceOrderRepository) *ServiceOrderService {
	return &ServiceOrderService{orderRepo: orderRepo, notifier: sse.NopNotifier{}}
}

// SetNotifier sets the SSE notifier for live dashboard updates.
func (s *ServiceOrderService) SetNotifier(notifier sse.Notifier) {
	s.notifier = notifier
}

// CreateServiceOrderRequest represents the request to open a service order.
// Status defaults to aberta and priority to media.
type CreateServiceOrderRequest struct {
	CustomerID   string             `json:"clienteId"`
	TechnicianID string             `json:"tecnicoId"`
	Tecnico      string             `json:"tecnico"` // older clients; used when tecnicoId is empty
	Equipment    string             `json:"equipamento"`
	Description  string             `json:"descricao"`
	Status       models.OrderStatus `json:"status"`
	Priority     models.Priority    `json:"prioridade"`
	Value        decimal.Decimal    `json:"valor"`
}

// OrderFilter narrows ListServiceOrders. Empty fields match everything.
type OrderFilter struct {
	Query    string
	Status   models.OrderStatus
	Priority models.Priority
}

func (f OrderFilter) validate() error {
	if f.Status != "" && !f.Status.Valid() {
		return utils.NewValidationError("status", "must be one of [aberta em_andamento finalizada cancelada]")
	}
	switch f.Priority {
	case "", models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return nil
	}
	return utils.NewValidationError("prioridade", "must be one of [baixa media alta]")
}

func (s *ServiceOrderService) ListServiceOrders(ctx context.Context, f OrderFilter) ([]models.ServiceOrder, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	all, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.ServiceOrder, 0, len(all))
	for _, o := range all {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.Priority != "" && o.Priority != f.Priority {
			continue
		}
		if !o.Matches(f.Query) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *ServiceOrderService) GetServiceOrder(ctx context.Context, id string) (*models.ServiceOrder, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *ServiceOrderService) CreateServiceOrder(ctx context.Context, req *CreateServiceOrderRequest) (*models.ServiceOrder, error) {
	technicianID := req.TechnicianID
	if technicianID == "" {
		technicianID = req.Tecnico
	}
	o, err := s.orderRepo.Create(ctx, models.ServiceOrder{
		CustomerID:   req.CustomerID,
		TechnicianID: technicianID,
		Equipment:    req.Equipment,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		Value:        req.Value,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("order_id", o.ID).Str("status", string(o.Status)).Msg("service order created")
	return o, nil
}

func (s *ServiceOrderService) UpdateServiceOrder(ctx context.Context, id string, patch models.ServiceOrderPatch) (*models.ServiceOrder, error) {
	o, err := s.orderRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	log.Info().Str("order_id", id).Str("status", string(o.Status)).Msg("service order updated")
	if patch.Status != nil {
		s.notifier.NotifyOrderStatusChanged(o)
	}
	return o, nil
}

// FinalizeServiceOrder completes an order and stamps finalizadoEm.
func (s *ServiceOrderService) FinalizeServiceOrder(ctx context.Context, id string) (*models.ServiceOrder, error) {
	o, err := s.orderRepo.Finalize(ctx, id)
	if err != nil {
		return nil, err
	}
	log.Info().Str("order_id", id).Msg("service order finalized")
	s.notifier.NotifyOrderStatusChanged(o)
	return o, nil
}

func (s *ServiceOrderService) DeleteServiceOrder(ctx context.Context, id string) (bool, error) {
	removed, err := s.orderRepo.Delete(ctx, id)
	if err == nil && removed {
		log.Info().Str("order_id", id).Msg("service order deleted")
	}
	return removed, err
}
