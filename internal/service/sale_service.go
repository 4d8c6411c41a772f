package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/repository"
	"github.com/marianorefrig/mariano_api/internal/sse"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

// SaleService records point-of-sale transactions and applies them to stock.
type SaleService struct {
	saleRepo  *repository.SaleRepository
	tolerance decimal.Decimal
	notifier  sse.Notifier
}

// NewSaleService constructs a SaleService. Draft prices and totals may
// deviate from catalog values by at most tolerance.
func NewSaleService(saleRepo *repository.SaleRepository, tolerance decimal.Decimal) *SaleService {
	return &SaleService{saleRepo: saleRepo, tolerance: tolerance, notifier: sse.NopNotifier{}}
}

// SetNotifier sets the SSE notifier for live dashboard updates.
func (s *SaleService) SetNotifier(notifier sse.Notifier) {
	s.notifier = notifier
}

// ListSales returns every sale, or only those dated inside period when it is
// not nil.
func (s *SaleService) ListSales(ctx context.Context, period *utils.Period) ([]models.Sale, error) {
	sales, err := s.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return sales, nil
	}
	return FilterSales(sales, *period), nil
}

// GetSale returns utils.ErrNotFound for an unknown id.
func (s *SaleService) GetSale(ctx context.Context, id string) (*models.Sale, error) {
	return s.saleRepo.GetByID(ctx, id)
}

// CommitSale validates draft against the current catalog, decrements stock
// and records the sale in one atomic write. Prices are taken from the
// catalog; the draft's prices and total are only compared.
func (s *SaleService) CommitSale(ctx context.Context, draft models.SaleDraft) (*models.Sale, error) {
	if err := utils.ValidateStruct(draft); err != nil {
		return nil, err
	}
	sale, err := s.saleRepo.Commit(ctx, func(products []models.Product) ([]models.Product, models.Sale, error) {
		return planSale(products, draft, s.tolerance)
	})
	if err != nil {
		log.Warn().Err(err).Int("items", len(draft.Items)).Msg("sale rejected")
		return nil, err
	}
	log.Info().
		Str("sale_id", sale.ID).
		Int("items", len(sale.Items)).
		Str("total", sale.Total.StringFixed(2)).
		Str("payment", string(sale.Payment)).
		Msg("sale committed")
	s.notifier.NotifySaleCommitted(sale)
	return sale, nil
}

// planSale is the pure stock-commit step. It checks every line before
// touching stock, so a rejected draft leaves products unchanged.
func planSale(products []models.Product, draft models.SaleDraft, tolerance decimal.Decimal) ([]models.Product, models.Sale, error) {
	index := make(map[string]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}

	var unknown []utils.FieldError
	var stockErr error
	requested := make(map[string]int)
	var order []string
	items := make([]models.SaleItem, 0, len(draft.Items))
	for i, it := range draft.Items {
		pi, ok := index[it.ProductID]
		if !ok {
			unknown = append(unknown, utils.FieldError{
				Field:   fmt.Sprintf("itens[%d].produtoId", i),
				Message: "unknown product " + it.ProductID,
			})
			continue
		}
		p := products[pi]
		if it.UnitPrice != nil && exceeds(it.UnitPrice.Sub(p.Price), tolerance) {
			return nil, models.Sale{}, fmt.Errorf("%w: item %d (%s) priced %s, catalog price %s",
				utils.ErrPriceMismatch, i, p.Name, it.UnitPrice.StringFixed(2), p.Price.StringFixed(2))
		}
		// requested never exceeds stock, so the subtraction cannot overflow.
		if it.Quantity > p.Quantity-requested[p.ID] {
			if stockErr == nil {
				stockErr = fmt.Errorf("%w: %s has %d in stock, %d already requested, item %d asks for %d more",
					utils.ErrInsufficientStock, p.Name, p.Quantity, requested[p.ID], i, it.Quantity)
			}
			continue
		}
		if _, seen := requested[p.ID]; !seen {
			order = append(order, p.ID)
		}
		requested[p.ID] += it.Quantity
		items = append(items, models.SaleItem{ProductID: p.ID, Quantity: it.Quantity, UnitPrice: p.Price})
	}
	if len(unknown) > 0 {
		return nil, models.Sale{}, &utils.ValidationError{Fields: unknown}
	}

	if stockErr != nil {
		return nil, models.Sale{}, stockErr
	}

	sale := models.Sale{Items: items, Payment: draft.Payment}
	sale.Total = sale.ItemsTotal()
	if draft.Total != nil && exceeds(draft.Total.Sub(sale.Total), tolerance) {
		return nil, models.Sale{}, fmt.Errorf("%w: draft total %s, computed total %s",
			utils.ErrPriceMismatch, draft.Total.StringFixed(2), sale.Total.StringFixed(2))
	}
	if draft.CustomerID != nil && *draft.CustomerID != "" {
		id := *draft.CustomerID
		sale.CustomerID = &id
	}

	updated := make([]models.Product, len(products))
	copy(updated, products)
	for _, id := range order {
		updated[index[id]].Quantity -= requested[id]
	}
	return updated, sale, nil
}

func exceeds(diff, tolerance decimal.Decimal) bool {
	return diff.Abs().GreaterThan(tolerance)
}
