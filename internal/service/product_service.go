package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/repository"
)

// ProductService handles inventory management.
type ProductService struct {
	productRepo *repository.ProductRepository
}

// NewProductService constructs a ProductService.
func NewProductService(productRepo *repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductRequest represents the request to create a product.
type CreateProductRequest struct {
	Name     string          `json:"nome"`
	Code     string          `json:"codigo"`
	Quantity int             `json:"quantidade"`
	MinStock int             `json:"minimo"`
	Price    decimal.Decimal `json:"preco"`
}

// ListProducts returns products whose name or code contains query.
func (s *ProductService) ListProducts(ctx context.Context, query string) ([]models.Product, error) {
	all, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}
	out := make([]models.Product, 0, len(all))
	for _, p := range all {
		if p.Matches(query) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListLowStock returns products at or below their minimum stock.
func (s *ProductService) ListLowStock(ctx context.Context) ([]models.Product, error) {
	all, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return LowStock(all), nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	p, err := s.productRepo.Create(ctx, models.Product{
		Name:     req.Name,
		Code:     req.Code,
		Quantity: req.Quantity,
		MinStock: req.MinStock,
		Price:    req.Price,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("product_id", p.ID).Str("code", p.Code).Msg("product created")
	return p, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	p, err := s.productRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	log.Info().Str("product_id", id).Int("quantity", p.Quantity).Msg("product updated")
	return p, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) (bool, error) {
	removed, err := s.productRepo.Delete(ctx, id)
	if err == nil && removed {
		log.Info().Str("product_id", id).Msg("product deleted")
	}
	return removed, err
}

// LowStock filters products at or below their minimum stock.
func LowStock(products []models.Product) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}
