package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/repository"
)

// CustomerService handles customer business logic.
type CustomerService struct {
	customerRepo *repository.CustomerRepository
}

// NewCustomerService constructs a CustomerService.
func NewCustomerService(customerRepo *repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerRequest represents the request to create a customer.
type CreateCustomerRequest struct {
	Name    string `json:"nome"`
	Phone   string `json:"telefone"`
	Email   string `json:"email"`
	Address string `json:"endereco"`
}

// ListCustomers returns customers whose name, phone or email contains query.
func (s *CustomerService) ListCustomers(ctx context.Context, query string) ([]models.Customer, error) {
	all, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return all, nil
	}
	out := make([]models.Customer, 0, len(all))
	for _, c := range all {
		if c.Matches(query) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*models.Customer, error) {
	c, err := s.customerRepo.Create(ctx, models.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("customer_id", c.ID).Msg("customer created")
	return c, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, patch models.CustomerPatch) (*models.Customer, error) {
	c, err := s.customerRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	log.Info().Str("customer_id", id).Msg("customer updated")
	return c, nil
}

// DeleteCustomer reports whether the customer existed. Orders and sales
// keep their reference to it.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) (bool, error) {
	removed, err := s.customerRepo.Delete(ctx, id)
	if err == nil && removed {
		log.Info().Str("customer_id", id).Msg("customer deleted")
	}
	return removed, err
}
