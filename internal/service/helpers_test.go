package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/repository"
	"github.com/marianorefrig/mariano_api/internal/store"
)

var fixedNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

type testEnv struct {
	db          *repository.DB
	clock       *time.Time
	customers   *CustomerService
	products    *ProductService
	technicians *TechnicianService
	orders      *ServiceOrderService
	sales       *SaleService
	reports     *ReportService
	exports     *ExportService
	productRepo *repository.ProductRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := fixedNow
	var n int64
	db := repository.NewDB(
		store.NewFileStore(filepath.Join(t.TempDir(), "db.json")),
		repository.WithIDFunc(func() string { return fmt.Sprintf("id-%03d", atomic.AddInt64(&n, 1)) }),
		repository.WithClock(func() time.Time { return clock }),
	)
	repos := ReportRepositories{
		Customers:   repository.NewCustomerRepository(db),
		Products:    repository.NewProductRepository(db),
		Technicians: repository.NewTechnicianRepository(db),
		Orders:      repository.NewServiceOrderRepository(db, true),
		Sales:       repository.NewSaleRepository(db),
	}
	env := &testEnv{
		db:          db,
		clock:       &clock,
		customers:   NewCustomerService(repos.Customers),
		products:    NewProductService(repos.Products),
		technicians: NewTechnicianService(repos.Technicians),
		orders:      NewServiceOrderService(repos.Orders),
		sales:       NewSaleService(repos.Sales, decimal.RequireFromString("0.01")),
		productRepo: repos.Products,
	}
	env.reports = NewReportService(repos, time.UTC, func() time.Time { return clock })
	env.exports = NewExportService(env.reports, repos.Customers)
	return env
}

// setClock moves the time seen by repositories and reports.
func (e *testEnv) setClock(t time.Time) { *e.clock = t }

func (e *testEnv) createProduct(t *testing.T, p models.Product) *models.Product {
	t.Helper()
	created, err := e.products.CreateProduct(context.Background(), &CreateProductRequest{
		Name:     p.Name,
		Code:     p.Code,
		Quantity: p.Quantity,
		MinStock: p.MinStock,
		Price:    p.Price,
	})
	require.NoError(t, err)
	return created
}

type recordingNotifier struct {
	sales    []string
	orders   []string
	lowStock [][]string
}

func (r *recordingNotifier) NotifySaleCommitted(s *models.Sale) { r.sales = append(r.sales, s.ID) }

func (r *recordingNotifier) NotifyOrderStatusChanged(o *models.ServiceOrder) {
	r.orders = append(r.orders, o.ID+":"+string(o.Status))
}

func (r *recordingNotifier) NotifyLowStock(products []models.Product) {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	r.lowStock = append(r.lowStock, ids)
}
