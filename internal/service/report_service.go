package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/repository"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

const (
	topProductsLimit  = 5
	recentOrdersLimit = 5
)

// ReportService computes the read-side aggregates for the dashboard and the
// period reports. It never writes.
type ReportService struct {
	customerRepo   *repository.CustomerRepository
	productRepo    *repository.ProductRepository
	technicianRepo *repository.TechnicianRepository
	orderRepo      *repository.ServiceOrderRepository
	saleRepo       *repository.SaleRepository
	loc            *time.Location
	now            func() time.Time
}

// ReportRepositories groups the repositories ReportService reads from.
type ReportRepositories struct {
	Customers   *repository.CustomerRepository
	Products    *repository.ProductRepository
	Technicians *repository.TechnicianRepository
	Orders      *repository.ServiceOrderRepository
	Sales       *repository.SaleRepository
}

// NewReportService constructs a ReportService. Day and month boundaries are
// computed in loc.
func NewReportService(repos ReportRepositories, loc *time.Location, now func() time.Time) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{
		customerRepo:   repos.Customers,
		productRepo:    repos.Products,
		technicianRepo: repos.Technicians,
		orderRepo:      repos.Orders,
		saleRepo:       repos.Sales,
		loc:            loc,
		now:            now,
	}
}

// Location returns the report time zone.
func (s *ReportService) Location() *time.Location { return s.loc }

// ParsePeriod parses inicio/fim query values in the report time zone.
func (s *ReportService) ParsePeriod(start, end string) (utils.Period, error) {
	return utils.ParsePeriod(start, end, s.now(), s.loc)
}

// Dashboard is the shop overview.
type Dashboard struct {
	OrdersByStatus  map[models.OrderStatus]int `json:"ordensPorStatus"`
	OrdersInService int                        `json:"ordensEmManutencao"`
	Customers       int                        `json:"totalClientes"`
	Products        int                        `json:"totalProdutos"`
	Technicians     int                        `json:"totalTecnicos"`
	LowStockCount   int                        `json:"estoqueBaixo"`
	LowStock        []models.Product           `json:"produtosEstoqueBaixo"`
	MonthSalesTotal decimal.Decimal            `json:"vendasMes"`
	MonthSalesCount int                        `json:"quantidadeVendasMes"`
	RecentOrders    []models.ServiceOrder      `json:"ordensRecentes"`
}

// Report summarizes sales and completed service orders inside a period.
type Report struct {
	Start       string                `json:"inicio"`
	End         string                `json:"fim"`
	SalesTotal  decimal.Decimal       `json:"totalVendas"`
	SalesCount  int                   `json:"quantidadeVendas"`
	OrdersTotal decimal.Decimal       `json:"totalOrdens"`
	OrdersCount int                   `json:"quantidadeOrdens"`
	Revenue     decimal.Decimal       `json:"receitaTotal"`
	SalesByDay  []DailySales          `json:"vendasPorDia"`
	TopProducts []TopProduct          `json:"produtosMaisVendidos"`
	Sales       []models.Sale         `json:"vendas"`
	Orders      []models.ServiceOrder `json:"ordens"`
}

// DailySales is the sales total of one calendar day.
type DailySales struct {
	Date  string          `json:"data"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"quantidade"`
}

// TopProduct is a best-seller entry.
type TopProduct struct {
	ProductID string `json:"produtoId"`
	Name      string `json:"nome"`
	Quantity  int    `json:"quantidade"`
}

func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	technicians, err := s.technicianRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		OrdersByStatus: CountOrdersByStatus(orders),
		Customers:      len(customers),
		Products:       len(products),
		Technicians:    len(technicians),
		LowStock:       LowStock(products),
		RecentOrders:   RecentOrders(orders, recentOrdersLimit),
	}
	d.OrdersInService = d.OrdersByStatus[models.OrderOpen] + d.OrdersByStatus[models.OrderInProgress]
	d.LowStockCount = len(d.LowStock)

	monthSales := FilterSales(sales, utils.MonthPeriod(s.now(), s.loc))
	d.MonthSalesTotal = SumSales(monthSales)
	d.MonthSalesCount = len(monthSales)
	return d, nil
}

func (s *ReportService) Report(ctx context.Context, period utils.Period) (*Report, error) {
	sales, err := s.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Start:  period.Start.In(s.loc).Format(utils.DateLayout),
		End:    period.End.In(s.loc).Format(utils.DateLayout),
		Sales:  FilterSales(sales, period),
		Orders: CompletedOrders(orders, period),
	}
	r.SalesTotal = SumSales(r.Sales)
	r.SalesCount = len(r.Sales)
	r.OrdersTotal = SumOrders(r.Orders)
	r.OrdersCount = len(r.Orders)
	r.Revenue = r.SalesTotal.Add(r.OrdersTotal)
	r.SalesByDay = SalesByDay(r.Sales, s.loc)
	r.TopProducts = TopProducts(r.Sales, products, topProductsLimit)
	return r, nil
}

// FilterSales keeps sales dated inside period.
func FilterSales(sales []models.Sale, period utils.Period) []models.Sale {
	out := make([]models.Sale, 0)
	for _, sale := range sales {
		if period.Contains(sale.Date) {
			out = append(out, sale)
		}
	}
	return out
}

// CompletedOrders keeps finalizada orders whose completion time falls
// inside period.
func CompletedOrders(orders []models.ServiceOrder, period utils.Period) []models.ServiceOrder {
	out := make([]models.ServiceOrder, 0)
	for _, o := range orders {
		if o.Status != models.OrderCompleted || o.CompletedAt == nil {
			continue
		}
		if period.Contains(*o.CompletedAt) {
			out = append(out, o)
		}
	}
	return out
}

func SumSales(sales []models.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.Total)
	}
	return total
}

func SumOrders(orders []models.ServiceOrder) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Value)
	}
	return total
}

// CountOrdersByStatus always reports every status, including zero counts.
func CountOrdersByStatus(orders []models.ServiceOrder) map[models.OrderStatus]int {
	counts := make(map[models.OrderStatus]int, len(models.OrderStatuses))
	for _, st := range models.OrderStatuses {
		counts[st] = 0
	}
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts
}

// RecentOrders returns up to n orders, newest first.
func RecentOrders(orders []models.ServiceOrder, n int) []models.ServiceOrder {
	sorted := make([]models.ServiceOrder, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// SalesByDay groups sales by calendar day in loc, oldest day first.
func SalesByDay(sales []models.Sale, loc *time.Location) []DailySales {
	byDay := make(map[string]*DailySales)
	for _, sale := range sales {
		day := sale.Date.In(loc).Format(utils.DateLayout)
		d, ok := byDay[day]
		if !ok {
			d = &DailySales{Date: day, Total: decimal.Zero}
			byDay[day] = d
		}
		d.Total = d.Total.Add(sale.Total)
		d.Count++
	}
	out := make([]DailySales, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// TopProducts ranks products by quantity sold, ties broken by product id.
// Products no longer in the catalog are skipped before the top n is taken.
func TopProducts(sales []models.Sale, products []models.Product, n int) []TopProduct {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	qty := make(map[string]int)
	for _, sale := range sales {
		for _, it := range sale.Items {
			qty[it.ProductID] += it.Quantity
		}
	}
	out := make([]TopProduct, 0, len(qty))
	for id, q := range qty {
		name, ok := names[id]
		if !ok {
			continue
		}
		out = append(out, TopProduct{ProductID: id, Name: name, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
