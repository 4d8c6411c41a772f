package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/repository"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

// Export kinds.
const (
	ExportSales  = "vendas"
	ExportOrders = "ordens"
)

const unknownCustomer = "Não informado"

// ExportService renders period reports as CSV files.
type ExportService struct {
	reports      *ReportService
	customerRepo *repository.CustomerRepository
}

func NewExportService(reports *ReportService, customerRepo *repository.CustomerRepository) *ExportService {
	return &ExportService{reports: reports, customerRepo: customerRepo}
}

// ExportFile is a rendered export.
type ExportFile struct {
	Filename string
	Content  []byte
}

// Export renders kind ("vendas" or "ordens") for period.
func (s *ExportService) Export(ctx context.Context, kind string, period utils.Period) (*ExportFile, error) {
	if kind != ExportSales && kind != ExportOrders {
		return nil, utils.NewValidationError("tipo", "must be one of [vendas ordens]")
	}
	report, err := s.reports.Report(ctx, period)
	if err != nil {
		return nil, err
	}
	if kind == ExportOrders {
		return &ExportFile{
			Filename: "relatorio_os.csv",
			Content:  OrdersCSV(report.Orders, s.reports.Location()),
		}, nil
	}

	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Filename: "relatorio_vendas.csv",
		Content:  SalesCSV(report.Sales, customers, s.reports.Location()),
	}, nil
}

// SalesCSV renders sales with columns ID,Data,Cliente,Itens,Pagamento,Valor.
func SalesCSV(sales []models.Sale, customers []models.Customer, loc *time.Location) []byte {
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	rows := make([][]string, 0, len(sales))
	for _, sale := range sales {
		customer := unknownCustomer
		if sale.CustomerID != nil {
			if name, ok := names[*sale.CustomerID]; ok && name != "" {
				customer = name
			}
		}
		rows = append(rows, []string{
			sale.ID,
			sale.Date.In(loc).Format("02/01/2006 15:04"),
			customer,
			fmt.Sprint(len(sale.Items)),
			string(sale.Payment),
			sale.Total.StringFixed(2),
		})
	}
	return renderCSV([]string{"ID", "Data", "Cliente", "Itens", "Pagamento", "Valor"}, rows)
}

// OrdersCSV renders completed orders with columns
// ID,Equipamento,Status,Finalizada em,Valor.
func OrdersCSV(orders []models.ServiceOrder, loc *time.Location) []byte {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		completed := ""
		if o.CompletedAt != nil {
			completed = o.CompletedAt.In(loc).Format("02/01/2006")
		}
		rows = append(rows, []string{
			o.ID,
			o.Equipment,
			string(o.Status),
			completed,
			o.Value.StringFixed(2),
		})
	}
	return renderCSV([]string{"ID", "Equipamento", "Status", "Finalizada em", "Valor"}, rows)
}

// renderCSV writes an unquoted header and rows with every field quoted,
// separated by "\n".
func renderCSV(header []string, rows [][]string) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	for _, row := range rows {
		b.WriteByte('\n')
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return []byte(b.String())
}
