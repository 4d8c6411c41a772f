package handler

import "github.com/gin-gonic/gin"

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health       *HealthHandler
	Customer     *CustomerHandler
	Product      *ProductHandler
	Technician   *TechnicianHandler
	ServiceOrder *ServiceOrderHandler
	Sale         *SaleHandler
	Report       *ReportHandler
	Events       *SSEHandler
}

// SetupRoutes registers all routes.
func SetupRoutes(router *gin.Engine, h *Handlers) {
	api := router.Group("/api")

	api.GET("/health", h.Health.GetHealth)

	customers := api.Group("/clientes")
	{
		customers.GET("", h.Customer.ListCustomers)
		customers.POST("", h.Customer.CreateCustomer)
		customers.GET("/:id", h.Customer.GetCustomer)
		customers.PUT("/:id", h.Customer.UpdateCustomer)
		customers.DELETE("/:id", h.Customer.DeleteCustomer)
	}

	products := api.Group("/produtos")
	{
		products.GET("", h.Product.ListProducts)
		products.POST("", h.Product.CreateProduct)
		products.GET("/:id", h.Product.GetProduct)
		products.PUT("/:id", h.Product.UpdateProduct)
		products.DELETE("/:id", h.Product.DeleteProduct)
	}
	api.GET("/estoque/baixo", h.Product.ListLowStock)

	technicians := api.Group("/tecnicos")
	{
		technicians.GET("", h.Technician.ListTechnicians)
		technicians.POST("", h.Technician.CreateTechnician)
		technicians.GET("/:id", h.Technician.GetTechnician)
	}

	orders := api.Group("/ordens")
	{
		orders.GET("", h.ServiceOrder.ListServiceOrders)
		orders.POST("", h.ServiceOrder.CreateServiceOrder)
		orders.GET("/:id", h.ServiceOrder.GetServiceOrder)
		orders.PUT("/:id", h.ServiceOrder.UpdateServiceOrder)
		orders.DELETE("/:id", h.ServiceOrder.DeleteServiceOrder)
		orders.POST("/:id/finalizar", h.ServiceOrder.FinalizeServiceOrder)
	}

	sales := api.Group("/vendas")
	{
		sales.GET("", h.Sale.ListSales)
		sales.POST("", h.Sale.CreateSale)
		sales.GET("/:id", h.Sale.GetSale)
	}

	api.GET("/dashboard", h.Report.GetDashboard)
	api.GET("/relatorios", h.Report.GetReport)
	api.GET("/relatorios/exportar", h.Report.ExportReport)

	api.GET("/eventos", h.Events.Stream)
}
