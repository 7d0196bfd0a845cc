package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AdelereKehinde/Estate-management/internal/app"
	"github.com/AdelereKehinde/Estate-management/internal/controllers"
	"github.com/AdelereKehinde/Estate-management/internal/middleware"
	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/services"
)

var (
	adminOnly   = []string{models.RoleAdmin}
	management  = []string{models.RoleAdmin, models.RoleManager}
	finance     = []string{models.RoleAdmin, models.RoleManager, models.RoleAccountant}
	facilities  = []string{models.RoleAdmin, models.RoleManager, models.RoleFacility}
	ticketOpens = []string{models.RoleAdmin, models.RoleManager, models.RoleFacility, models.RoleResident}
	staff       = []string{
		models.RoleAdmin, models.RoleManager, models.RoleAccountant, models.RoleFacility, models.RoleSecurity,
	}
)

// NewRouter wires services and controllers over application's store.
func NewRouter(application *app.App) *mux.Router {
	cfg := application.Config
	store := application.Store

	jwtService := services.NewJWTService(cfg)
	authService := services.NewAuthService(store, jwtService)
	estateService := services.NewEstateService(store)
	tenantService := services.NewTenantService(store)
	leaseService := services.NewLeaseService(store)
	invoiceService := services.NewInvoiceService(cfg, store)
	paymentService := services.NewPaymentService(store)
	maintenanceService := services.NewMaintenanceService(store)

	healthController := controllers.NewHealthController(application)
	authController := controllers.NewAuthController(authService)
	estateController := controllers.NewEstateController(estateService)
	tenantController := controllers.NewTenantController(tenantService)
	leaseController := controllers.NewLeaseController(leaseService, invoiceService)
	billingController := controllers.NewBillingController(invoiceService, paymentService)
	maintenanceController := controllers.NewMaintenanceController(maintenanceService)

	router := mux.NewRouter()
	router.Use(middleware.RequestMetrics)

	// Public
	router.HandleFunc(Root, healthController.RootHandler).Methods(http.MethodGet)
	router.HandleFunc(Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.Handle(Metrics, promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc(Register, authController.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc(Login, authController.LoginHandler).Methods(http.MethodPost)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg))

	handle := func(path string, roles []string, h http.HandlerFunc, method string) {
		secured.Handle(path, middleware.RequireRoles(roles...)(h)).Methods(method)
	}

	handle(Estates, management, estateController.CreateEstateHandler, http.MethodPost)
	handle(Estates, staff, estateController.ListEstatesHandler, http.MethodGet)
	handle(EstateByID, adminOnly, estateController.DeleteEstateHandler, http.MethodDelete)
	handle(Properties, management, estateController.CreatePropertyHandler, http.MethodPost)
	handle(Properties, staff, estateController.ListPropertiesHandler, http.MethodGet)
	handle(PropertyByID, adminOnly, estateController.DeletePropertyHandler, http.MethodDelete)
	handle(Units, management, estateController.CreateUnitHandler, http.MethodPost)
	handle(Units, staff, estateController.ListUnitsHandler, http.MethodGet)
	handle(UnitByID, adminOnly, estateController.DeleteUnitHandler, http.MethodDelete)
	handle(Tenants, management, tenantController.CreateTenantHandler, http.MethodPost)
	handle(Tenants, staff, tenantController.ListTenantsHandler, http.MethodGet)

	handle(Leases, management, leaseController.CreateLeaseHandler, http.MethodPost)
	handle(Leases, finance, leaseController.ListLeasesHandler, http.MethodGet)
	handle(LeaseByID, finance, leaseController.GetLeaseHandler, http.MethodGet)
	handle(GenerateInvoices, finance, leaseController.GenerateInvoicesHandler, http.MethodPost)
	handle(Invoices, finance, billingController.ListInvoicesHandler, http.MethodGet)
	handle(InvoicePayments, finance, billingController.ListPaymentsHandler, http.MethodGet)
	handle(Payments, finance, billingController.RecordPaymentHandler, http.MethodPost)

	handle(Tickets, ticketOpens, maintenanceController.CreateTicketHandler, http.MethodPost)
	handle(Tickets, facilities, maintenanceController.ListTicketsHandler, http.MethodGet)
	handle(TicketByID, facilities, maintenanceController.UpdateTicketHandler, http.MethodPatch)

	return router
}
