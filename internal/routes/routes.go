package routes

const (
	// Public
	Root     = "/"
	Health   = "/health"
	Metrics  = "/metrics"
	Register = "/auth/register"
	Login    = "/auth/login"

	// Estate structure
	Estates      = "/estates"
	EstateByID   = "/estates/{id}"
	Properties   = "/properties"
	PropertyByID = "/properties/{id}"
	Units        = "/units"
	UnitByID     = "/units/{id}"
	Tenants      = "/tenants"

	// Leasing and billing
	Leases           = "/leases"
	LeaseByID        = "/leases/{id}"
	GenerateInvoices = "/leases/{id}/generate-invoices"
	Invoices         = "/invoices"
	InvoicePayments  = "/invoices/{id}/payments"
	Payments         = "/payments"

	// Maintenance
	Tickets    = "/maintenance/tickets"
	TicketByID = "/maintenance/tickets/{id}"
)
