package constants

import "time"

// Display name reported by the root endpoint.
const ServiceDisplayName = "Amen Estate"

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Token settings
const (
	TokenType                 = "bearer"
	DefaultAccessTokenMinutes = 60
	DefaultJWTIssuer          = "estate-service"
)

// Paging
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// Overdue report scheduling
const (
	OverdueReportCronSpec   = "@every 1h"
	OverdueReportJobTimeout = 2 * time.Minute
)

// Unit defaults
const DefaultBedrooms = 2

// LaunchDarkly flag keys
const (
	FlagSeedDbWithTestData          = "seed_db_with_test_data"
	FlagCORSHighSecurity            = "cors_high_security"
	FlagIdempotentInvoiceGeneration = "idempotent_invoice_generation"
	FlagOverdueReportCron           = "overdue_report_cron"
)

// CORSLowSecurityAllowedOriginLocalhost is added to the allowed origins when
// cors_high_security is off.
const CORSLowSecurityAllowedOriginLocalhost = "http://localhost:3000"
