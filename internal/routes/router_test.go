package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdelereKehinde/Estate-management/internal/app"
	"github.com/AdelereKehinde/Estate-management/internal/config"
	"github.com/AdelereKehinde/Estate-management/internal/constants"
	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/repositories"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

type apiClient struct {
	t      *testing.T
	server *httptest.Server
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	cfg := &config.Config{
		AppName:        "estate-service-test",
		StoreDriver:    constants.StoreDriverMemory,
		JWTSecret:      []byte("router-test-secret"),
		JWTIssuer:      constants.DefaultJWTIssuer,
		AccessTokenTTL: time.Hour,
	}
	application := app.NewAppWithStore(cfg, repositories.NewMemoryStore())
	server := httptest.NewServer(NewRouter(application))
	t.Cleanup(server.Close)
	return &apiClient{t: t, server: server}
}

// do sends body as JSON unless it is already a string.
func (c *apiClient) do(method, path, token string, body any) (int, []byte) {
	c.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, out
}

// expect asserts the status and decodes the body into dst when dst is set.
func (c *apiClient) expect(status int, method, path, token string, body, dst any) {
	c.t.Helper()
	got, raw := c.do(method, path, token, body)
	require.Equal(c.t, status, got, "%s %s: %s", method, path, raw)
	if dst != nil {
		require.NoError(c.t, json.Unmarshal(raw, dst))
	}
}

func (c *apiClient) errorCode(status int, method, path, token string, body any) string {
	c.t.Helper()
	var resp utils.ErrorResponse
	c.expect(status, method, path, token, body, &resp)
	return resp.Code
}

func (c *apiClient) register(role string) string {
	c.t.Helper()
	var tok dtos.TokenResponse
	c.expect(http.StatusOK, http.MethodPost, Register, "", dtos.RegisterRequest{
		Email:    role + "@amen-estate.test",
		FullName: "Test " + role,
		Password: "secret123",
		Role:     role,
	}, &tok)
	require.Equal(c.t, constants.TokenType, tok.TokenType)
	require.NotEmpty(c.t, tok.AccessToken)
	return tok.AccessToken
}

// seedUnit creates an estate, a property and one unit and returns the unit.
func (c *apiClient) seedUnit(token, label string) models.Unit {
	c.t.Helper()
	var estate models.Estate
	c.expect(http.StatusOK, http.MethodPost, Estates, token,
		map[string]string{"name": "Estate " + label, "location": "Lekki"}, &estate)
	var prop models.Property
	c.expect(http.StatusOK, http.MethodPost, Properties, token,
		map[string]string{"estate_id": estate.ID.String(), "code": "P-" + label, "address": "1 Amen Way"}, &prop)
	var unit models.Unit
	c.expect(http.StatusOK, http.MethodPost, Units, token,
		map[string]string{"property_id": prop.ID.String(), "label": label}, &unit)
	return unit
}

func (c *apiClient) seedTenant(token, email string) models.Tenant {
	c.t.Helper()
	var tenant models.Tenant
	c.expect(http.StatusOK, http.MethodPost, Tenants, token,
		map[string]string{"full_name": "Ada Obi", "email": email}, &tenant)
	return tenant
}

func TestPublicEndpoints(t *testing.T) {
	api := newAPI(t)

	var root dtos.RootResponse
	api.expect(http.StatusOK, http.MethodGet, Root, "", nil, &root)
	assert.Equal(t, constants.ServiceDisplayName, root.Name)
	assert.Equal(t, "ok", root.Status)

	var health dtos.HealthResponse
	api.expect(http.StatusOK, http.MethodGet, Health, "", nil, &health)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, constants.StoreDriverMemory, health.Store)

	status, body := api.do(http.MethodGet, Metrics, "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "estate_api_requests_total")
}

func TestAuthFlow(t *testing.T) {
	api := newAPI(t)
	api.register(models.RoleManager)

	assert.Equal(t, utils.ErrCodeConflict, api.errorCode(http.StatusBadRequest, http.MethodPost, Register, "",
		dtos.RegisterRequest{Email: "MANAGER@amen-estate.test", FullName: "Again", Password: "secret123"}))

	var tok dtos.TokenResponse
	api.expect(http.StatusOK, http.MethodPost, Login, "",
		dtos.LoginRequest{Email: "manager@amen-estate.test", Password: "secret123"}, &tok)
	assert.NotEmpty(t, tok.AccessToken)

	assert.Equal(t, utils.ErrCodeInvalidCredentials, api.errorCode(http.StatusUnauthorized, http.MethodPost, Login, "",
		dtos.LoginRequest{Email: "manager@amen-estate.test", Password: "wrong-password"}))
}

func TestRegisterValidation(t *testing.T) {
	api := newAPI(t)

	var resp struct {
		Code    string                       `json:"code"`
		Details []dtos.ValidationErrorDetail `json:"details"`
	}
	api.expect(http.StatusBadRequest, http.MethodPost, Register, "",
		map[string]string{"email": "not-an-email", "full_name": "X", "password": "123"}, &resp)
	assert.Equal(t, utils.ErrCodeValidation, resp.Code)

	fields := map[string]string{}
	for _, d := range resp.Details {
		fields[d.Field] = d.Code
	}
	assert.Equal(t, "validation_email", fields["email"])
	assert.Equal(t, "validation_min", fields["password"])

	assert.Equal(t, utils.ErrCodeInvalidPayload,
		api.errorCode(http.StatusBadRequest, http.MethodPost, Register, "", "{not json"))
	assert.Equal(t, utils.ErrCodeValidation, api.errorCode(http.StatusBadRequest, http.MethodPost, Register, "",
		dtos.RegisterRequest{Email: "x@example.com", FullName: "X", Password: "secret123", Role: "landlord"}))
}

func TestSecuredRoutesNeedToken(t *testing.T) {
	api := newAPI(t)

	assert.Equal(t, utils.ErrCodeUnauthorized, api.errorCode(http.StatusUnauthorized, http.MethodGet, Estates, "", nil))
	assert.Equal(t, utils.ErrCodeUnauthorized, api.errorCode(http.StatusUnauthorized, http.MethodGet, Estates, "garbage", nil))
}

func TestRoleGuards(t *testing.T) {
	api := newAPI(t)
	tokens := map[string]string{}
	for _, role := range []string{
		models.RoleAdmin, models.RoleManager, models.RoleAccountant,
		models.RoleFacility, models.RoleSecurity, models.RoleResident,
	} {
		tokens[role] = api.register(role)
	}

	cases := []struct {
		role   string
		method string
		path   string
		body   any
		status int
	}{
		{models.RoleSecurity, http.MethodGet, Estates, nil, http.StatusOK},
		{models.RoleResident, http.MethodGet, Estates, nil, http.StatusForbidden},
		{models.RoleAccountant, http.MethodPost, Estates, map[string]string{"name": "E", "location": "L"}, http.StatusForbidden},
		{models.RoleManager, http.MethodDelete, "/estates/" + "aaaaaaaa-0000-4000-8000-00000000ffff", nil, http.StatusForbidden},
		{models.RoleAdmin, http.MethodDelete, "/estates/" + "aaaaaaaa-0000-4000-8000-00000000ffff", nil, http.StatusNotFound},
		{models.RoleSecurity, http.MethodGet, Invoices, nil, http.StatusForbidden},
		{models.RoleAccountant, http.MethodGet, Invoices, nil, http.StatusOK},
		{models.RoleFacility, http.MethodGet, Leases, nil, http.StatusForbidden},
		{models.RoleResident, http.MethodGet, Tickets, nil, http.StatusForbidden},
		{models.RoleFacility, http.MethodGet, Tickets, nil, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s %s %s", tc.role, tc.method, tc.path), func(t *testing.T) {
			status, body := api.do(tc.method, tc.path, tokens[tc.role], tc.body)
			assert.Equal(t, tc.status, status, string(body))
		})
	}
}

func TestLeaseBillingFlow(t *testing.T) {
	api := newAPI(t)
	admin := api.register(models.RoleAdmin)
	accountant := api.register(models.RoleAccountant)
	unit := api.seedUnit(admin, "A1")
	tenant := api.seedTenant(admin, "ada@example.com")

	leaseBody := map[string]any{
		"unit_id":          unit.ID,
		"tenant_id":        tenant.ID,
		"start_date":       "2024-01-31",
		"end_date":         "2024-12-31",
		"rent_amount":      "1000.00",
		"frequency_months": 1,
	}
	var lease models.Lease
	api.expect(http.StatusOK, http.MethodPost, Leases, admin, leaseBody, &lease)
	assert.True(t, lease.Active)
	assert.Equal(t, 1, lease.FrequencyMonths)

	assert.Equal(t, utils.ErrCodeConflict, api.errorCode(http.StatusBadRequest, http.MethodPost, Leases, admin, leaseBody))

	var units []models.Unit
	api.expect(http.StatusOK, http.MethodGet, Units+"?occupied=true", admin, nil, &units)
	require.Len(t, units, 1)
	assert.Equal(t, unit.ID, units[0].ID)

	var got models.Lease
	api.expect(http.StatusOK, http.MethodGet, "/leases/"+lease.ID.String(), accountant, nil, &got)
	assert.Equal(t, lease.ID, got.ID)

	var gen dtos.GenerateInvoicesResponse
	api.expect(http.StatusOK, http.MethodPost, "/leases/"+lease.ID.String()+"/generate-invoices", accountant, nil, &gen)
	assert.Equal(t, 12, gen.Created)

	var invoices []models.Invoice
	api.expect(http.StatusOK, http.MethodGet, Invoices+"?lease_id="+lease.ID.String(), accountant, nil, &invoices)
	require.Len(t, invoices, 12)
	assert.Equal(t, "2024-01-31", invoices[0].DueDate.String())
	assert.Equal(t, "2024-02-29", invoices[1].DueDate.String())
	first := invoices[0]

	_, raw := api.do(http.MethodGet, Invoices+"?lease_id="+lease.ID.String()+"&limit=1", accountant, nil)
	assert.Contains(t, string(raw), `"amount":1000`)

	assert.Equal(t, utils.ErrCodeInvalidArgument, api.errorCode(http.StatusBadRequest, http.MethodPost, Payments, accountant,
		map[string]any{"invoice_id": first.ID, "amount": "999.99", "txn_ref": "TXN-1"}))

	var payment models.Payment
	api.expect(http.StatusOK, http.MethodPost, Payments, accountant,
		map[string]any{"invoice_id": first.ID, "amount": "1000.00", "txn_ref": "TXN-1"}, &payment)
	assert.Equal(t, first.ID, payment.InvoiceID)

	assert.Equal(t, utils.ErrCodeConflict, api.errorCode(http.StatusConflict, http.MethodPost, Payments, accountant,
		map[string]any{"invoice_id": invoices[1].ID, "amount": "1000.00", "txn_ref": "TXN-1"}))

	var payments []models.Payment
	api.expect(http.StatusOK, http.MethodGet, "/invoices/"+first.ID.String()+"/payments", accountant, nil, &payments)
	require.Len(t, payments, 1)
	assert.Equal(t, "TXN-1", payments[0].TxnRef)

	var paid []models.Invoice
	api.expect(http.StatusOK, http.MethodGet, Invoices+"?status=paid&tenant_id="+tenant.ID.String(), accountant, nil, &paid)
	require.Len(t, paid, 1)
	assert.Equal(t, first.ID, paid[0].ID)

	assert.Equal(t, utils.ErrCodeInvalidArgument,
		api.errorCode(http.StatusBadRequest, http.MethodGet, Invoices+"?status=late", accountant, nil))

	api.expect(http.StatusNotFound, http.MethodGet, "/leases/"+unit.ID.String(), accountant, nil, nil)
	api.expect(http.StatusNotFound, http.MethodPost, "/leases/"+unit.ID.String()+"/generate-invoices", accountant, nil, nil)
	api.expect(http.StatusNotFound, http.MethodGet, "/invoices/"+unit.ID.String()+"/payments", accountant, nil, nil)
	api.expect(http.StatusBadRequest, http.MethodGet, "/leases/not-a-uuid", accountant, nil, nil)
}

func TestCreateLeaseRejections(t *testing.T) {
	api := newAPI(t)
	admin := api.register(models.RoleAdmin)
	unit := api.seedUnit(admin, "B1")
	tenant := api.seedTenant(admin, "bola@example.com")

	api.expect(http.StatusNotFound, http.MethodPost, Leases, admin, map[string]any{
		"unit_id": tenant.ID, "tenant_id": tenant.ID,
		"start_date": "2024-01-01", "end_date": "2024-12-31", "rent_amount": "500",
	}, nil)
	api.expect(http.StatusNotFound, http.MethodPost, Leases, admin, map[string]any{
		"unit_id": unit.ID, "tenant_id": unit.ID,
		"start_date": "2024-01-01", "end_date": "2024-12-31", "rent_amount": "500",
	}, nil)
	assert.Equal(t, utils.ErrCodeInvalidArgument, api.errorCode(http.StatusBadRequest, http.MethodPost, Leases, admin, map[string]any{
		"unit_id": unit.ID, "tenant_id": tenant.ID,
		"start_date": "2024-12-31", "end_date": "2024-01-01", "rent_amount": "500",
	}))

	var units []models.Unit
	api.expect(http.StatusOK, http.MethodGet, Units+"?occupied=false", admin, nil, &units)
	require.Len(t, units, 1)
	assert.False(t, units[0].Occupied)
}

func TestListPaging(t *testing.T) {
	api := newAPI(t)
	admin := api.register(models.RoleAdmin)
	api.seedUnit(admin, "C1")

	for _, q := range []string{"limit=0", "limit=201", "limit=abc", "offset=-1", "occupied=maybe", "property_id=nope"} {
		t.Run(q, func(t *testing.T) {
			assert.Equal(t, utils.ErrCodeInvalidArgument,
				api.errorCode(http.StatusBadRequest, http.MethodGet, Units+"?"+q, admin, nil))
		})
	}

	var units []models.Unit
	api.expect(http.StatusOK, http.MethodGet, Units+"?limit=200&offset=0", admin, nil, &units)
	assert.Len(t, units, 1)
	api.expect(http.StatusOK, http.MethodGet, Units+"?offset=1", admin, nil, &units)
	assert.Empty(t, units)
}

func TestTenantSearch(t *testing.T) {
	api := newAPI(t)
	admin := api.register(models.RoleAdmin)
	api.seedTenant(admin, "ada@example.com")

	assert.Equal(t, utils.ErrCodeConflict, api.errorCode(http.StatusBadRequest, http.MethodPost, Tenants, admin,
		map[string]string{"full_name": "Other", "email": "ADA@example.com"}))

	var tenants []models.Tenant
	api.expect(http.StatusOK, http.MethodGet, Tenants+"?q=ADA", admin, nil, &tenants)
	assert.Len(t, tenants, 1)
	api.expect(http.StatusOK, http.MethodGet, Tenants+"?q=zzz", admin, nil, &tenants)
	assert.Empty(t, tenants)
}

func TestMaintenanceTickets(t *testing.T) {
	api := newAPI(t)
	admin := api.register(models.RoleAdmin)
	resident := api.register(models.RoleResident)
	facility := api.register(models.RoleFacility)
	unit := api.seedUnit(admin, "D1")

	var ticket models.MaintenanceTicket
	api.expect(http.StatusOK, http.MethodPost, Tickets, resident,
		map[string]any{"unit_id": unit.ID, "title": "Leaking tap"}, &ticket)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
	assert.Equal(t, models.TicketPriorityMedium, ticket.Priority)

	api.expect(http.StatusNotFound, http.MethodPost, Tickets, resident,
		map[string]any{"unit_id": ticket.ID, "title": "Nowhere"}, nil)

	path := "/maintenance/tickets/" + ticket.ID.String()
	api.expect(http.StatusOK, http.MethodPatch, path, facility, map[string]string{"status": "assigned"}, &ticket)
	assert.Equal(t, models.TicketStatusAssigned, ticket.Status)

	api.expect(http.StatusOK, http.MethodPatch, path+"?priority=high", facility, nil, &ticket)
	assert.Equal(t, models.TicketPriorityHigh, ticket.Priority)
	assert.Equal(t, models.TicketStatusAssigned, ticket.Status)

	assert.Equal(t, utils.ErrCodeValidation, api.errorCode(http.StatusBadRequest, http.MethodPatch, path, facility,
		map[string]string{"status": "reopened"}))
	api.expect(http.StatusForbidden, http.MethodPatch, path, resident, map[string]string{"status": "closed"}, nil)
	api.expect(http.StatusNotFound, http.MethodPatch, "/maintenance/tickets/"+unit.ID.String(), facility,
		map[string]string{"status": "closed"}, nil)

	var tickets []models.MaintenanceTicket
	api.expect(http.StatusOK, http.MethodGet, Tickets+"?status=assigned&unit_id="+unit.ID.String(), facility, nil, &tickets)
	assert.Len(t, tickets, 1)
	api.expect(http.StatusOK, http.MethodGet, Tickets+"?status=closed", facility, nil, &tickets)
	assert.Empty(t, tickets)
}

func TestDeleteCascades(t *testing.T) {
	api := newAPI(t)
	admin := api.register(models.RoleAdmin)
	leased := api.seedUnit(admin, "E1")
	spare := api.seedUnit(admin, "F1")
	tenant := api.seedTenant(admin, "eze@example.com")

	api.expect(http.StatusOK, http.MethodPost, Leases, admin, map[string]any{
		"unit_id": leased.ID, "tenant_id": tenant.ID,
		"start_date": "2024-01-01", "end_date": "2024-12-31", "rent_amount": "750",
	}, nil)

	assert.Equal(t, utils.ErrCodeConflict,
		api.errorCode(http.StatusConflict, http.MethodDelete, "/units/"+leased.ID.String(), admin, nil))

	api.expect(http.StatusNoContent, http.MethodDelete, "/properties/"+spare.PropertyID.String(), admin, nil, nil)
	api.expect(http.StatusNotFound, http.MethodDelete, "/units/"+spare.ID.String(), admin, nil, nil)

	var props []models.Property
	api.expect(http.StatusOK, http.MethodGet, Properties, admin, nil, &props)
	require.Len(t, props, 1)
	assert.Equal(t, leased.PropertyID, props[0].ID)
}

func TestEmptyListsEncodeAsArrays(t *testing.T) {
	api := newAPI(t)
	admin := api.register(models.RoleAdmin)

	for _, path := range []string{Invoices, Units, Leases, Estates, Tenants, Tickets, Units + "?offset=10"} {
		t.Run(path, func(t *testing.T) {
			status, body := api.do(http.MethodGet, path, admin, nil)
			require.Equal(t, http.StatusOK, status, string(body))
			assert.JSONEq(t, `[]`, string(body))
		})
	}
}

func TestLeaseFrequencyUpperBound(t *testing.T) {
	api := newAPI(t)
	admin := api.register(models.RoleAdmin)
	unit := api.seedUnit(admin, "G1")
	tenant := api.seedTenant(admin, "gbenga@example.com")

	var resp struct {
		Code    string                       `json:"code"`
		Details []dtos.ValidationErrorDetail `json:"details"`
	}
	api.expect(http.StatusBadRequest, http.MethodPost, Leases, admin, map[string]any{
		"unit_id": unit.ID, "tenant_id": tenant.ID,
		"start_date": "2024-03-01", "end_date": "2024-12-31", "rent_amount": "500",
		"frequency_months": math.MaxInt,
	}, &resp)
	assert.Equal(t, utils.ErrCodeValidation, resp.Code)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "frequency_months", resp.Details[0].Field)
	assert.Equal(t, "validation_max", resp.Details[0].Code)
}
