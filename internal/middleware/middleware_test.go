package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdelereKehinde/Estate-management/internal/config"
	"github.com/AdelereKehinde/Estate-management/internal/metrics"
	"github.com/AdelereKehinde/Estate-management/internal/models"
)

func signToken(t *testing.T, cfg *config.Config, sub, role string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    cfg.JWTIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	s, err := tok.SignedString(cfg.JWTSecret)
	require.NoError(t, err)
	return s
}

func TestAuthMiddlewareStoresCaller(t *testing.T) {
	cfg := &config.Config{JWTSecret: []byte("mw-secret"), JWTIssuer: "estate-service"}
	var gotUser, gotRole string
	h := AuthMiddleware(cfg)(RequireRoles(models.RoleAccountant)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFrom(r.Context())
		gotRole = RoleFrom(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/invoices", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg, "user-1", models.RoleAccountant, time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", gotUser)
	assert.Equal(t, models.RoleAccountant, gotRole)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	cfg := &config.Config{JWTSecret: []byte("mw-secret"), JWTIssuer: "estate-service"}
	h := AuthMiddleware(cfg)(RequireRoles(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, cfg, "u", models.RoleAdmin, time.Now().Add(-time.Minute)), http.StatusUnauthorized},
		{"wrong role", "Bearer " + signToken(t, cfg, "u", models.RoleResident, time.Now().Add(time.Hour)), http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/estates", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestRequestMetricsLabels(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	r := mux.NewRouter()
	r.Use(RequestMetrics)
	r.Handle("/leases/{id}", ok)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/leases/abc", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.APIRequestCounter.With(prometheus.Labels{
		"method": http.MethodGet, "path": "/leases/{id}",
	})))

	// Requests served outside any route share one label whatever the URL.
	bare := RequestMetrics(ok)
	before := testutil.ToFloat64(metrics.APIRequestCounter.With(prometheus.Labels{"method": http.MethodGet, "path": unmatchedPath}))
	for _, p := range []string{"/a", "/b/c", "/random-123"} {
		bare.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}
	after := testutil.ToFloat64(metrics.APIRequestCounter.With(prometheus.Labels{"method": http.MethodGet, "path": unmatchedPath}))
	assert.Equal(t, 3.0, after-before)
	assert.Zero(t, testutil.ToFloat64(metrics.APIRequestCounter.With(prometheus.Labels{"method": http.MethodGet, "path": "/random-123"})))
}
