package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pewpola/dao-condominium/internal/platform/metrics"
	id "github.com/pewpola/dao-condominium/pkg/domain"
	"github.com/pewpola/dao-condominium/pkg/requestcontext"
)

type stubValidator struct {
	claims *CallerClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*CallerClaims, error) {
	return s.claims, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func echoCaller() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(requestcontext.Caller(r.Context()).String()))
	})
}

func TestAuthenticate(t *testing.T) {
	const subject = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

	tests := []struct {
		name       string
		header     string
		validator  JWTValidator
		wantStatus int
		wantCaller id.Identity
	}{
		{
			name:       "anonymous request passes through",
			validator:  stubValidator{err: errors.New("not called")},
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid token sets normalized caller",
			header:     "Bearer good",
			validator:  stubValidator{claims: &CallerClaims{Subject: subject}},
			wantStatus: http.StatusOK,
			wantCaller: "0x5fbdb2315678afecb367f032d93f642f64180aa3",
		},
		{
			name:       "invalid token is rejected",
			header:     "Bearer bad",
			validator:  stubValidator{err: errors.New("bad signature")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non bearer scheme is rejected",
			header:     "Basic Zm9vOmJhcg==",
			validator:  stubValidator{claims: &CallerClaims{Subject: subject}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "zero address subject is rejected",
			header:     "Bearer zero",
			validator:  stubValidator{claims: &CallerClaims{Subject: id.ZeroAddress}},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			Authenticate(tt.validator, discardLogger())(echoCaller()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantCaller.String(), rec.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(requestcontext.RequestID(r.Context())))
	}))

	t.Run("generated when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, rec.Body.String())
		assert.Equal(t, rec.Body.String(), rec.Header().Get(RequestIDHeader))
	})

	t.Run("inbound id reused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, "req-123", rec.Body.String())
	})
}

func TestRecovery(t *testing.T) {
	handler := Recovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestAccessLogRecordsRoutePattern(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(AccessLog(discardLogger(), m))
	r.Get("/topics/{name}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, name := range []string{"gym", "pool"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/topics/"+name, nil))
	}

	assert.InDelta(t, 2, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "/topics/{name}", "404")), 0)
}
