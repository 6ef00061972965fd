package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pewpola/dao-condominium/internal/facade"
	jwttoken "github.com/pewpola/dao-condominium/internal/jwt_token"
	"github.com/pewpola/dao-condominium/internal/platform/config"
	id "github.com/pewpola/dao-condominium/pkg/domain"
	"github.com/pewpola/dao-condominium/pkg/platform/sentinel"
	"github.com/pewpola/dao-condominium/pkg/testutil"
)

const (
	manager  = "0x5fbdb2315678afecb367f032d93f642f64180aa3"
	resident = "0x70997970c51812dc3a010c7d01b50e0d17dc79c8"
)

func testConfig() config.Config {
	return config.Config{
		Server: config.Server{
			JWTSigningKey: "test-key",
			JWTIssuer:     "test-issuer",
			JWTAudience:   "test-audience",
		},
		Governance: config.Governance{
			Manager:         manager,
			FacadeAuthority: manager,
			Implementation:  "condominium-v1",
			Blocks:          2,
			Floors:          5,
			UnitsPerFloor:   5,
		},
		AuditQueue: 16,
	}
}

func bearer(t *testing.T, cfg config.Config, identity string) string {
	t.Helper()
	svc := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)
	token, err := svc.IssueCallerToken(id.Identity(identity), time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestInMemoryGateway(t *testing.T) {
	cfg := testConfig()
	a, err := build(context.Background(), cfg, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)
	t.Cleanup(a.close)
	require.Equal(t, "memory", a.storeKind)
	require.Equal(t, "memory", a.auditKind)

	testutil.Given(t, "a fresh gateway", func(t *testing.T) {
		rr := testutil.DoRequest(a.router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.AssertStatusOK(t, rr)

		rr = testutil.DoRequest(a.router, testutil.NewRequest(t, http.MethodGet, "/readyz"))
		testutil.AssertJSONContains(t, rr, "status", "ready")

		rr = testutil.DoRequest(a.router, testutil.NewRequest(t, http.MethodGet, "/facade/implementation"))
		testutil.AssertJSONContains(t, rr, "implementation", "condominium-v1")
	})

	testutil.When(t, "the manager adds a resident with a signed token", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/residents", map[string]any{"identity": resident, "residence": 1301})
		req.Header.Set("Authorization", bearer(t, cfg, manager))
		rr := testutil.DoRequest(a.router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)
		require.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	testutil.Then(t, "the resident is visible through the facade", func(t *testing.T) {
		rr := testutil.DoRequest(a.router, testutil.NewRequest(t, http.MethodGet, "/residents/"+resident))
		testutil.AssertJSONContains(t, rr, "resident", true)
	})

	testutil.And(t, "a forged token is rejected", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/topics", map[string]any{"name": "gym"})
		other := cfg
		other.Server.JWTSigningKey = "other-key"
		req.Header.Set("Authorization", bearer(t, other, manager))
		rr := testutil.DoRequest(a.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthenticated")
	})

	testutil.Then(t, "metrics are exposed", func(t *testing.T) {
		rr := testutil.DoRequest(a.router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
		testutil.AssertStatusOK(t, rr)
		require.Contains(t, rr.Body.String(), "condo_residents 1")
	})
}

func TestBuildRejectsBadLayout(t *testing.T) {
	cfg := testConfig()
	cfg.Governance.Floors = 12
	_, err := build(context.Background(), cfg, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.Error(t, err)
}

func TestReadyReportsFailingDependency(t *testing.T) {
	a := &app{checks: map[string]func(context.Context) error{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	}}

	rr := testutil.DoRequest(http.HandlerFunc(a.ready), testutil.NewRequest(t, http.MethodGet, "/readyz"))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	testutil.AssertJSONContains(t, rr, "dependency", "redis")
}

// pointerOutage fails the first Load, then behaves like its inner store.
type pointerOutage struct {
	*facade.InMemoryPointer
	failedLoads int
	stores      int
}

func (p *pointerOutage) Load(ctx context.Context) (string, error) {
	if p.failedLoads == 0 {
		p.failedLoads++
		return "", errors.Join(sentinel.ErrUnavailable, errors.New("connection reset"))
	}
	return p.InMemoryPointer.Load(ctx)
}

func (p *pointerOutage) Store(ctx context.Context, handle string) error {
	p.stores++
	return p.InMemoryPointer.Store(ctx, handle)
}

func TestSeedPointer(t *testing.T) {
	ctx := context.Background()
	newGateway := func(t *testing.T, pointer facade.PointerStore) *facade.Facade {
		t.Helper()
		gateway, err := facade.New(id.Identity(manager), pointer, facade.NewRegistry())
		require.NoError(t, err)
		return gateway
	}

	t.Run("unset pointer is seeded", func(t *testing.T) {
		pointer := facade.NewInMemoryPointer()
		require.NoError(t, seedPointer(ctx, newGateway(t, pointer), pointer, "condominium-v1"))
		handle, err := pointer.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, "condominium-v1", handle)
	})

	t.Run("existing pointer is left alone", func(t *testing.T) {
		pointer := facade.NewInMemoryPointer()
		require.NoError(t, pointer.Store(ctx, "condominium-v2"))
		require.NoError(t, seedPointer(ctx, newGateway(t, pointer), pointer, "condominium-v1"))
		handle, err := pointer.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, "condominium-v2", handle)
	})

	t.Run("load failure aborts without overwriting an upgrade", func(t *testing.T) {
		pointer := &pointerOutage{InMemoryPointer: facade.NewInMemoryPointer()}
		require.NoError(t, pointer.InMemoryPointer.Store(ctx, "condominium-v2"))

		err := seedPointer(ctx, newGateway(t, pointer), pointer, "condominium-v1")
		require.Error(t, err)
		require.Zero(t, pointer.stores)

		handle, err := pointer.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, "condominium-v2", handle)
	})
}
