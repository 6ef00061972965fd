package e2e

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"
)

const defaultManager = "0x5fbdb2315678afecb367f032d93f642f64180aa3"

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// TestFeatures runs the feature files against a running gateway at
// CONDO_E2E_BASE_URL. The gateway's manager must also be its facade authority.
func TestFeatures(t *testing.T) {
	baseURL := os.Getenv("CONDO_E2E_BASE_URL")
	if baseURL == "" {
		t.Skip("CONDO_E2E_BASE_URL not set")
	}
	tc := NewTestContext(
		baseURL,
		getenv("CONDO_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		getenv("CONDO_JWT_ISSUER", "dao-condominium"),
		getenv("CONDO_JWT_AUDIENCE", "condominium-gateway"),
		getenv("CONDO_MANAGER", defaultManager),
	)

	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
				tc.Reset()
				return ctx, nil
			})
			RegisterSteps(ctx, tc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
