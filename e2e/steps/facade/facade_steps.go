package facade

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(ctx context.Context, actor, method, path string, body any) error
	Field(name string) (any, bool)
}

// RegisterSteps registers upgrade facade step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &facadeSteps{tc: tc}

	ctx.Step(`^"([^"]*)" upgrades the facade to "([^"]*)"$`, steps.upgrade)
	ctx.Step(`^the facade implementation should be "([^"]*)"$`, steps.implementationShouldBe)
}

type facadeSteps struct {
	tc TestContext
}

func (s *facadeSteps) upgrade(ctx context.Context, actor, handle string) error {
	return s.tc.Do(ctx, actor, http.MethodPost, "/facade/upgrade", map[string]any{"implementation": handle})
}

func (s *facadeSteps) implementationShouldBe(ctx context.Context, handle string) error {
	if err := s.tc.Do(ctx, "", http.MethodGet, "/facade/implementation", nil); err != nil {
		return err
	}
	if got, _ := s.tc.Field("implementation"); got != handle {
		return fmt.Errorf("expected implementation %q, got %v", handle, got)
	}
	return nil
}
