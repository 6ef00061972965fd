package common

import (
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	LastStatus() int
	Field(name string) (any, bool)
}

// RegisterSteps registers response assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the error should be "([^"]*)"$`, steps.errorShouldBe)
	ctx.Step(`^the error description should be "([^"]*)"$`, steps.errorDescriptionShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) statusShouldBe(expected int) error {
	if got := s.tc.LastStatus(); got != expected {
		return fmt.Errorf("expected status %d, got %d", expected, got)
	}
	return nil
}

func (s *commonSteps) errorShouldBe(code string) error {
	return s.fieldShouldBe("error", code)
}

func (s *commonSteps) errorDescriptionShouldBe(desc string) error {
	return s.fieldShouldBe("error_description", desc)
}

func (s *commonSteps) fieldShouldBe(field, expected string) error {
	v, ok := s.tc.Field(field)
	if !ok {
		return fmt.Errorf("response has no field %q", field)
	}
	var got string
	switch t := v.(type) {
	case string:
		got = t
	case float64:
		got = strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		got = strconv.FormatBool(t)
	default:
		got = fmt.Sprint(t)
	}
	if got != expected {
		return fmt.Errorf("expected %s=%q, got %q", field, expected, got)
	}
	return nil
}
