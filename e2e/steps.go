package e2e

import (
	"github.com/cucumber/godog"

	"github.com/pewpola/dao-condominium/e2e/steps/common"
	"github.com/pewpola/dao-condominium/e2e/steps/facade"
	"github.com/pewpola/dao-condominium/e2e/steps/governance"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (response assertions)
	common.RegisterSteps(ctx, tc)

	// Register registry, topic and voting steps
	governance.RegisterSteps(ctx, tc)

	// Register upgrade facade steps
	facade.RegisterSteps(ctx, tc)
}
