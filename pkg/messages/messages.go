// Package messages centralizes log message literals so they can be reused
// across the code-base and kept consistent. Constants are grouped by
// functional area (Fixture, Driver, Validate, CLI).
package messages

const (
	// Fixture materialization
	MsgCacheSlotBuilding  = "building fixture cache slot"
	MsgCacheSlotReady     = "fixture cache slot ready"
	MsgCacheSlotReused    = "reusing fixture cache slot"
	MsgInstallingPackages = "installing missing packages"
	MsgNoMissingPackages  = "no missing packages to install"
	MsgWorkingProjectNew  = "recreating working project"
	MsgAutoloadRegen      = "regenerating autoload metadata"
	MsgOverlayingFixtures = "overlaying scenario fixtures"

	// Replacement engine
	MsgApplyingReplacement = "applying replacement"

	// Interactive driver
	MsgGeneratorStarting = "starting generator"
	MsgAnswerWritten     = "wrote scripted answer"
	MsgInputClosed       = "input plan exhausted, closing stdin"
	MsgGeneratorExited   = "generator exited"

	// Validators
	MsgStyleChecking   = "style checking artifact"
	MsgRunningPostCmd  = "running post-generation command"
	MsgRunningTests    = "running generated test suite"
	MsgValidationClean = "all validations passed"

	// CLI
	MsgScenarioLoaded = "scenario loaded"
	MsgRunSucceeded   = "scenario succeeded"
	MsgRunFailed      = "scenario failed"
)
