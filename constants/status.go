package constants

// Stage is the lifecycle position of a single /extract request.
type Stage string

// Stable values, used as the "stage" log attribute.
const (
	StageReceived  Stage = "RECEIVED"
	StageValidated Stage = "VALIDATED"
	StageStaged    Stage = "STAGED"    // upload written to a scoped temp file
	StageExtracted Stage = "EXTRACTED" // text produced by the pipeline
	StageSuggested Stage = "SUGGESTED"
	StageResponded Stage = "RESPONDED"
	StageFailed    Stage = "FAILED" // terminal failure
)
