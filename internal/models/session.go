package models

// ViewPhase identifies which screen the client should render.
type ViewPhase string

const (
	ViewPhaseIdle    ViewPhase = "idle"    // no analysis requested yet
	ViewPhaseWorking ViewPhase = "working" // request in flight, spinner
	ViewPhaseReport  ViewPhase = "report"  // narrative available, render report
	ViewPhaseError   ViewPhase = "error"   // upstream failure, error screen
)

// SessionState is a snapshot of the analysis session: the current view
// phase, the merged result, and the user-facing error message when the
// phase is ViewPhaseError.
type SessionState struct {
	Phase        ViewPhase       `json:"phase"`
	Result       *AnalysisResult `json:"result,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
}
