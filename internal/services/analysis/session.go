package analysis

import (
	"strings"
	"sync"

	"github.com/bobmcallan/marketlens/internal/models"
)

// reportThreshold is the merged-markdown length past which the session
// leaves the working phase and shows the report, even when structured data
// has not arrived yet.
const reportThreshold = 3

// friendlyOverloadMessage replaces known upstream overload signals.
const friendlyOverloadMessage = "The analysis service is experiencing high traffic right now. Please try again in a moment."

// Session is the single owner of the current analysis result. Every
// partial update from a generation call is merged here; merges are
// idempotent and safe under repeated sequential invocation, so the same
// rules hold if delivery ever becomes truly incremental.
type Session struct {
	mu       sync.Mutex
	phase    models.ViewPhase
	result   *models.AnalysisResult
	errMsg   string
	inFlight bool
}

// NewSession creates an idle session.
func NewSession() *Session {
	return &Session{phase: models.ViewPhaseIdle}
}

// Begin marks an analysis as in flight and moves to the working phase.
// Returns false when another analysis is already running — the caller must
// not start a duplicate request.
func (s *Session) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return false
	}
	s.inFlight = true
	s.phase = models.ViewPhaseWorking
	s.errMsg = ""
	return true
}

// ApplyUpdate merges a partial result into the session, field by field:
//   - markdown: the new value wins when non-empty; never truncated back to
//     empty once narrative text has been shown
//   - structured data: replaced when present and non-empty; never cleared
//     once set
//   - citations: replaced when present, else kept
//   - isEstimated: always the latest value
//
// As soon as the merged markdown exceeds a trivial length the phase
// transitions to report — the report screen renders correctly with
// structured data still absent.
func (s *Session) ApplyUpdate(update *models.AnalysisResult) {
	if update == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		s.result = &models.AnalysisResult{}
	}

	if update.MarkdownReport != "" {
		s.result.MarkdownReport = update.MarkdownReport
	}
	if update.StructuredData != nil && !update.StructuredData.IsEmpty() {
		s.result.StructuredData = update.StructuredData
	}
	if len(update.Citations) > 0 {
		s.result.Citations = update.Citations
	}
	if update.Verdict != "" {
		s.result.Verdict = update.Verdict
	}
	s.result.IsEstimated = update.IsEstimated

	if s.phase != models.ViewPhaseError && len(strings.TrimSpace(s.result.MarkdownReport)) > reportThreshold {
		s.phase = models.ViewPhaseReport
	}
}

// Complete marks the in-flight analysis as finished.
func (s *Session) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

// Fail records an upstream failure. The error view fully replaces the
// report: previously merged content is discarded and the cleaned upstream
// message becomes the user-facing error.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight = false
	s.phase = models.ViewPhaseError
	s.result = nil
	s.errMsg = CleanUpstreamMessage(err.Error())
}

// Reset clears all analysis state back to idle (the retry action).
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight = false
	s.phase = models.ViewPhaseIdle
	s.result = nil
	s.errMsg = ""
}

// State returns a snapshot of the session. The returned result is a copy —
// callers cannot mutate session state through it.
func (s *Session) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := models.SessionState{
		Phase:        s.phase,
		ErrorMessage: s.errMsg,
	}
	if s.result != nil {
		copied := *s.result
		state.Result = &copied
	}
	return state
}

// CleanUpstreamMessage rewrites known overload signals to a fixed friendly
// message and extracts the "message" field from JSON-shaped error bodies.
func CleanUpstreamMessage(msg string) string {
	lower := strings.ToLower(msg)
	if strings.Contains(msg, "503") || strings.Contains(lower, "overloaded") || strings.Contains(lower, "unavailable") {
		return friendlyOverloadMessage
	}

	if m := embeddedMessage.FindStringSubmatch(msg); m != nil && m[1] != "" {
		return m[1]
	}

	return msg
}
