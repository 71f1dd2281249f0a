// Package analysis implements the AI analysis pipeline: prompt
// construction, generation, response parsing, and session state.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/models"
)

var (
	// ErrValidationSkip signals an empty/whitespace request: no upstream
	// call was made and no view transition happened.
	ErrValidationSkip = errors.New("empty analysis input")

	// ErrAnalysisInFlight signals that a request was refused because
	// another analysis is already running.
	ErrAnalysisInFlight = errors.New("an analysis is already in flight")

	// ErrNoClient signals that no AI client is configured.
	ErrNoClient = errors.New("AI client not configured")
)

// Service implements interfaces.AnalysisService.
type Service struct {
	ai      interfaces.AIClient
	reports interfaces.ReportStore
	session *Session
	logger  *common.Logger
}

// NewService creates the analysis service. reports may be nil when report
// history is disabled.
func NewService(ai interfaces.AIClient, reports interfaces.ReportStore, logger *common.Logger) *Service {
	return &Service{
		ai:      ai,
		reports: reports,
		session: NewSession(),
		logger:  logger,
	}
}

// validate applies the ValidationSkip rules: blank market queries and
// empty portfolios are silently ignored.
func validate(req models.AnalysisRequest) error {
	switch req.Kind {
	case models.RequestKindPortfolio:
		if len(req.Holdings) == 0 {
			return ErrValidationSkip
		}
	case models.RequestKindBubbles:
		// No payload to validate.
	default:
		if strings.TrimSpace(req.Query) == "" {
			return ErrValidationSkip
		}
	}
	return nil
}

// Analyze runs one request to completion: build prompt, one generation
// call with search augmentation, parse, merge into the session. Upstream
// failures move the session to the error phase and are returned to the
// caller; parse failures never do.
func (s *Service) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if s.ai == nil {
		return nil, ErrNoClient
	}

	if !s.session.Begin() {
		return nil, ErrAnalysisInFlight
	}

	system, user := BuildPrompt(req)

	start := time.Now()
	resp, err := s.ai.Generate(ctx, system, user, true)
	if err != nil {
		s.logger.Warn().Str("kind", string(req.Kind)).Err(err).Msg("Generation failed")
		s.session.Fail(err)
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	update := ParseResponse(resp.Text, resp.Citations)
	// Search augmentation that returned no grounding means the figures are
	// model-fabricated estimates.
	update.IsEstimated = len(resp.Citations) == 0

	s.session.ApplyUpdate(update)
	s.session.Complete()

	state := s.session.State()
	result := state.Result

	s.logger.Info().
		Str("kind", string(req.Kind)).
		Bool("structured", result.StructuredData != nil).
		Int("citations", len(result.Citations)).
		Bool("estimated", result.IsEstimated).
		Dur("duration", time.Since(start)).
		Msg("Analysis complete")

	s.saveReport(ctx, req, result)

	return result, nil
}

// saveReport persists the completed analysis to the report history.
// Best effort — failures are logged, never surfaced.
func (s *Service) saveReport(ctx context.Context, req models.AnalysisRequest, result *models.AnalysisResult) {
	if s.reports == nil || result == nil {
		return
	}
	report := &models.Report{
		ID:        uuid.New().String(),
		Kind:      req.Kind,
		Query:     req.Query,
		Result:    *result,
		CreatedAt: time.Now(),
	}
	if err := s.reports.Save(ctx, report); err != nil {
		s.logger.Warn().Str("id", report.ID).Err(err).Msg("Failed to save report")
	}
}

// State returns a snapshot of the current session.
func (s *Service) State() models.SessionState {
	return s.session.State()
}

// Reset clears the session back to idle.
func (s *Service) Reset() {
	s.session.Reset()
}

// Ensure Service implements AnalysisService
var _ interfaces.AnalysisService = (*Service)(nil)
