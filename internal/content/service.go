// Package content runs one content request from raw form fields to the
// rendered report.
package content

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/content-generator/internal/apperror"
	"github.com/BerylCAtieno/content-generator/internal/generator"
	"github.com/BerylCAtieno/content-generator/internal/logger"
	"github.com/BerylCAtieno/content-generator/internal/metrics"
	"github.com/BerylCAtieno/content-generator/internal/models"
	"github.com/BerylCAtieno/content-generator/internal/report"
	"github.com/BerylCAtieno/content-generator/internal/tracer"
	"github.com/BerylCAtieno/content-generator/internal/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// State is a step of the per-request state machine:
//
//	Idle → Validating → Invalid → Reporting
//	                  → Valid → Generating → Failed → Reporting
//	                                       → Succeeded → Formatting → Reporting
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateInvalid    State = "invalid"
	StateValid      State = "valid"
	StateGenerating State = "generating"
	StateFailed     State = "failed"
	StateSucceeded  State = "succeeded"
	StateFormatting State = "formatting"
	StateReporting  State = "reporting"

	// StateUnavailable and StateError end a run outside the normal flow:
	// no generator is configured, or something panicked.
	StateUnavailable State = "unavailable"
	StateError       State = "error"
)

// Progress is reported at fixed milestones of a run.
type Progress struct {
	State       State   `json:"state"`
	Fraction    float64 `json:"fraction"`
	Description string  `json:"description"`
}

// ProgressFunc receives progress milestones. It is called synchronously.
type ProgressFunc func(Progress)

var (
	progressValidating = Progress{StateValidating, 0.1, "Validating input..."}
	progressPreparing  = Progress{StateValid, 0.3, "Preparing content generation..."}
	progressGenerating = Progress{StateGenerating, 0.5, "Generating content with AI..."}
	progressFormatting = Progress{StateFormatting, 0.9, "Formatting result..."}
	progressDone       = Progress{StateReporting, 1.0, "Done"}
)

// Result is what a run hands back to the caller. Report is always set.
type Result struct {
	Report     string                    `json:"report"`
	State      State                     `json:"state"`
	Validation *models.ValidationResult  `json:"validation,omitempty"`
	Outcome    *models.GenerationOutcome `json:"outcome,omitempty"`
	Err        *apperror.AppError        `json:"-"`
}

// Service holds the read-only collaborators shared by every run.
type Service struct {
	availability generator.Availability
	rules        validation.Rules
}

func NewService(availability generator.Availability, rules validation.Rules) *Service {
	return &Service{availability: availability, rules: rules}
}

func (s *Service) Available() bool {
	return s.availability.Available()
}

func (s *Service) Availability() generator.Availability {
	return s.availability
}

func (s *Service) Rules() validation.Rules {
	return s.rules
}

// Run validates raw and, when valid, generates and formats the content. It
// always returns a Result with a report, converting panics into the
// unexpected-error report. progress may be nil.
func (s *Service) Run(ctx context.Context, raw map[string]any, progress ProgressFunc) (result Result) {
	ctx, span := tracer.Start(ctx, "content.Run")
	defer span.End()

	state := StateIdle
	transition := func(next State) {
		logger.Debug(ctx, "content state transition", "from", state, "to", next)
		state = next
	}
	notify := func(p Progress) {
		if progress != nil {
			progress(p)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%v", r)
			logger.Error(ctx, "unexpected error in content generation", err, "state", state)
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")
			result = Result{
				Report:     report.FormatUnexpected(err.Error()),
				State:      StateError,
				Validation: result.Validation,
				Outcome:    result.Outcome,
				Err:        apperror.Wrap(err, apperror.CodeInternal, "unexpected error"),
			}
		}
		metrics.RequestsByState.WithLabelValues(string(result.State)).Inc()
		span.SetAttributes(attribute.String("content.state", string(result.State)))
	}()

	if !s.availability.Available() {
		logger.Error(ctx, "content generator unavailable", s.availability.Err)
		return Result{
			Report: report.ConfigurationError,
			State:  StateUnavailable,
			Err:    apperror.ErrGeneratorUnavailable,
		}
	}

	transition(StateValidating)
	notify(progressValidating)
	validated := validation.ValidateAll(raw, s.rules)
	result.Validation = &validated

	if !validated.IsValid {
		metrics.ValidationTotal.WithLabelValues("invalid").Inc()
		transition(StateInvalid)
		transition(StateReporting)
		logger.Info(ctx, "content request rejected", "errors", len(validated.Errors))
		return Result{
			Report:     report.FormatValidationErrors(validated.Errors),
			State:      StateInvalid,
			Validation: &validated,
			Err:        apperror.ErrValidationFailed,
		}
	}
	metrics.ValidationTotal.WithLabelValues("valid").Inc()
	transition(StateValid)
	notify(progressPreparing)

	req := validated.Request()

	transition(StateGenerating)
	notify(progressGenerating)
	outcome := s.availability.Generator.GenerateWithMetadata(ctx, req)
	result.Outcome = &outcome

	if !outcome.Success {
		transition(StateFailed)
		transition(StateReporting)
		return Result{
			Report:     report.FormatGenerationError(outcome.Error),
			State:      StateFailed,
			Validation: &validated,
			Outcome:    &outcome,
			Err: apperror.New(apperror.CodeGenerationFailed, "content generation failed").
				WithDetail(outcome.Error),
		}
	}

	transition(StateSucceeded)
	transition(StateFormatting)
	notify(progressFormatting)
	text := report.FormatSuccess(outcome)
	metrics.ContentWordCount.Observe(float64(outcome.Metadata.WordCount))

	transition(StateReporting)
	notify(progressDone)
	logger.Info(ctx, "content generated",
		"topic", req.Topic,
		"words", outcome.Metadata.WordCount,
		"seconds", outcome.Metadata.GenerationTime,
	)
	return Result{
		Report:     text,
		State:      StateSucceeded,
		Validation: &validated,
		Outcome:    &outcome,
	}
}

// RunRequest is Run over a typed request.
func (s *Service) RunRequest(ctx context.Context, req models.ContentRequest, progress ProgressFunc) Result {
	return s.Run(ctx, req.Fields(), progress)
}
