// Package service contains the query side of the therapist finder: it builds
// the prompt, runs one structured completion against the configured backend,
// and validates the answer into therapist records.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fleveque/therapist-finder/internal/llm"
	"github.com/fleveque/therapist-finder/internal/model"
)

// TherapistSchema is the fixed output schema sent with every request.
var TherapistSchema = llm.RecordSchema{Fields: []llm.Field{
	{Name: model.FieldName, Description: "The full name of the therapist or clinic."},
	{Name: model.FieldSpecialty, Description: "The primary specialty, e.g., 'Cognitive Behavioral Therapy', 'Family Counseling'."},
	{Name: model.FieldAddress, Description: "The complete street address."},
	{Name: model.FieldPhone, Description: "The contact phone number, formatted as (XXX) XXX-XXXX."},
}}

// TherapistService answers "who can I see near this zipcode?".
// It holds no state between calls: no cache, no retry, no limiter.
type TherapistService struct {
	client      llm.Client
	temperature float64
	logger      *zap.Logger
}

// NewTherapistService wires the service to a structured-completion backend.
func NewTherapistService(client llm.Client, temperature float64, logger *zap.Logger) *TherapistService {
	return &TherapistService{
		client:      client,
		temperature: temperature,
		logger:      logger,
	}
}

// BuildPrompt returns the natural-language instruction for a zipcode.
func BuildPrompt(zipcode string) string {
	return fmt.Sprintf("Find 5-7 licensed therapists or mental health clinics in the zipcode %s. "+
		"Provide their name, a primary specialty, full address, and phone number.", zipcode)
}

// FindTherapists runs one structured completion for the zipcode. The caller is
// expected to pass exactly five digits. Every failure comes back as a
// *ServiceError; an empty reply is an empty slice, not an error.
func (s *TherapistService) FindTherapists(ctx context.Context, zipcode string) ([]model.Therapist, error) {
	start := time.Now()

	text, err := s.client.CompleteJSON(ctx, llm.Request{
		Prompt:      BuildPrompt(zipcode),
		Schema:      TherapistSchema,
		Temperature: s.temperature,
	})
	if err != nil {
		kind := KindTransport
		if errors.Is(err, llm.ErrMissingAPIKey) {
			kind = KindCredential
		}
		return nil, s.fail(zipcode, &ServiceError{Kind: kind, Err: err})
	}

	therapists, err := ParseTherapists(text)
	if err != nil {
		var svcErr *ServiceError
		if !errors.As(err, &svcErr) {
			svcErr = &ServiceError{Kind: KindParse, Err: err}
		}
		return nil, s.fail(zipcode, svcErr)
	}

	if len(therapists) == 0 {
		s.logger.Warn("AI service returned an empty response",
			zap.String("zipcode", zipcode),
			zap.String("provider", s.client.ProviderName()),
		)
	}

	s.logger.Info("therapist search complete",
		zap.String("zipcode", zipcode),
		zap.String("provider", s.client.ProviderName()),
		zap.String("model", s.client.ModelName()),
		zap.Int("results", len(therapists)),
		zap.Duration("duration", time.Since(start)),
	)

	return therapists, nil
}

func (s *TherapistService) fail(zipcode string, err *ServiceError) error {
	s.logger.Error("therapist search failed",
		zap.String("zipcode", zipcode),
		zap.String("provider", s.client.ProviderName()),
		zap.String("kind", string(err.Kind)),
		zap.Error(err.Err),
	)
	return err
}
