package treatment

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/apperr"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/dates"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger.With().Str("domain", "treatment").Logger()}
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]*Treatment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) Get(ctx context.Context, id string) (*Treatment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, t *Treatment) error {
	if err := Validate(t); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return fmt.Errorf("create treatment: %w", err)
	}
	s.logger.Info().Str("treatment_id", t.ID).Str("patient_id", t.PatientID).Msg("treatment prescribed")
	return nil
}

func (s *Service) Update(ctx context.Context, t *Treatment) error {
	if err := Validate(t); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return fmt.Errorf("update treatment %s: %w", t.ID, err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete treatment %s: %w", id, err)
	}
	return nil
}

func Validate(t *Treatment) error {
	var v apperr.Validator
	t.Medication = strings.TrimSpace(t.Medication)
	t.PrescribedBy = strings.TrimSpace(t.PrescribedBy)

	v.Require("patient_id", t.PatientID)
	v.Require("medication", t.Medication)
	v.Require("dosage", t.Dosage)
	v.Require("frequency", t.Frequency)
	v.Require("prescribed_by", t.PrescribedBy)

	v.Require("start_date", t.StartDate)
	start, startOK := dates.Parse(t.StartDate)
	v.Check(t.StartDate == "" || startOK, "start_date must be a YYYY-MM-DD date")
	if t.EndDate != "" {
		end, ok := dates.Parse(t.EndDate)
		v.Check(ok, "end_date must be a YYYY-MM-DD date")
		v.Check(!ok || !startOK || !end.Before(start), "end_date cannot be before start_date")
	}
	return v.Err()
}
