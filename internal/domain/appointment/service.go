package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/domain/patient"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/apperr"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/dates"
	"github.com/ahmedabddayme3752/cabinet-medicale/pkg/listview"
)

// PatientDirectory resolves patient names for the list.
type PatientDirectory interface {
	All(ctx context.Context) ([]*patient.Patient, error)
}

// Page is one computed page of the appointment list.
type Page struct {
	Items []*Entry          `json:"items"`
	Meta  listview.PageMeta `json:"meta"`
	State listview.State    `json:"state"`
}

type Service struct {
	repo     Repository
	patients PatientDirectory
	logger   zerolog.Logger
	view     []listview.Option
	now      func() time.Time
}

func NewService(repo Repository, patients PatientDirectory, logger zerolog.Logger, view ...listview.Option) *Service {
	logger = logger.With().Str("domain", "appointment").Logger()
	return &Service{
		repo:     repo,
		patients: patients,
		logger:   logger,
		view:     append([]listview.Option{listview.WithLogger(logger), listview.WithOrder(listview.Ascending)}, view...),
		now:      time.Now,
	}
}

// entries loads every appointment and decorates it. A failure to load the
// patients is not fatal: names fall back to UnknownPatient.
func (s *Service) entries(ctx context.Context) ([]*Entry, error) {
	appts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	names := map[string]string{}
	if people, err := s.patients.All(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("could not load patients for appointment names")
	} else {
		for _, p := range people {
			names[p.ID] = p.FullName()
		}
	}

	now := s.now()
	out := make([]*Entry, 0, len(appts))
	for _, a := range appts {
		name, ok := names[a.PatientID]
		if !ok {
			name = UnknownPatient
		}
		out = append(out, &Entry{Appointment: a, PatientName: name, IsPast: a.IsPast(now)})
	}
	return out, nil
}

func (s *Service) controller(extra ...listview.Option) *listview.Controller[*Entry] {
	opts := append([]listview.Option{listview.WithClock(func() time.Time { return s.now() })}, s.view...)
	opts = append(opts, extra...)
	return listview.NewController[*Entry](listview.LoaderFunc[*Entry](s.entries), EntryFields, opts...)
}

func pageOf(ctrl *listview.Controller[*Entry]) *Page {
	return &Page{Items: ctrl.VisibleItems(), Meta: ctrl.PageMetadata(), State: ctrl.State()}
}

// List returns the page of upcoming-first appointments described by state.
func (s *Service) List(ctx context.Context, state listview.State) (*Page, error) {
	ctrl := s.controller()
	if err := ctrl.Load(ctx); err != nil {
		return nil, err
	}
	ctrl.Restore(state)
	return pageOf(ctrl), nil
}

// UpdateStatus changes one appointment's status and returns the list page
// for state, computed from the reload that follows the change. When the update fails the error
// is a *listview.MutationError and nothing is reloaded.
func (s *Service) UpdateStatus(ctx context.Context, id, status string, state listview.State) (*Page, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !ValidStatus(status) {
		return nil, &apperr.ValidationError{Problems: []string{fmt.Sprintf("invalid status: %q", status)}}
	}

	ctrl := s.controller(listview.WithStatusUpdater(s.repo))
	ctrl.Restore(state)
	if err := ctrl.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.logger.Info().Str("appointment_id", id).Str("status", status).Msg("appointment status changed")
	return pageOf(ctrl), nil
}

// ListByPatient returns a patient's appointments in data source order.
func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]*Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) Get(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// Create books a new appointment. The status is always scheduled.
func (s *Service) Create(ctx context.Context, a *Appointment) error {
	a.Status = StatusScheduled
	if err := Validate(a); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	s.logger.Info().Str("appointment_id", a.ID).Str("patient_id", a.PatientID).Msg("appointment created")
	return nil
}

func (s *Service) Update(ctx context.Context, a *Appointment) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if err := Validate(a); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return fmt.Errorf("update appointment %s: %w", a.ID, err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete appointment %s: %w", id, err)
	}
	s.logger.Info().Str("appointment_id", id).Msg("appointment deleted")
	return nil
}

func Validate(a *Appointment) error {
	var v apperr.Validator
	a.Reason = strings.TrimSpace(a.Reason)

	v.Require("patient_id", a.PatientID)
	v.Require("date", a.Date)
	v.Check(a.Date == "" || dates.Valid(a.Date), "date must be a YYYY-MM-DD date")
	v.Require("time", a.Time)
	if a.Time != "" {
		_, err := time.Parse("15:04", a.Time)
		v.Check(err == nil, "time must be HH:MM")
	}
	v.Require("reason", a.Reason)
	v.Check(a.Reason == "" || utf8.RuneCountInString(a.Reason) >= 3, "reason must be at least 3 characters")
	v.Check(ValidStatus(a.Status), fmt.Sprintf("invalid status: %q", a.Status))

	return v.Err()
}
