// Package chart assembles the patient details view: the patient record, a
// paginated appointment history and the treatments on file.
package chart

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/domain/appointment"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/domain/patient"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/domain/treatment"
	"github.com/ahmedabddayme3752/cabinet-medicale/pkg/listview"
)

const DefaultHistorySize = 3

type PatientSource interface {
	Get(ctx context.Context, id string) (*patient.Patient, error)
}

type AppointmentSource interface {
	ListByPatient(ctx context.Context, patientID string) ([]*appointment.Appointment, error)
}

type TreatmentSource interface {
	ListByPatient(ctx context.Context, patientID string) ([]*treatment.Treatment, error)
}

// History is one page of a patient's appointments, most recent first.
type History struct {
	Items []*appointment.Appointment `json:"items"`
	Meta  listview.PageMeta          `json:"meta"`
}

type Chart struct {
	Patient    *patient.Patient       `json:"patient"`
	Age        *int                   `json:"age,omitempty"`
	History    History                `json:"history"`
	Treatments []*treatment.Treatment `json:"treatments"`
}

type Service struct {
	patients     PatientSource
	appointments AppointmentSource
	treatments   TreatmentSource
	logger       zerolog.Logger
	window       int
	now          func() time.Time
}

func NewService(p PatientSource, a AppointmentSource, t TreatmentSource, logger zerolog.Logger, window int) *Service {
	return &Service{
		patients:     p,
		appointments: a,
		treatments:   t,
		logger:       logger.With().Str("domain", "chart").Logger(),
		window:       window,
		now:          time.Now,
	}
}

// Details loads the chart of one patient. page and size select the history
// page; an out-of-range page lands on the nearest one.
func (s *Service) Details(ctx context.Context, patientID string, page, size int) (*Chart, error) {
	p, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultHistorySize
	}

	loader := listview.LoaderFunc[*appointment.Appointment](func(ctx context.Context) ([]*appointment.Appointment, error) {
		return s.appointments.ListByPatient(ctx, patientID)
	})
	ctrl := listview.NewController[*appointment.Appointment](loader, appointment.HistoryFields,
		listview.WithOrder(listview.Descending),
		listview.WithPageSize(size),
		listview.WithWindowSize(s.window),
		listview.WithClock(s.now),
		listview.WithLogger(s.logger),
	)
	if err := ctrl.Load(ctx); err != nil {
		return nil, fmt.Errorf("load history of patient %s: %w", patientID, err)
	}
	ctrl.Restore(listview.State{Page: page, PageSize: size, Order: listview.Descending})

	treatments, err := s.treatments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("load treatments of patient %s: %w", patientID, err)
	}
	if treatments == nil {
		treatments = []*treatment.Treatment{}
	}

	c := &Chart{
		Patient:    p,
		History:    History{Items: ctrl.VisibleItems(), Meta: ctrl.PageMetadata()},
		Treatments: treatments,
	}
	if age, ok := p.Age(s.now()); ok {
		c.Age = &age
	}
	return c, nil
}
