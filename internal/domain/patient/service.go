package patient

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/apperr"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/dates"
	"github.com/ahmedabddayme3752/cabinet-medicale/pkg/listview"
)

var phonePattern = regexp.MustCompile(`^[+]?[\d\s-]+$`)

// Page is one computed page of the patient list.
type Page struct {
	Items []*Patient        `json:"items"`
	Meta  listview.PageMeta `json:"meta"`
	State listview.State    `json:"state"`
}

type Service struct {
	repo   Repository
	logger zerolog.Logger
	view   []listview.Option
	now    func() time.Time
}

// NewService builds the patient service. view configures every list view it
// creates (page size, window, clock).
func NewService(repo Repository, logger zerolog.Logger, view ...listview.Option) *Service {
	logger = logger.With().Str("domain", "patient").Logger()
	return &Service{
		repo:   repo,
		logger: logger,
		view:   append([]listview.Option{listview.WithLogger(logger)}, view...),
		now:    time.Now,
	}
}

// List loads every patient and returns the page described by state.
func (s *Service) List(ctx context.Context, state listview.State) (*Page, error) {
	ctrl := listview.NewController[*Patient](listview.LoaderFunc[*Patient](s.repo.List), Fields, s.view...)
	if err := ctrl.Load(ctx); err != nil {
		return nil, err
	}
	ctrl.Restore(state)
	return &Page{Items: ctrl.VisibleItems(), Meta: ctrl.PageMetadata(), State: ctrl.State()}, nil
}

// All returns the full collection, used to resolve names in other lists.
func (s *Service) All(ctx context.Context) ([]*Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	normalize(p)
	if err := s.Validate(p); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return fmt.Errorf("create patient: %w", err)
	}
	s.logger.Info().Str("patient_id", p.ID).Msg("patient created")
	return nil
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	normalize(p)
	if err := s.Validate(p); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return fmt.Errorf("update patient %s: %w", p.ID, err)
	}
	s.logger.Info().Str("patient_id", p.ID).Msg("patient updated")
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete patient %s: %w", id, err)
	}
	s.logger.Info().Str("patient_id", id).Msg("patient deleted")
	return nil
}

func normalize(p *Patient) {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Gender = strings.ToUpper(strings.TrimSpace(p.Gender))
	p.Phone = strings.TrimSpace(p.Phone)
}

// Validate checks the fields the registration form requires.
func (s *Service) Validate(p *Patient) error {
	var v apperr.Validator

	v.Require("first_name", p.FirstName)
	v.Check(p.FirstName == "" || utf8.RuneCountInString(p.FirstName) >= 2, "first_name must be at least 2 characters")
	v.Require("last_name", p.LastName)
	v.Check(p.LastName == "" || utf8.RuneCountInString(p.LastName) >= 2, "last_name must be at least 2 characters")

	v.Require("date_of_birth", p.DateOfBirth)
	if p.DateOfBirth != "" {
		dob, ok := dates.Parse(p.DateOfBirth)
		v.Check(ok, "date_of_birth must be a YYYY-MM-DD date")
		v.Check(!ok || !dob.After(s.now()), "date_of_birth cannot be in the future")
	}

	v.Check(p.Gender == GenderMale || p.Gender == GenderFemale, "gender must be M or F")

	v.Require("phone", p.Phone)
	v.Check(p.Phone == "" || phonePattern.MatchString(p.Phone), "phone may only contain digits, spaces, dashes and a leading +")

	v.Check(p.LastAppointment == "" || dates.Valid(p.LastAppointment), "last_appointment must be a YYYY-MM-DD date")

	return v.Err()
}
