package patient

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/apperr"
	"github.com/ahmedabddayme3752/cabinet-medicale/pkg/listview"
)

// -- Mock Repository --

type mockRepo struct {
	items   []*Patient
	seq     int
	listErr error
}

func (m *mockRepo) List(_ context.Context) ([]*Patient, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*Patient, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *mockRepo) GetByID(_ context.Context, id string) (*Patient, error) {
	for _, p := range m.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	m.seq++
	p.ID = fmt.Sprintf("p%d", m.seq)
	m.items = append(m.items, p)
	return nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	for i, existing := range m.items {
		if existing.ID == p.ID {
			m.items[i] = p
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	for i, p := range m.items {
		if p.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

func validPatient() *Patient {
	return &Patient{
		FirstName:   "Awa",
		LastName:    "Diallo",
		DateOfBirth: "1988-04-12",
		Gender:      "F",
		Phone:       "+222 45 25 10 10",
	}
}

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, zerolog.Nop(), listview.WithPageSize(9))
}

func seed(repo *mockRepo, n int) {
	for i := 0; i < n; i++ {
		p := validPatient()
		p.FirstName = fmt.Sprintf("Patient%02d", i+1)
		repo.Create(context.Background(), p)
	}
}

func TestService_Create(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	p := validPatient()
	p.Gender = " f "
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if p.ID == "" {
		t.Error("expected an ID to be assigned")
	}
	if p.Gender != "F" {
		t.Errorf("expected gender normalized to F, got %q", p.Gender)
	}
	if len(repo.items) != 1 {
		t.Errorf("expected 1 stored patient, got %d", len(repo.items))
	}
}

func TestService_Validate(t *testing.T) {
	svc := newTestService(&mockRepo{})
	svc.now = func() time.Time { return time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name   string
		mutate func(p *Patient)
		ok     bool
	}{
		{"valid", func(p *Patient) {}, true},
		{"missing first name", func(p *Patient) { p.FirstName = "" }, false},
		{"short last name", func(p *Patient) { p.LastName = "D" }, false},
		{"bad birth date", func(p *Patient) { p.DateOfBirth = "12/04/1988" }, false},
		{"future birth date", func(p *Patient) { p.DateOfBirth = "2030-01-01" }, false},
		{"unknown gender", func(p *Patient) { p.Gender = "X" }, false},
		{"missing phone", func(p *Patient) { p.Phone = "" }, false},
		{"letters in phone", func(p *Patient) { p.Phone = "call me" }, false},
		{"dashed phone", func(p *Patient) { p.Phone = "45-25-10-10" }, true},
		{"bad last appointment", func(p *Patient) { p.LastAppointment = "soon" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPatient()
			tt.mutate(p)
			err := svc.Validate(p)
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok {
				var verr *apperr.ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected *ValidationError, got %v", err)
				}
			}
		})
	}
}

func TestService_CreateInvalidDoesNotStore(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)
	p := validPatient()
	p.Phone = ""
	if err := svc.Create(context.Background(), p); err == nil {
		t.Fatal("expected validation error")
	}
	if len(repo.items) != 0 {
		t.Error("an invalid patient must not be stored")
	}
}

func TestService_List(t *testing.T) {
	repo := &mockRepo{}
	seed(repo, 20)
	svc := newTestService(repo)

	page, err := svc.List(context.Background(), listview.State{Page: 3})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if page.Meta.TotalPages != 3 || page.Meta.CurrentPage != 3 {
		t.Errorf("unexpected metadata %+v", page.Meta)
	}
	if len(page.Items) != 2 || page.Items[0].FirstName != "Patient19" {
		t.Errorf("unexpected last page %v", page.Items)
	}
}

func TestService_ListFiltered(t *testing.T) {
	repo := &mockRepo{}
	seed(repo, 12)
	svc := newTestService(repo)

	page, err := svc.List(context.Background(), listview.State{
		Page:     1,
		Criteria: listview.Criteria{Term: "patient1"},
	})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if page.Meta.TotalItems != 3 {
		t.Errorf("expected Patient10..12, got %d matches", page.Meta.TotalItems)
	}
}

func TestService_ListLoadError(t *testing.T) {
	svc := newTestService(&mockRepo{listErr: errors.New("connection refused")})
	_, err := svc.List(context.Background(), listview.State{Page: 1})
	var loadErr *listview.LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("expected *LoadError, got %v", err)
	}
}

func TestService_UpdateAndDelete(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)
	p := validPatient()
	svc.Create(context.Background(), p)

	updated := validPatient()
	updated.ID = p.ID
	updated.Remarks = "allergic to penicillin"
	if err := svc.Update(context.Background(), updated); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	got, _ := svc.Get(context.Background(), p.ID)
	if got.Remarks != "allergic to penicillin" {
		t.Errorf("expected remarks to be updated, got %q", got.Remarks)
	}

	if err := svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := svc.Get(context.Background(), p.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestService_UpdateMissing(t *testing.T) {
	svc := newTestService(&mockRepo{})
	p := validPatient()
	p.ID = "missing"
	if err := svc.Update(context.Background(), p); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
