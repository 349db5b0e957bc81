package patient

import (
	"context"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/backend"
)

const resource = "patients"

// restPatient is the backend's camelCase wire shape.
type restPatient struct {
	ID              string `json:"id,omitempty"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	DateOfBirth     string `json:"dateOfBirth"`
	Gender          string `json:"gender"`
	Phone           string `json:"phone"`
	Address         string `json:"address,omitempty"`
	MedicalHistory  string `json:"medicalHistory,omitempty"`
	Remarks         string `json:"remarks,omitempty"`
	LastAppointment string `json:"lastAppointment,omitempty"`
}

func toREST(p *Patient) restPatient {
	return restPatient{
		ID:              p.ID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		DateOfBirth:     p.DateOfBirth,
		Gender:          p.Gender,
		Phone:           p.Phone,
		Address:         p.Address,
		MedicalHistory:  p.MedicalHistory,
		Remarks:         p.Remarks,
		LastAppointment: p.LastAppointment,
	}
}

func (r restPatient) model() *Patient {
	return &Patient{
		ID:              r.ID,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		DateOfBirth:     r.DateOfBirth,
		Gender:          r.Gender,
		Phone:           r.Phone,
		Address:         r.Address,
		MedicalHistory:  r.MedicalHistory,
		Remarks:         r.Remarks,
		LastAppointment: r.LastAppointment,
	}
}

type repoREST struct{ client *backend.Client }

func NewRepoREST(client *backend.Client) Repository { return &repoREST{client: client} }

func (r *repoREST) List(ctx context.Context) ([]*Patient, error) {
	var wire []restPatient
	if err := r.client.List(ctx, resource, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]*Patient, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.model())
	}
	return out, nil
}

func (r *repoREST) GetByID(ctx context.Context, id string) (*Patient, error) {
	var wire restPatient
	if err := r.client.Get(ctx, resource, id, &wire); err != nil {
		return nil, err
	}
	return wire.model(), nil
}

func (r *repoREST) Create(ctx context.Context, p *Patient) error {
	in := toREST(p)
	in.ID = ""
	var out restPatient
	if err := r.client.Create(ctx, resource, in, &out); err != nil {
		return err
	}
	*p = *out.model()
	return nil
}

func (r *repoREST) Update(ctx context.Context, p *Patient) error {
	var out restPatient
	if err := r.client.Replace(ctx, resource, p.ID, toREST(p), &out); err != nil {
		return err
	}
	*p = *out.model()
	return nil
}

func (r *repoREST) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, resource, id)
}
