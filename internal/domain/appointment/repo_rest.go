package appointment

import (
	"context"
	"net/url"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/backend"
)

const resource = "appointments"

type restAppointment struct {
	ID        string `json:"id,omitempty"`
	PatientID string `json:"patientId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
}

func toREST(a *Appointment) restAppointment {
	return restAppointment(*a)
}

func (r restAppointment) model() *Appointment {
	a := Appointment(r)
	return &a
}

type repoREST struct{ client *backend.Client }

func NewRepoREST(client *backend.Client) Repository { return &repoREST{client: client} }

func (r *repoREST) list(ctx context.Context, query url.Values) ([]*Appointment, error) {
	var wire []restAppointment
	if err := r.client.List(ctx, resource, query, &wire); err != nil {
		return nil, err
	}
	out := make([]*Appointment, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.model())
	}
	return out, nil
}

func (r *repoREST) List(ctx context.Context) ([]*Appointment, error) {
	return r.list(ctx, nil)
}

func (r *repoREST) ListByPatient(ctx context.Context, patientID string) ([]*Appointment, error) {
	return r.list(ctx, url.Values{"patientId": {patientID}})
}

func (r *repoREST) GetByID(ctx context.Context, id string) (*Appointment, error) {
	var wire restAppointment
	if err := r.client.Get(ctx, resource, id, &wire); err != nil {
		return nil, err
	}
	return wire.model(), nil
}

func (r *repoREST) Create(ctx context.Context, a *Appointment) error {
	in := toREST(a)
	in.ID = ""
	var out restAppointment
	if err := r.client.Create(ctx, resource, in, &out); err != nil {
		return err
	}
	*a = *out.model()
	return nil
}

func (r *repoREST) Update(ctx context.Context, a *Appointment) error {
	var out restAppointment
	if err := r.client.Replace(ctx, resource, a.ID, toREST(a), &out); err != nil {
		return err
	}
	*a = *out.model()
	return nil
}

func (r *repoREST) UpdateStatus(ctx context.Context, id, status string) error {
	return r.client.Patch(ctx, resource, id, map[string]string{"status": status}, nil)
}

func (r *repoREST) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, resource, id)
}
