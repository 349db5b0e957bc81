package treatment

import (
	"context"
	"net/url"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/backend"
)

const resource = "treatments"

type restTreatment struct {
	ID           string `json:"id,omitempty"`
	PatientID    string `json:"patientId"`
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate,omitempty"`
	PrescribedBy string `json:"prescribedBy"`
	Notes        string `json:"notes,omitempty"`
}

type repoREST struct{ client *backend.Client }

func NewRepoREST(client *backend.Client) Repository { return &repoREST{client: client} }

func (r *repoREST) ListByPatient(ctx context.Context, patientID string) ([]*Treatment, error) {
	var wire []restTreatment
	if err := r.client.List(ctx, resource, url.Values{"patientId": {patientID}}, &wire); err != nil {
		return nil, err
	}
	out := make([]*Treatment, 0, len(wire))
	for _, w := range wire {
		t := Treatment(w)
		out = append(out, &t)
	}
	return out, nil
}

func (r *repoREST) GetByID(ctx context.Context, id string) (*Treatment, error) {
	var wire restTreatment
	if err := r.client.Get(ctx, resource, id, &wire); err != nil {
		return nil, err
	}
	t := Treatment(wire)
	return &t, nil
}

func (r *repoREST) Create(ctx context.Context, t *Treatment) error {
	in := restTreatment(*t)
	in.ID = ""
	var out restTreatment
	if err := r.client.Create(ctx, resource, in, &out); err != nil {
		return err
	}
	*t = Treatment(out)
	return nil
}

func (r *repoREST) Update(ctx context.Context, t *Treatment) error {
	var out restTreatment
	if err := r.client.Replace(ctx, resource, t.ID, restTreatment(*t), &out); err != nil {
		return err
	}
	*t = Treatment(out)
	return nil
}

func (r *repoREST) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, resource, id)
}
