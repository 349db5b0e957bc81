package treatment

import "context"

type Repository interface {
	ListByPatient(ctx context.Context, patientID string) ([]*Treatment, error)
	GetByID(ctx context.Context, id string) (*Treatment, error)
	Create(ctx context.Context, t *Treatment) error
	Update(ctx context.Context, t *Treatment) error
	Delete(ctx context.Context, id string) error
}
