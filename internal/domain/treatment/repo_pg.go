package treatment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/apperr"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const treatmentCols = `id, patient_id, medication, dosage, frequency, start_date::text,
	COALESCE(end_date::text, ''), prescribed_by, notes`

func scanTreatment(row pgx.Row) (*Treatment, error) {
	var t Treatment
	err := row.Scan(&t.ID, &t.PatientID, &t.Medication, &t.Dosage, &t.Frequency, &t.StartDate,
		&t.EndDate, &t.PrescribedBy, &t.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return &t, err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID string) ([]*Treatment, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+treatmentCols+` FROM treatments WHERE patient_id = $1 ORDER BY created_at, id`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Treatment
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *repoPG) GetByID(ctx context.Context, id string) (*Treatment, error) {
	return scanTreatment(db.Conn(ctx, r.pool).QueryRow(ctx, `SELECT `+treatmentCols+` FROM treatments WHERE id = $1`, id))
}

func (r *repoPG) Create(ctx context.Context, t *Treatment) error {
	t.ID = uuid.NewString()
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO treatments (id, patient_id, medication, dosage, frequency, start_date,
			end_date, prescribed_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6::date, NULLIF($7, '')::date, $8, $9)`,
		t.ID, t.PatientID, t.Medication, t.Dosage, t.Frequency, t.StartDate,
		t.EndDate, t.PrescribedBy, t.Notes)
	return err
}

func (r *repoPG) Update(ctx context.Context, t *Treatment) error {
	tag, err := db.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE treatments SET patient_id=$2, medication=$3, dosage=$4, frequency=$5,
			start_date=$6::date, end_date=NULLIF($7, '')::date, prescribed_by=$8, notes=$9,
			updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.PatientID, t.Medication, t.Dosage, t.Frequency, t.StartDate,
		t.EndDate, t.PrescribedBy, t.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id string) error {
	tag, err := db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM treatments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
