package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/apperr"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const apptCols = `id, patient_id, date::text, time, reason, status, notes`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.Date, &a.Time, &a.Reason, &a.Status, &a.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return &a, err
}

func (r *repoPG) query(ctx context.Context, sql string, args ...interface{}) ([]*Appointment, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *repoPG) List(ctx context.Context) ([]*Appointment, error) {
	return r.query(ctx, `SELECT `+apptCols+` FROM appointments ORDER BY created_at, id`)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID string) ([]*Appointment, error) {
	return r.query(ctx, `SELECT `+apptCols+` FROM appointments WHERE patient_id = $1 ORDER BY created_at, id`, patientID)
}

func (r *repoPG) GetByID(ctx context.Context, id string) (*Appointment, error) {
	return scanAppointment(db.Conn(ctx, r.pool).QueryRow(ctx, `SELECT `+apptCols+` FROM appointments WHERE id = $1`, id))
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.NewString()
	_, err := db.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO appointments (id, patient_id, date, time, reason, status, notes)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7)`,
		a.ID, a.PatientID, a.Date, a.Time, a.Reason, a.Status, a.Notes)
	return err
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	return affected(db.Conn(ctx, r.pool).Exec(ctx, `
		UPDATE appointments SET patient_id=$2, date=$3::date, time=$4, reason=$5, status=$6,
			notes=$7, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.PatientID, a.Date, a.Time, a.Reason, a.Status, a.Notes))
}

func (r *repoPG) UpdateStatus(ctx context.Context, id, status string) error {
	return affected(db.Conn(ctx, r.pool).Exec(ctx,
		`UPDATE appointments SET status=$2, updated_at=NOW() WHERE id = $1`, id, status))
}

func (r *repoPG) Delete(ctx context.Context, id string) error {
	return affected(db.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id))
}

func affected(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
