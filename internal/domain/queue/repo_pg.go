package queue

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const queueCols = `id, doctor_id, patient_id, position, status, created_at, updated_at`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.DoctorID, &e.PatientID, &e.Position, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	return &e, err
}

func (r *repoPG) Create(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO queue_entry (id, doctor_id, patient_id, position, status)
		VALUES ($1,$2,$3,$4,$5)`,
		e.ID, e.DoctorID, e.PatientID, e.Position, e.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return scanEntry(r.pool.QueryRow(ctx, `SELECT `+queueCols+` FROM queue_entry WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, e *Entry) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE queue_entry SET position=$2, status=$3, updated_at=NOW() WHERE id = $1`,
		e.ID, e.Position, e.Status)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM queue_entry WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Entry, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+queueCols+` FROM queue_entry WHERE doctor_id = $1 ORDER BY position`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *repoPG) NextPosition(ctx context.Context, doctorID uuid.UUID) (int, error) {
	var next int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(position), 0) + 1 FROM queue_entry WHERE doctor_id = $1`, doctorID).Scan(&next)
	return next, err
}

func (r *repoPG) ShiftDown(ctx context.Context, doctorID uuid.UUID, fromPosition int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE queue_entry SET position = position - 1, updated_at = NOW()
		WHERE doctor_id = $1 AND position > $2`,
		doctorID, fromPosition)
	return err
}
