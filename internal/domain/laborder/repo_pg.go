package laborder

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const labCols = `id, patient_id, doctor_id, test_type, notes, status, results, results_at, created_at, updated_at`

func scanLabOrder(row pgx.Row) (*LabOrder, error) {
	var o LabOrder
	err := row.Scan(&o.ID, &o.PatientID, &o.DoctorID, &o.TestType, &o.Notes,
		&o.Status, &o.Results, &o.ResultsAt, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

func (r *repoPG) Create(ctx context.Context, o *LabOrder) error {
	o.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lab_order (id, patient_id, doctor_id, test_type, notes, status)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		o.ID, o.PatientID, o.DoctorID, o.TestType, o.Notes, o.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*LabOrder, error) {
	return scanLabOrder(r.pool.QueryRow(ctx, `SELECT `+labCols+` FROM lab_order WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, o *LabOrder) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE lab_order SET test_type=$2, notes=$3, status=$4, results=$5, results_at=$6, updated_at=NOW()
		WHERE id = $1`,
		o.ID, o.TestType, o.Notes, o.Status, o.Results, o.ResultsAt)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*LabOrder, int, error) {
	return r.list(ctx, `TRUE`, nil, limit, offset)
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*LabOrder, int, error) {
	return r.list(ctx, `doctor_id = $1`, []interface{}{doctorID}, limit, offset)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*LabOrder, int, error) {
	return r.list(ctx, `patient_id = $1`, []interface{}{patientID}, limit, offset)
}

func (r *repoPG) list(ctx context.Context, where string, args []interface{}, limit, offset int) ([]*LabOrder, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM lab_order WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	query := `SELECT ` + labCols + ` FROM lab_order WHERE ` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*LabOrder
	for rows.Next() {
		o, err := scanLabOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, o)
	}
	return items, total, rows.Err()
}
