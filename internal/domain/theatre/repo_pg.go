package theatre

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orchestra-health/orchestra/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Queryable {
	if q := db.ConnFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const theatreCols = `id, name, status, current_patient_id, current_surgery, next_available, created_at, updated_at`

func scanTheatre(row pgx.Row) (*Theatre, error) {
	var t Theatre
	err := row.Scan(&t.ID, &t.Name, &t.Status, &t.CurrentPatientID, &t.CurrentSurgery, &t.NextAvailable, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *repoPG) Create(ctx context.Context, t *Theatre) error {
	t.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO theatre (id, name, status, next_available)
		VALUES ($1, $2, $3, $4)`,
		t.ID, t.Name, t.Status, t.NextAvailable)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Theatre, error) {
	return scanTheatre(r.conn(ctx).QueryRow(ctx, `SELECT `+theatreCols+` FROM theatre WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, t *Theatre) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE theatre SET status=$2, current_patient_id=$3, current_surgery=$4,
			next_available=$5, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.Status, t.CurrentPatientID, t.CurrentSurgery, t.NextAvailable)
	return err
}

func (r *repoPG) List(ctx context.Context) ([]*Theatre, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+theatreCols+` FROM theatre ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTheatres(rows)
}

func (r *repoPG) ListReady(ctx context.Context) ([]*Theatre, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+theatreCols+` FROM theatre WHERE status = $1 ORDER BY name`, StatusReady)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTheatres(rows)
}

func collectTheatres(rows pgx.Rows) ([]*Theatre, error) {
	var out []*Theatre
	for rows.Next() {
		t, err := scanTheatre(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repoPG) AssignBatch(ctx context.Context, plan []Assignment) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		for _, a := range plan {
			tag, err := db.ConnFromContext(ctx).Exec(ctx, `
				UPDATE theatre SET status=$2, current_patient_id=$3, current_surgery=$4,
					updated_at=NOW()
				WHERE id = $1 AND status = $5`,
				a.TheatreID, StatusInUse, a.PatientID, a.Procedure, StatusReady)
			if err != nil {
				return err
			}
			if tag.RowsAffected() != 1 {
				return fmt.Errorf("theatre %s is no longer ready", a.TheatreName)
			}
		}
		return nil
	})
}
