package ward

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orchestra-health/orchestra/internal/domain/hospital"
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

const bedCols = `id, number, ward, type, is_occupied, patient_id, created_at, updated_at`

func scanBed(row pgx.Row) (*Bed, error) {
	var b Bed
	err := row.Scan(&b.ID, &b.Number, &b.Ward, &b.Type, &b.IsOccupied, &b.PatientID, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *repoPG) Create(ctx context.Context, b *Bed) error {
	b.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bed (id, number, ward, type, is_occupied)
		VALUES ($1, $2, $3, $4, false)`,
		b.ID, b.Number, b.Ward, b.Type)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Bed, error) {
	return scanBed(r.conn(ctx).QueryRow(ctx, `SELECT `+bedCols+` FROM bed WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context) ([]*Bed, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+bedCols+` FROM bed ORDER BY ward, number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBeds(rows)
}

func (r *repoPG) ListByWard(ctx context.Context, ward hospital.Department) ([]*Bed, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+bedCols+` FROM bed WHERE ward = $1 ORDER BY number`, ward)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBeds(rows)
}

func collectBeds(rows pgx.Rows) ([]*Bed, error) {
	var beds []*Bed
	for rows.Next() {
		b, err := scanBed(rows)
		if err != nil {
			return nil, err
		}
		beds = append(beds, b)
	}
	return beds, rows.Err()
}

func (r *repoPG) FindByPatient(ctx context.Context, patientID uuid.UUID) (*Bed, error) {
	b, err := scanBed(r.conn(ctx).QueryRow(ctx, `SELECT `+bedCols+` FROM bed WHERE patient_id = $1`, patientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Claim is a compare-and-swap on occupancy: the UPDATE only lands when the
// bed is still free, so two concurrent claims on one bed cannot both succeed.
func (r *repoPG) Claim(ctx context.Context, bedID, patientID uuid.UUID) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE bed SET is_occupied = true, patient_id = $2, updated_at = NOW()
		WHERE id = $1 AND is_occupied = false`,
		bedID, patientID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *repoPG) Release(ctx context.Context, patientID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE bed SET is_occupied = false, patient_id = NULL, updated_at = NOW()
		WHERE patient_id = $1`,
		patientID)
	return err
}

func (r *repoPG) OccupancyByWard(ctx context.Context) ([]*Occupancy, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT ward, COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_occupied) AS occupied,
			COUNT(*) FILTER (WHERE NOT is_occupied) AS free
		FROM bed GROUP BY ward ORDER BY ward`)
	if err != nil {
		return nil, fmt.Errorf("occupancy query: %w", err)
	}
	defer rows.Close()
	var out []*Occupancy
	for rows.Next() {
		var o Occupancy
		if err := rows.Scan(&o.Ward, &o.Total, &o.Occupied, &o.Free); err != nil {
			return nil, err
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}
