package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orchestra-health/orchestra/internal/domain/hospital"
	"github.com/orchestra-health/orchestra/internal/platform/db"
)

// =========== Inventory Repository ===========

type inventoryRepoPG struct{ pool *pgxpool.Pool }

func NewInventoryRepoPG(pool *pgxpool.Pool) InventoryRepository { return &inventoryRepoPG{pool: pool} }

func (r *inventoryRepoPG) conn(ctx context.Context) db.Queryable {
	if q := db.ConnFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

func (r *inventoryRepoPG) Get(ctx context.Context) (*Inventory, error) {
	inv := &Inventory{Blood: make(map[hospital.BloodGroup]int, len(hospital.BloodGroups))}

	err := r.conn(ctx).QueryRow(ctx, `
		SELECT tank_percentage, cylinders_available, cylinders_in_use, usage_rate_per_min, refill_scheduled
		FROM oxygen_supply WHERE id = 1`).
		Scan(&inv.Oxygen.TankPercentage, &inv.Oxygen.CylindersAvailable, &inv.Oxygen.CylindersInUse,
			&inv.Oxygen.UsageRatePerMin, &inv.Oxygen.RefillScheduled)
	if err != nil {
		return nil, fmt.Errorf("load oxygen supply: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, `SELECT blood_group, units FROM blood_stock`)
	if err != nil {
		return nil, fmt.Errorf("load blood stock: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var group hospital.BloodGroup
		var units int
		if err := rows.Scan(&group, &units); err != nil {
			return nil, err
		}
		inv.Blood[group] = units
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	medRows, err := r.conn(ctx).Query(ctx, `SELECT name, stock, unit, min_threshold FROM medication ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("load medications: %w", err)
	}
	defer medRows.Close()
	for medRows.Next() {
		var m Medication
		if err := medRows.Scan(&m.Name, &m.Stock, &m.Unit, &m.MinThreshold); err != nil {
			return nil, err
		}
		inv.Medications = append(inv.Medications, m)
	}
	return inv, medRows.Err()
}

func (r *inventoryRepoPG) Save(ctx context.Context, inv *Inventory) error {
	c := r.conn(ctx)
	_, err := c.Exec(ctx, `
		UPDATE oxygen_supply SET tank_percentage=$1, cylinders_available=$2,
			cylinders_in_use=$3, usage_rate_per_min=$4, refill_scheduled=$5, updated_at=NOW()
		WHERE id = 1`,
		inv.Oxygen.TankPercentage, inv.Oxygen.CylindersAvailable, inv.Oxygen.CylindersInUse,
		inv.Oxygen.UsageRatePerMin, inv.Oxygen.RefillScheduled)
	if err != nil {
		return fmt.Errorf("save oxygen supply: %w", err)
	}
	for group, units := range inv.Blood {
		if _, err := c.Exec(ctx, `
			INSERT INTO blood_stock (blood_group, units) VALUES ($1, GREATEST(0, $2))
			ON CONFLICT (blood_group) DO UPDATE SET units = GREATEST(0, $2), updated_at = NOW()`,
			group, units); err != nil {
			return fmt.Errorf("save blood stock %s: %w", group, err)
		}
	}
	for _, m := range inv.Medications {
		if _, err := c.Exec(ctx, `
			INSERT INTO medication (name, stock, unit, min_threshold) VALUES ($1, GREATEST(0, $2), $3, $4)
			ON CONFLICT (name) DO UPDATE SET stock = GREATEST(0, $2), unit = $3, min_threshold = $4, updated_at = NOW()`,
			m.Name, m.Stock, m.Unit, m.MinThreshold); err != nil {
			return fmt.Errorf("save medication %s: %w", m.Name, err)
		}
	}
	return nil
}

// =========== Resource Request Repository ===========

type requestRepoPG struct{ pool *pgxpool.Pool }

func NewRequestRepoPG(pool *pgxpool.Pool) RequestRepository { return &requestRepoPG{pool: pool} }

func (r *requestRepoPG) conn(ctx context.Context) db.Queryable {
	if q := db.ConnFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const requestCols = `id, type, sub_type, quantity, from_dept, to_dept, urgency, status, requested_by, created_at, updated_at`

func scanRequest(row pgx.Row) (*ResourceRequest, error) {
	var req ResourceRequest
	err := row.Scan(&req.ID, &req.Type, &req.SubType, &req.Quantity, &req.FromDept, &req.ToDept,
		&req.Urgency, &req.Status, &req.RequestedBy, &req.CreatedAt, &req.UpdatedAt)
	return &req, err
}

func (r *requestRepoPG) Create(ctx context.Context, req *ResourceRequest) error {
	req.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO resource_request (id, type, sub_type, quantity, from_dept, to_dept, urgency, status, requested_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		req.ID, req.Type, req.SubType, req.Quantity, req.FromDept, req.ToDept, req.Urgency, req.Status, req.RequestedBy)
	return err
}

func (r *requestRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ResourceRequest, error) {
	return scanRequest(r.conn(ctx).QueryRow(ctx, `SELECT `+requestCols+` FROM resource_request WHERE id = $1`, id))
}

func (r *requestRepoPG) List(ctx context.Context, limit, offset int) ([]*ResourceRequest, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM resource_request`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+requestCols+` FROM resource_request ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ResourceRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, req)
	}
	return items, total, rows.Err()
}

func (r *requestRepoPG) SetStatus(ctx context.Context, id uuid.UUID, from, next RequestStatus) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE resource_request SET status=$3, updated_at=NOW() WHERE id = $1 AND status = $2`,
		id, from, next)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// =========== Refill Order Repository ===========

type refillRepoPG struct{ pool *pgxpool.Pool }

func NewRefillRepoPG(pool *pgxpool.Pool) RefillRepository { return &refillRepoPG{pool: pool} }

func (r *refillRepoPG) conn(ctx context.Context) db.Queryable {
	if q := db.ConnFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const refillCols = `id, type, sub_type, quantity, vendor, status, created_at, updated_at`

func scanRefill(row pgx.Row) (*RefillOrder, error) {
	var o RefillOrder
	err := row.Scan(&o.ID, &o.Type, &o.SubType, &o.Quantity, &o.Vendor, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

func (r *refillRepoPG) Create(ctx context.Context, order *RefillOrder) error {
	order.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO refill_order (id, type, sub_type, quantity, vendor, status)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		order.ID, order.Type, order.SubType, order.Quantity, order.Vendor, order.Status)
	return err
}

func (r *refillRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*RefillOrder, error) {
	return scanRefill(r.conn(ctx).QueryRow(ctx, `SELECT `+refillCols+` FROM refill_order WHERE id = $1`, id))
}

func (r *refillRepoPG) List(ctx context.Context, limit, offset int) ([]*RefillOrder, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM refill_order`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+refillCols+` FROM refill_order ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*RefillOrder
	for rows.Next() {
		o, err := scanRefill(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, o)
	}
	return items, total, rows.Err()
}

func (r *refillRepoPG) SetStatus(ctx context.Context, id uuid.UUID, from, next RefillStatus) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE refill_order SET status=$3, updated_at=NOW() WHERE id = $1 AND status = $2`,
		id, from, next)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
