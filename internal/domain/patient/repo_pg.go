package patient

import (
	"context"
	"encoding/json"
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

const patientCols = `id, name, age, gender, contact, symptoms, severity, duration, history,
	temperature, blood_pressure_sys, blood_pressure_dia, pulse, spo2, respiratory_rate,
	status, queue_start_time, admitted_at,
	risk_score, risk_level, department, deterioration_prob, icu_likelihood,
	surgery_likelihood, surgical_priority, est_length_of_stay, est_treatment_cost,
	financial_risk_score, suggested_diagnoses, red_flags, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	var diagnoses []byte
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Contact, &p.Symptoms, &p.Severity,
		&p.Duration, &p.History,
		&p.Vitals.Temperature, &p.Vitals.BloodPressureSys, &p.Vitals.BloodPressureDia,
		&p.Vitals.Pulse, &p.Vitals.SpO2, &p.Vitals.RespiratoryRate,
		&p.Status, &p.QueueStartTime, &p.AdmittedAt,
		&p.RiskScore, &p.RiskLevel, &p.Department, &p.DeteriorationProb, &p.ICULikelihood,
		&p.SurgeryLikelihood, &p.SurgicalPriority, &p.EstLengthOfStay, &p.EstTreatmentCost,
		&p.FinancialRiskScore, &diagnoses, &p.RedFlags, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(diagnoses) > 0 {
		if err := json.Unmarshal(diagnoses, &p.SuggestedDiagnoses); err != nil {
			return nil, fmt.Errorf("decode suggested diagnoses: %w", err)
		}
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, name, age, gender, contact, symptoms, severity, duration, history,
			temperature, blood_pressure_sys, blood_pressure_dia, pulse, spo2, respiratory_rate, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		p.ID, p.Name, p.Age, p.Gender, p.Contact, p.Symptoms, p.Severity, p.Duration, p.History,
		p.Vitals.Temperature, p.Vitals.BloodPressureSys, p.Vitals.BloodPressureDia,
		p.Vitals.Pulse, p.Vitals.SpO2, p.Vitals.RespiratoryRate, p.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	diagnoses, err := json.Marshal(p.SuggestedDiagnoses)
	if err != nil {
		return fmt.Errorf("encode suggested diagnoses: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET name=$2, age=$3, gender=$4, contact=$5, symptoms=$6, severity=$7,
			duration=$8, history=$9,
			temperature=$10, blood_pressure_sys=$11, blood_pressure_dia=$12, pulse=$13,
			spo2=$14, respiratory_rate=$15,
			status=$16, queue_start_time=$17, admitted_at=$18,
			risk_score=$19, risk_level=$20, department=$21, deterioration_prob=$22,
			icu_likelihood=$23, surgery_likelihood=$24, surgical_priority=$25,
			est_length_of_stay=$26, est_treatment_cost=$27, financial_risk_score=$28,
			suggested_diagnoses=$29, red_flags=$30, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Age, p.Gender, p.Contact, p.Symptoms, p.Severity,
		p.Duration, p.History,
		p.Vitals.Temperature, p.Vitals.BloodPressureSys, p.Vitals.BloodPressureDia,
		p.Vitals.Pulse, p.Vitals.SpO2, p.Vitals.RespiratoryRate,
		p.Status, p.QueueStartTime, p.AdmittedAt,
		p.RiskScore, p.RiskLevel, p.Department, p.DeteriorationProb,
		p.ICULikelihood, p.SurgeryLikelihood, p.SurgicalPriority,
		p.EstLengthOfStay, p.EstTreatmentCost, p.FinancialRiskScore,
		diagnoses, p.RedFlags)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+patientCols+` FROM patient ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListByStatus(ctx context.Context, statuses []Status) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+patientCols+` FROM patient WHERE status = ANY($1) ORDER BY created_at`, statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *repoPG) AddCareEvent(ctx context.Context, e *CareEvent) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO care_event (id, patient_id, type, title, description, risk_score_snapshot, performed_by, timestamp)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		e.ID, e.PatientID, e.Type, e.Title, e.Description, e.RiskScoreSnapshot, e.PerformedBy, e.Timestamp)
	return err
}

func (r *repoPG) GetCareHistory(ctx context.Context, patientID uuid.UUID) ([]*CareEvent, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, type, title, description, risk_score_snapshot, performed_by, timestamp
		FROM care_event WHERE patient_id = $1 ORDER BY timestamp DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []*CareEvent
	for rows.Next() {
		var e CareEvent
		if err := rows.Scan(&e.ID, &e.PatientID, &e.Type, &e.Title, &e.Description,
			&e.RiskScoreSnapshot, &e.PerformedBy, &e.Timestamp); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
