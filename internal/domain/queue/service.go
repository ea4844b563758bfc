package queue

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/orchestra-health/orchestra/internal/domain/hospital"
	"github.com/orchestra-health/orchestra/internal/domain/patient"
)

// RankedPatient is one row of the priority queue.
type RankedPatient struct {
	Patient     *patient.Patient `json:"patient"`
	OPI         float64          `json:"opi"`
	WaitMinutes int              `json:"wait_minutes"`
	Tier        Tier             `json:"tier"`
}

// Stats are the queue-level metrics shown on the dashboard header.
type Stats struct {
	Total             int `json:"total"`
	Critical          int `json:"critical"`
	AvgWaitMinutes    int `json:"avg_wait_minutes"`
	HighDeterioration int `json:"high_deterioration"`
}

type Service struct {
	patients patient.Repository
	now      func() time.Time
}

// NewService builds the queue service. The clock is injected so that a
// ranking recomputed for the same instant is bit-identical.
func NewService(patients patient.Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{patients: patients, now: now}
}

var queueStatuses = []patient.Status{
	patient.StatusQueued, patient.StatusDiagnosis, patient.StatusTriage,
}

// Rank returns the waiting room ordered by OPI descending. Only patients in
// a queue-eligible status participate; everyone else is excluded entirely.
// Ties break deterministically: earlier queue start first, then patient id.
func (s *Service) Rank(ctx context.Context) ([]*RankedPatient, error) {
	pats, err := s.patients.ListByStatus(ctx, queueStatuses)
	if err != nil {
		return nil, fmt.Errorf("list queued patients: %w", err)
	}

	now := s.now()
	ranked := make([]*RankedPatient, 0, len(pats))
	for _, p := range pats {
		waitMins := 0
		if p.QueueStartTime != nil {
			waitMins = int(now.Sub(*p.QueueStartTime).Minutes())
		}
		risk, deterioration := 0, 0
		if p.RiskScore != nil {
			risk = *p.RiskScore
		}
		if p.DeteriorationProb != nil {
			deterioration = *p.DeteriorationProb
		}
		opi := Score(float64(risk), float64(waitMins), float64(deterioration))
		ranked = append(ranked, &RankedPatient{
			Patient:     p,
			OPI:         opi,
			WaitMinutes: waitMins,
			Tier:        TierFor(opi, p.RiskLevel),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.OPI != b.OPI {
			return a.OPI > b.OPI
		}
		at, bt := a.Patient.QueueStartTime, b.Patient.QueueStartTime
		switch {
		case at != nil && bt != nil && !at.Equal(*bt):
			return at.Before(*bt)
		case at != nil && bt == nil:
			return true
		case at == nil && bt != nil:
			return false
		}
		return a.Patient.ID.String() < b.Patient.ID.String()
	})
	return ranked, nil
}

// RankStats computes queue metrics from a ranking.
func RankStats(ranked []*RankedPatient) *Stats {
	st := &Stats{Total: len(ranked)}
	totalWait := 0
	for _, r := range ranked {
		totalWait += r.WaitMinutes
		if r.Patient.RiskLevel != nil && *r.Patient.RiskLevel == hospital.RiskCritical {
			st.Critical++
		}
		if r.Patient.DeteriorationProb != nil && *r.Patient.DeteriorationProb > 50 {
			st.HighDeterioration++
		}
	}
	if len(ranked) > 0 {
		st.AvgWaitMinutes = totalWait / len(ranked)
	}
	return st
}

// Stats ranks the queue and summarizes it.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	ranked, err := s.Rank(ctx)
	if err != nil {
		return nil, err
	}
	return RankStats(ranked), nil
}
