package theatre

import (
	"errors"
	"sort"

	"github.com/orchestra-health/orchestra/internal/domain/hospital"
	"github.com/orchestra-health/orchestra/internal/domain/patient"
)

// Distinct no-op reasons for an empty batch. Callers surface these to the
// operator; neither leaves partial state behind.
var (
	ErrNoReadyTheatres    = errors.New("no ready theatres")
	ErrEmptySurgicalQueue = errors.New("surgical queue is empty")
)

// surgicalCandidateThreshold is the minimum surgery likelihood for a
// patient to enter the surgical queue.
const surgicalCandidateThreshold = 40

// RankCandidates filters patients to surgical candidates and orders them by
// tiered priority: surgical priority class first (Emergency > Urgent >
// Elective, unset counts as Elective), then surgery likelihood, then
// deterioration probability, all descending. Discharged patients and
// patients already in surgery never qualify. The input slice is not
// modified.
func RankCandidates(patients []*patient.Patient) []*patient.Patient {
	var out []*patient.Patient
	for _, p := range patients {
		if p.Status == patient.StatusDischarged || p.Status == patient.StatusSurgery {
			continue
		}
		if likelihood(p) <= surgicalCandidateThreshold {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if pa, pb := priorityOrdinal(a), priorityOrdinal(b); pa != pb {
			return pa > pb
		}
		if la, lb := likelihood(a), likelihood(b); la != lb {
			return la > lb
		}
		return deterioration(a) > deterioration(b)
	})
	return out
}

// PlanBatch pairs the i-th ranked candidate with the i-th ready theatre.
// All ready theatres are treated as fungible, so the greedy 1:1 pairing is
// sufficient. The plan is empty and an error is returned when either side
// is empty; no partial plan is ever produced.
func PlanBatch(candidates []*patient.Patient, ready []*Theatre) ([]Assignment, error) {
	if len(ready) == 0 {
		return nil, ErrNoReadyTheatres
	}
	if len(candidates) == 0 {
		return nil, ErrEmptySurgicalQueue
	}
	n := len(ready)
	if len(candidates) < n {
		n = len(candidates)
	}
	plan := make([]Assignment, 0, n)
	for i := 0; i < n; i++ {
		p, t := candidates[i], ready[i]
		plan = append(plan, Assignment{
			PatientID:   p.ID,
			PatientName: p.Name,
			TheatreID:   t.ID,
			TheatreName: t.Name,
			Procedure:   procedureLabel(p),
		})
	}
	return plan, nil
}

func priorityOrdinal(p *patient.Patient) int {
	if p.SurgicalPriority == nil {
		return hospital.Elective.Ordinal()
	}
	return p.SurgicalPriority.Ordinal()
}

func likelihood(p *patient.Patient) int {
	if p.SurgeryLikelihood == nil {
		return 0
	}
	return *p.SurgeryLikelihood
}

func deterioration(p *patient.Patient) int {
	if p.DeteriorationProb == nil {
		return 0
	}
	return *p.DeteriorationProb
}

func procedureLabel(p *patient.Patient) string {
	if len(p.Symptoms) > 0 {
		return p.Symptoms[0]
	}
	return "Unspecified procedure"
}
