package patient

import "testing"

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPreHospital, StatusAmbulance, true},
		{StatusPreHospital, StatusTriage, true},
		{StatusPreHospital, StatusAdmitted, false},
		{StatusAmbulance, StatusTriage, true},
		{StatusAmbulance, StatusPreHospital, false},
		{StatusTriage, StatusQueued, true},
		{StatusTriage, StatusAdmitted, true},
		{StatusTriage, StatusDischarged, true},
		{StatusTriage, StatusSurgery, false},
		{StatusQueued, StatusDiagnosis, true},
		{StatusQueued, StatusSurgery, true},
		{StatusQueued, StatusTriage, false},
		{StatusDiagnosis, StatusQueued, true},
		{StatusDiagnosis, StatusAdmitted, true},
		{StatusAdmitted, StatusSurgery, true},
		{StatusAdmitted, StatusQueued, false},
		{StatusSurgery, StatusAdmitted, true},
		{StatusSurgery, StatusDischarged, true},
		{StatusSurgery, StatusQueued, false},
		{StatusDischarged, StatusTriage, true},
		{StatusDischarged, StatusAdmitted, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{
		StatusPreHospital, StatusAmbulance, StatusTriage, StatusQueued,
		StatusDiagnosis, StatusAdmitted, StatusSurgery, StatusDischarged,
	} {
		if !s.Valid() {
			t.Errorf("%s reported invalid", s)
		}
	}
	if Status("Teleported").Valid() {
		t.Error("unknown status reported valid")
	}
}

func TestInQueue(t *testing.T) {
	inQueue := map[Status]bool{
		StatusTriage:      true,
		StatusQueued:      true,
		StatusDiagnosis:   true,
		StatusPreHospital: false,
		StatusAmbulance:   false,
		StatusAdmitted:    false,
		StatusSurgery:     false,
		StatusDischarged:  false,
	}
	for s, want := range inQueue {
		if got := s.InQueue(); got != want {
			t.Errorf("%s.InQueue() = %v, want %v", s, got, want)
		}
	}
}
