package ward

import (
	"testing"

	"github.com/google/uuid"

	"github.com/orchestra-health/orchestra/internal/domain/hospital"
)

func bed(ward hospital.Department, bedType BedType, occupied bool) *Bed {
	return &Bed{ID: uuid.New(), Number: string(ward), Ward: ward, Type: bedType, IsOccupied: occupied}
}

func TestSelectBed_PrefersTargetWard(t *testing.T) {
	target := bed(hospital.Cardiology, BedStandard, false)
	beds := []*Bed{
		bed(hospital.GeneralMedicine, BedStandard, false),
		target,
	}
	got := SelectBed(beds, hospital.Cardiology)
	if got == nil || got.ID != target.ID {
		t.Errorf("expected target-ward bed, got %v", got)
	}
}

func TestSelectBed_FallsBackToGeneralMedicine(t *testing.T) {
	genMed := bed(hospital.GeneralMedicine, BedStandard, false)
	beds := []*Bed{
		bed(hospital.Cardiology, BedStandard, true),
		genMed,
	}
	got := SelectBed(beds, hospital.Cardiology)
	if got == nil || got.ID != genMed.ID {
		t.Errorf("expected General Medicine fallback, got %v", got)
	}
}

func TestSelectBed_ICUTargetFallsBackToStandard(t *testing.T) {
	// ICU full; the General Medicine bed is still reachable, but only
	// through the any-Standard rule, not the ward fallback.
	genMed := bed(hospital.GeneralMedicine, BedStandard, false)
	beds := []*Bed{
		bed(hospital.ICU, BedICU, true),
		genMed,
	}
	got := SelectBed(beds, hospital.ICU)
	if got == nil || got.ID != genMed.ID {
		t.Errorf("expected Standard bed for ICU overflow, got %v", got)
	}
}

func TestSelectBed_AnyStandardLastResort(t *testing.T) {
	ortho := bed(hospital.Orthopedics, BedStandard, false)
	beds := []*Bed{
		bed(hospital.Cardiology, BedStandard, true),
		bed(hospital.GeneralMedicine, BedStandard, true),
		ortho,
	}
	got := SelectBed(beds, hospital.Cardiology)
	if got == nil || got.ID != ortho.ID {
		t.Errorf("expected any free Standard bed, got %v", got)
	}
}

func TestSelectBed_NoFreeBeds(t *testing.T) {
	beds := []*Bed{
		bed(hospital.Cardiology, BedStandard, true),
		bed(hospital.GeneralMedicine, BedStandard, true),
	}
	if got := SelectBed(beds, hospital.Cardiology); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestSelectBed_IsolationNotUsedAsLastResort(t *testing.T) {
	// Isolation beds are only reachable through their own ward.
	beds := []*Bed{
		bed(hospital.Emergency, BedIsolation, false),
	}
	if got := SelectBed(beds, hospital.Cardiology); got != nil {
		t.Errorf("expected nil, Isolation bed should not satisfy the Standard fallback, got %v", got)
	}
}
