package ward

import "github.com/orchestra-health/orchestra/internal/domain/hospital"

// SelectBed picks the bed to claim for a patient bound for targetWard.
// The fallback order is fixed:
//
//  1. any free bed in the target ward
//  2. if the target ward is not ICU, any free bed in General Medicine
//  3. any free Standard bed anywhere
//
// ICU-bound patients never overflow into General Medicine by rule 2; they can
// still land on a Standard bed via rule 3. Returns nil when nothing is free.
// Selection is pure; claiming the returned bed is the caller's job.
func SelectBed(beds []*Bed, targetWard hospital.Department) *Bed {
	for _, b := range beds {
		if !b.IsOccupied && b.Ward == targetWard {
			return b
		}
	}
	if targetWard != hospital.ICU {
		for _, b := range beds {
			if !b.IsOccupied && b.Ward == hospital.GeneralMedicine {
				return b
			}
		}
	}
	for _, b := range beds {
		if !b.IsOccupied && b.Type == BedStandard {
			return b
		}
	}
	return nil
}
