// Package hospital holds the shared clinical vocabulary used across the
// domain packages: departments, risk levels, blood groups and surgical
// priority classes. Keeping these as enumerated types makes an invalid
// lookup a compile-time error rather than a runtime miss.
package hospital

// Department is a ward-level grouping of beds and staff.
type Department string

const (
	Emergency       Department = "Emergency"
	Cardiology      Department = "Cardiology"
	Neurology       Department = "Neurology"
	GeneralMedicine Department = "General Medicine"
	Orthopedics     Department = "Orthopedics"
	Pediatrics      Department = "Pediatrics"
	Surgery         Department = "Surgery"
	ICU             Department = "ICU"
	BloodBank       Department = "Blood Bank"
	Pharmacy        Department = "Pharmacy"
	Logistics       Department = "Logistics"
)

var validDepartments = map[Department]bool{
	Emergency: true, Cardiology: true, Neurology: true, GeneralMedicine: true,
	Orthopedics: true, Pediatrics: true, Surgery: true, ICU: true,
	BloodBank: true, Pharmacy: true, Logistics: true,
}

// Valid reports whether d names a known department.
func (d Department) Valid() bool { return validDepartments[d] }

// RiskLevel is the externally-assessed clinical risk band.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// SurgicalPriority classifies how soon a surgical candidate must be operated on.
type SurgicalPriority string

const (
	Elective         SurgicalPriority = "Elective"
	Urgent           SurgicalPriority = "Urgent"
	EmergencySurgery SurgicalPriority = "Emergency"
)

// Valid reports whether p names a known priority class.
func (p SurgicalPriority) Valid() bool {
	switch p {
	case Elective, Urgent, EmergencySurgery:
		return true
	}
	return false
}

// Ordinal maps a surgical priority to its rank for scheduling.
// An unset priority defaults to Elective.
func (p SurgicalPriority) Ordinal() int {
	switch p {
	case EmergencySurgery:
		return 3
	case Urgent:
		return 2
	default:
		return 1
	}
}

// BloodGroup is one of the eight ABO/Rh blood groups.
type BloodGroup string

const (
	APos  BloodGroup = "A+"
	ANeg  BloodGroup = "A-"
	BPos  BloodGroup = "B+"
	BNeg  BloodGroup = "B-"
	ABPos BloodGroup = "AB+"
	ABNeg BloodGroup = "AB-"
	OPos  BloodGroup = "O+"
	ONeg  BloodGroup = "O-"
)

// BloodGroups lists all eight groups in display order.
var BloodGroups = []BloodGroup{APos, ANeg, BPos, BNeg, ABPos, ABNeg, OPos, ONeg}

func (g BloodGroup) Valid() bool {
	for _, b := range BloodGroups {
		if g == b {
			return true
		}
	}
	return false
}
