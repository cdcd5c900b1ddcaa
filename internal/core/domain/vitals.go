package domain

// AgeGroup selects the normal ranges used for vital signs.
type AgeGroup string

// Age groups.
const (
	AgeInfant    AgeGroup = "infant"
	AgeToddler   AgeGroup = "toddler"
	AgePreschool AgeGroup = "preschool"
	AgeSchoolAge AgeGroup = "school_age"
	AgeAdult     AgeGroup = "adult"
	AgeElderly   AgeGroup = "elderly"
)

// IsValid returns true if the age group is recognised.
func (g AgeGroup) IsValid() bool {
	switch g {
	case AgeInfant, AgeToddler, AgePreschool, AgeSchoolAge, AgeAdult, AgeElderly:
		return true
	default:
		return false
	}
}

// VitalSigns holds optional measurements. Nil means not measured; zero is a
// real reading (no pulse, no breathing).
type VitalSigns struct {
	HeartRate       *int `json:"heart_rate,omitempty"`
	SystolicBP      *int `json:"systolic_bp,omitempty"`
	RespiratoryRate *int `json:"respiratory_rate,omitempty"`
}

// Reading returns a measured value for VitalSigns.
func Reading(v int) *int {
	return &v
}

// VitalStatus is the overall reading of a vital-signs assessment.
type VitalStatus string

// Vital statuses, most severe first.
const (
	VitalCritical   VitalStatus = "critical"
	VitalConcerning VitalStatus = "concerning"
	VitalNormal     VitalStatus = "normal"
	VitalUnknown    VitalStatus = "unknown"
)

// VitalsAssessment classifies each measured sign.
type VitalsAssessment struct {
	AgeGroup   AgeGroup    `json:"age_group"`
	Normal     []string    `json:"normal"`
	Concerning []string    `json:"concerning"`
	Critical   []string    `json:"critical"`
	Status     VitalStatus `json:"status"`
}
