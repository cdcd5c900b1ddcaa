package triage

import (
	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// Vital sign names reported in a VitalsAssessment.
const (
	VitalHeartRate       = "heart_rate"
	VitalSystolicBP      = "systolic_bp"
	VitalRespiratoryRate = "respiratory_rate"
)

// Readings below criticalLow*min or above criticalHigh*max are critical.
const (
	criticalLow  = 0.6
	criticalHigh = 1.5
)

type vitalRange struct {
	min, max int
}

type vitalRanges struct {
	heartRate       vitalRange
	systolicBP      vitalRange
	respiratoryRate vitalRange
}

var normalRanges = map[domain.AgeGroup]vitalRanges{
	domain.AgeInfant:    {vitalRange{100, 160}, vitalRange{70, 100}, vitalRange{30, 60}},
	domain.AgeToddler:   {vitalRange{90, 150}, vitalRange{80, 110}, vitalRange{24, 40}},
	domain.AgePreschool: {vitalRange{80, 140}, vitalRange{90, 110}, vitalRange{22, 34}},
	domain.AgeSchoolAge: {vitalRange{70, 120}, vitalRange{90, 120}, vitalRange{18, 30}},
	domain.AgeAdult:     {vitalRange{60, 100}, vitalRange{90, 140}, vitalRange{12, 20}},
	domain.AgeElderly:   {vitalRange{60, 100}, vitalRange{90, 150}, vitalRange{12, 20}},
}

// AssessVitals classifies each measured vital sign against the normal
// range for group. Unknown groups use adult ranges. Nil readings are not
// measured; zero and negative readings fall below the critical floor. The
// overall status is the worst reading, or unknown when nothing was measured.
func AssessVitals(v domain.VitalSigns, group domain.AgeGroup) domain.VitalsAssessment {
	if !group.IsValid() {
		group = domain.AgeAdult
	}
	ranges := normalRanges[group]
	out := domain.VitalsAssessment{
		AgeGroup:   group,
		Normal:     []string{},
		Concerning: []string{},
		Critical:   []string{},
	}

	readings := []struct {
		name  string
		value *int
		rng   vitalRange
	}{
		{VitalHeartRate, v.HeartRate, ranges.heartRate},
		{VitalSystolicBP, v.SystolicBP, ranges.systolicBP},
		{VitalRespiratoryRate, v.RespiratoryRate, ranges.respiratoryRate},
	}
	for _, r := range readings {
		if r.value == nil {
			continue
		}
		switch classify(*r.value, r.rng) {
		case domain.VitalCritical:
			out.Critical = append(out.Critical, r.name)
		case domain.VitalConcerning:
			out.Concerning = append(out.Concerning, r.name)
		default:
			out.Normal = append(out.Normal, r.name)
		}
	}

	switch {
	case len(out.Critical) > 0:
		out.Status = domain.VitalCritical
	case len(out.Concerning) > 0:
		out.Status = domain.VitalConcerning
	case len(out.Normal) > 0:
		out.Status = domain.VitalNormal
	default:
		out.Status = domain.VitalUnknown
	}
	return out
}

func classify(value int, r vitalRange) domain.VitalStatus {
	v := float64(value)
	switch {
	case v < criticalLow*float64(r.min) || v > criticalHigh*float64(r.max):
		return domain.VitalCritical
	case value < r.min || value > r.max:
		return domain.VitalConcerning
	default:
		return domain.VitalNormal
	}
}
