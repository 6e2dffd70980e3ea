package models

import "time"

// PlanCategory classifies a service plan by its duration unit.
type PlanCategory string

const (
	PlanSingleSession PlanCategory = "single_session"
	PlanWeekly        PlanCategory = "weekly"
	PlanMonthly       PlanCategory = "monthly"
)

// ServicePlan is a provider's priced offering. Only active plans are
// selectable when a booking request is created.
type ServicePlan struct {
	ID                 string       `bson:"id" json:"id"`
	ProviderID         string       `bson:"provider_id" json:"providerId"`
	Category           PlanCategory `bson:"category" json:"category"`
	HourlyRate         float64      `bson:"hourly_rate" json:"hourlyRate"`
	ExtraDependentRate float64      `bson:"extra_dependent_rate" json:"extraDependentRate"` // per-hour surcharge for each dependent beyond the first
	MinHours           int          `bson:"min_hours" json:"minHours"`
	Active             bool         `bson:"active" json:"active"`
	CreatedAt          time.Time    `bson:"created_at" json:"createdAt"`
}

// ValidCategory reports whether c is one of the known plan categories.
func ValidCategory(c PlanCategory) bool {
	switch c {
	case PlanSingleSession, PlanWeekly, PlanMonthly:
		return true
	}
	return false
}
