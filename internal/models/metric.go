package models

import "time"

// Tracked monthly metric kinds. The store may carry more; these are the
// ones the dashboards reference by name.
const (
	MetricHealthScore        = "health_score"
	MetricNPS                = "nps"
	MetricDropoutRate        = "dropout_rate"
	MetricSecretariatSLA     = "sla_secretariat"
	MetricTeacherAbsenteeism = "teacher_absenteeism"
	MetricITUptime           = "it_uptime"
	MetricCafeteriaWaste     = "cafeteria_waste"
)

// MonthlyMetric is one (kind, reference month) scalar observation.
type MonthlyMetric struct {
	Kind           string    `db:"metric_kind"`
	ReferenceMonth time.Time `db:"reference_month"`
	Value          float64   `db:"value"`
	Unit           string    `db:"unit"`
}
