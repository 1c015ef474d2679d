// Package player holds the per-call athlete record consumed by the valuation
// engine, along with validation and age helpers shared by factors and
// modifiers.
package player

import (
	"strings"
	"time"
)

// Rating bounds for OverallRating and attribute grades.
const (
	MinRating = 0
	MaxRating = 99
)

// Age category thresholds. Players younger than YoungAgeThreshold are young;
// players at or above VeteranAgeThreshold are veterans.
const (
	DefaultYoungAgeThreshold   = 26
	DefaultVeteranAgeThreshold = 31
)

// seasonAnchorMonth is the month ages are measured at for a season.
const seasonAnchorMonth = time.September

// Development curve tags.
const (
	CurveEarly = "early"
	CurveLate  = "late"
)

// Data is the athlete record supplied per valuation call. The engine never
// retains it.
type Data struct {
	PlayerID         string             `json:"player_id,omitempty" yaml:"player_id,omitempty"`
	Name             string             `json:"name,omitempty" yaml:"name,omitempty"`
	Position         string             `json:"position" yaml:"position"`
	Age              *int               `json:"age,omitempty" yaml:"age,omitempty"`
	BirthDate        string             `json:"birthdate,omitempty" yaml:"birthdate,omitempty"`
	OverallRating    *int               `json:"overall_rating" yaml:"overall_rating"`
	Attributes       map[string]int     `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Stats            map[string]float64 `json:"stats,omitempty" yaml:"stats,omitempty"`
	GamesPlayed      int                `json:"games_played,omitempty" yaml:"games_played,omitempty"`
	ContractYear     bool               `json:"contract_year,omitempty" yaml:"contract_year,omitempty"`
	Archetype        string             `json:"archetype,omitempty" yaml:"archetype,omitempty"`
	DevelopmentCurve string             `json:"development_curve,omitempty" yaml:"development_curve,omitempty"`
}

// Int returns a pointer to v. Handy for optional fields.
func Int(v int) *int { return &v }

// Validate checks the fields every valuation requires.
func (d *Data) Validate() error {
	if strings.TrimSpace(d.Position) == "" {
		return &ValidationError{Field: "position", Reason: "is required"}
	}
	if d.OverallRating == nil {
		return &ValidationError{Field: "overall_rating", Reason: "is required"}
	}
	if r := *d.OverallRating; r < MinRating || r > MaxRating {
		return &ValidationError{Field: "overall_rating", Reason: "must be within [0,99]", Value: r}
	}
	if d.GamesPlayed < 0 {
		return &ValidationError{Field: "games_played", Reason: "must not be negative", Value: d.GamesPlayed}
	}
	return nil
}

// NormalizedPosition returns the upper-cased, trimmed position code.
func (d *Data) NormalizedPosition() string {
	return strings.ToUpper(strings.TrimSpace(d.Position))
}

// Rating returns the overall rating, or zero when absent.
func (d *Data) Rating() int {
	if d.OverallRating == nil {
		return 0
	}
	return *d.OverallRating
}

// ResolveAge returns the explicit age, else the age derived from BirthDate as
// of September 1st of season. ok is false when neither is usable.
func (d *Data) ResolveAge(season int) (age int, ok bool) {
	if d.Age != nil {
		return *d.Age, true
	}
	return AgeAt(d.BirthDate, season)
}

// AgeAt derives an age from an ISO-8601 date (YYYY-MM-DD or RFC3339) as of
// September 1st of season.
func AgeAt(birthDate string, season int) (int, bool) {
	birthDate = strings.TrimSpace(birthDate)
	if birthDate == "" || season <= 0 {
		return 0, false
	}
	born, err := time.Parse(time.DateOnly, birthDate)
	if err != nil {
		if born, err = time.Parse(time.RFC3339, birthDate); err != nil {
			return 0, false
		}
	}
	anchor := time.Date(season, seasonAnchorMonth, 1, 0, 0, 0, 0, time.UTC)
	if born.After(anchor) {
		return 0, false
	}
	age := anchor.Year() - born.Year()
	if !sameOrLaterMonthDay(anchor, born) {
		age--
	}
	return age, true
}

// sameOrLaterMonthDay reports whether a falls on or after b's month/day.
func sameOrLaterMonthDay(a, b time.Time) bool {
	if a.Month() != b.Month() {
		return a.Month() > b.Month()
	}
	return a.Day() >= b.Day()
}

// AgeCategory buckets an age for pressure and scouting decisions.
type AgeCategory string

// Age categories.
const (
	AgeYoung   AgeCategory = "young"
	AgePrime   AgeCategory = "prime"
	AgeVeteran AgeCategory = "veteran"
)

// Thresholds carries the young/veteran cut-offs.
type Thresholds struct {
	Young   int `json:"young" koanf:"young"`
	Veteran int `json:"veteran" koanf:"veteran"`
}

// DefaultThresholds returns the documented 26/31 cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{Young: DefaultYoungAgeThreshold, Veteran: DefaultVeteranAgeThreshold}
}

// Category classifies age against t.
func (t Thresholds) Category(age int) AgeCategory {
	switch {
	case age < t.Young:
		return AgeYoung
	case age >= t.Veteran:
		return AgeVeteran
	default:
		return AgePrime
	}
}
