// Package analytics derives statistics from workout snapshots: one-rep-max
// estimation, per-exercise progress and personal records, exercise
// summaries, and volume distribution by muscle group. Everything here is
// pure computation over data already fetched — no I/O.
package analytics

import "math"

// Formula selects the 1RM estimation formula. The set is closed: adding a
// formula means extending the switch in estimate, which the compiler checks.
type Formula int

const (
	// Brzycki is the default formula: weight x 36 / (37 - reps).
	Brzycki Formula = iota
	// Epley: weight x (1 + 0.0333 x reps).
	Epley
	// Lombardi: weight x reps^0.1.
	Lombardi
	// OConner: weight x (1 + 0.025 x reps).
	OConner
)

func (f Formula) String() string {
	switch f {
	case Brzycki:
		return "brzycki"
	case Epley:
		return "epley"
	case Lombardi:
		return "lombardi"
	case OConner:
		return "oconner"
	}
	return "unknown"
}

// DefaultMaxReps is the highest rep count for which a 1RM extrapolation is
// considered meaningful.
const DefaultMaxReps = 15

// Estimate returns the estimated one-rep max for a lift of weightKg x reps
// using the given formula, with a DefaultMaxReps validity bound. The second
// return value is false when no estimate can be made.
func Estimate(weightKg, reps float64, f Formula) (float64, bool) {
	return EstimateMax(weightKg, reps, f, DefaultMaxReps)
}

// EstimateMax is Estimate with an explicit maximum valid rep count.
// Invalid inputs — weight <= 0, reps <= 0, fractional reps, or
// reps > maxReps — yield no estimate regardless of formula.
func EstimateMax(weightKg, reps float64, f Formula, maxReps int) (float64, bool) {
	if weightKg <= 0 || reps <= 0 || reps != math.Trunc(reps) || reps > float64(maxReps) {
		return 0, false
	}
	if reps == 1 {
		// A single is already a 1RM; no extrapolation.
		return weightKg, true
	}
	return estimate(weightKg, reps, f), true
}

func estimate(weightKg, reps float64, f Formula) float64 {
	switch f {
	case Epley:
		return weightKg * (1 + 0.0333*reps)
	case Lombardi:
		return weightKg * math.Pow(reps, 0.1)
	case OConner:
		return weightKg * (1 + 0.025*reps)
	default:
		// Brzycki divides by 37 - reps; clamp at 36 reps to keep the
		// denominator positive.
		if reps >= 37 {
			return weightKg * 36
		}
		return weightKg * 36 / (37 - reps)
	}
}
