package formula

import "strconv"

// Severity is the closed set of severity tiers, highest first.
type Severity int

const (
	SeverityBlocker Severity = iota
	SeverityMajor
	SeverityMinor
	SeverityTrivial
)

// Severities lists every tier from highest to lowest. The last entry is the
// fallback for unrecognized values.
func Severities() []Severity {
	return []Severity{SeverityBlocker, SeverityMajor, SeverityMinor, SeverityTrivial}
}

func (s Severity) String() string {
	switch s {
	case SeverityBlocker:
		return "Blocker"
	case SeverityMajor:
		return "Major"
	case SeverityMinor:
		return "Minor"
	case SeverityTrivial:
		return "Trivial"
	}
	return "Severity(" + strconv.Itoa(int(s)) + ")"
}

// Weight is the base weight a tier contributes before scaling.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityBlocker:
		return 4
	case SeverityMajor:
		return 3
	case SeverityMinor:
		return 2
	case SeverityTrivial:
		return 1
	}
	panic("formula: unknown severity " + s.String())
}

// UserTier is the closed set of reporter tiers, highest first.
type UserTier int

const (
	TierVIP UserTier = iota
	TierBetaTester
	TierEarlyAdopter
	TierStandard
)

// UserTiers lists every tier from highest to lowest. The last entry is the
// fallback for unrecognized values.
func UserTiers() []UserTier {
	return []UserTier{TierVIP, TierBetaTester, TierEarlyAdopter, TierStandard}
}

func (u UserTier) String() string {
	switch u {
	case TierVIP:
		return "VIP"
	case TierBetaTester:
		return "Beta Tester"
	case TierEarlyAdopter:
		return "Early Adopter"
	case TierStandard:
		return "Standard"
	}
	return "UserTier(" + strconv.Itoa(int(u)) + ")"
}

// Bonus is the additive score bonus for a tier.
func (u UserTier) Bonus() float64 {
	switch u {
	case TierVIP:
		return 2
	case TierBetaTester:
		return 1.5
	case TierEarlyAdopter:
		return 1
	case TierStandard:
		return 0.5
	}
	panic("formula: unknown user tier " + u.String())
}
