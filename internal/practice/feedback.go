package practice

// Target compression rate band, in compressions per minute.
const (
	MinTargetRate = 100
	MaxTargetRate = 120

	// Outside the target band but within this wider band the rate is shown
	// as a warning rather than an error.
	MinWarnRate = 80
	MaxWarnRate = 140
)

// Tier classifies a compression rate against the target band.
type Tier string

const (
	TierNone     Tier = ""
	TierTooSlow  Tier = "too-slow"
	TierOnTarget Tier = "on-target"
	TierTooFast  Tier = "too-fast"
)

// Classify maps a rate to its feedback tier. Both band edges are on target.
func Classify(rate int) Tier {
	switch {
	case rate < MinTargetRate:
		return TierTooSlow
	case rate > MaxTargetRate:
		return TierTooFast
	default:
		return TierOnTarget
	}
}

// Advice returns the coaching line for a tier.
func (t Tier) Advice() string {
	switch t {
	case TierTooSlow:
		return "Push faster! Aim for 100-120 per minute"
	case TierTooFast:
		return "Slow down a bit. Keep it steady"
	case TierOnTarget:
		return "Perfect rate! Keep going"
	}
	return ""
}

const (
	startedFeedback = "Start compressions! Push hard and fast"
	pausedFeedback  = "Practice paused"
)

// Band is the display severity of a rate.
type Band int

const (
	BandGood Band = iota
	BandWarn
	BandBad
)

// RateBand grades a rate for coloring: on target is good, within the wider
// band is a warning, anything else is bad.
func RateBand(rate int) Band {
	switch {
	case rate >= MinTargetRate && rate <= MaxTargetRate:
		return BandGood
	case rate >= MinWarnRate && rate <= MaxWarnRate:
		return BandWarn
	default:
		return BandBad
	}
}

// DepthBand grades a depth score for coloring.
func DepthBand(depth int) Band {
	switch {
	case depth >= 80:
		return BandGood
	case depth >= 60:
		return BandWarn
	default:
		return BandBad
	}
}

// Tips are shown next to the practice pad.
var Tips = []string{
	"Push hard and fast - at least 2 inches deep",
	"Keep your arms straight and shoulders over hands",
	"Allow complete chest recoil between compressions",
	"Aim for 100-120 compressions per minute",
	"Switch with another person every 2 minutes to avoid fatigue",
}
