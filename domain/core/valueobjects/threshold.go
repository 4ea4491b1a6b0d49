package valueobjects

const (
	// MinThreshold is the lowest selectable connectivity threshold.
	MinThreshold = 0.0

	// MaxThreshold is the highest selectable connectivity threshold.
	// The slider never reaches 1.0 so that a maximal setting still keeps
	// edges of weight >= 0.96 connected.
	MaxThreshold = 0.96
)

// Threshold is the minimum edge weight required for two nodes to be
// considered directly connected when forming clusters. Values outside
// [MinThreshold, MaxThreshold] are clamped, never rejected.
type Threshold struct {
	value float64
}

// ClampThreshold builds a Threshold, clamping the input into range.
func ClampThreshold(v float64) Threshold {
	if v < MinThreshold {
		v = MinThreshold
	}
	if v > MaxThreshold {
		v = MaxThreshold
	}
	return Threshold{value: v}
}

// Float returns the threshold as a plain float64.
func (t Threshold) Float() float64 {
	return t.value
}

// Equals checks equality with another threshold.
func (t Threshold) Equals(other Threshold) bool {
	return t.value == other.value
}
