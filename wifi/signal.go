package wifi

// SignalComparator compares two signal values. It returns a positive number
// when a is stronger than b, a negative number when it is weaker and zero when
// they rank the same.
type SignalComparator func(a, b int) int

// CompareSignal ranks signals by their raw value, so -40 dBm beats -70 dBm and
// 80% beats 50%.
func CompareSignal(a, b int) int {
	return a - b
}

// SignalRange is the span of values a backend reports signal in.
type SignalRange struct {
	Min int // At or below is no signal
	Max int // At or above is full signal
}

var (
	// RangeDBm covers RSSI readings in dBm.
	RangeDBm = SignalRange{Min: -100, Max: -55}
	// RangePercent covers backends that report 0-100 quality.
	RangePercent = SignalRange{Min: 0, Max: 100}
)

// SignalUnits is implemented by providers that know the range they report
// signal in.
type SignalUnits interface {
	SignalRange() SignalRange
}

// RangeOf returns the signal range of p, defaulting to RangeDBm.
func RangeOf(p any) SignalRange {
	if u, ok := p.(SignalUnits); ok {
		return u.SignalRange()
	}
	return RangeDBm
}

// Level buckets signal into one of levels bars, from 0 to levels-1.
func (r SignalRange) Level(signal int, levels int) int {
	if levels < 2 {
		return 0
	}
	if signal <= r.Min {
		return 0
	}
	if signal >= r.Max {
		return levels - 1
	}
	return (signal - r.Min) * (levels - 1) / (r.Max - r.Min)
}

// Strength maps signal onto 0-100.
func (r SignalRange) Strength(signal int) uint8 {
	if signal <= r.Min {
		return 0
	}
	if signal >= r.Max {
		return 100
	}
	return uint8((signal - r.Min) * 100 / (r.Max - r.Min))
}

// CompareSignalLevels ranks signals by the bar they fall into, so two access
// points a few units apart compare equal. A levels value below 2 falls back to
// CompareSignal.
func CompareSignalLevels(r SignalRange, levels int) SignalComparator {
	if levels < 2 {
		return CompareSignal
	}
	return func(a, b int) int {
		return r.Level(a, levels) - r.Level(b, levels)
	}
}
