package lightshow

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrLightOutOfRange is returned when a light id falls outside [0, groupSize).
var ErrLightOutOfRange = errors.New("light id out of range")

// Revision selects between the two historical filter rule sets.
type Revision int

const (
	// RevisionCurrent collapses chunks and reverses with size-id-1 everywhere.
	RevisionCurrent Revision = iota
	// RevisionLegacy ignores chunks and reverses ranks with size-id.
	RevisionLegacy
)

func (r Revision) String() string {
	if r == RevisionLegacy {
		return "legacy"
	}
	return "current"
}

// ParseRevision accepts "legacy" or "current".
func ParseRevision(s string) (Revision, error) {
	switch s {
	case "legacy":
		return RevisionLegacy, nil
	case "current":
		return RevisionCurrent, nil
	}
	return RevisionCurrent, fmt.Errorf("unknown filter revision %q", s)
}

// LimitAxis names the distribution axis a limit is evaluated for.
type LimitAxis int

const (
	BeatAxis LimitAxis = iota
	ValueAxis
)

// Filter decides which lights of a group an event group touches, how many
// there are and where each one ranks.
type Filter struct {
	Type       FilterType `json:"f"`
	Parameter1 int        `json:"p"`
	Parameter2 int        `json:"t"`
	Reverse    LooseBool  `json:"r"`

	Chunks          int             `json:"c"`
	RandomBehaviour RandomBehaviour `json:"n"`
	RandomSeed      int             `json:"s"`
	LimitBehaviour  LimitBehaviour  `json:"d"`
	LimitPercent    float32         `json:"l"`

	Revision Revision `json:"-"`
}

// DefaultFilter selects every light with chunking and limiting disabled.
func DefaultFilter() Filter {
	return Filter{
		Type:         FilterDivision,
		Parameter1:   1,
		LimitPercent: 1,
	}
}

// UnmarshalJSON fills fields missing from older files with DefaultFilter values.
func (f *Filter) UnmarshalJSON(b []byte) error {
	type plain Filter
	p := plain(DefaultFilter())
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	p.Revision = f.Revision
	*f = Filter(p)
	return nil
}

func checkLight(lightID, groupSize int) error {
	if lightID < 0 || lightID >= groupSize {
		return fmt.Errorf("%w: light %d, group size %d", ErrLightOutOfRange, lightID, groupSize)
	}
	return nil
}

// collapse maps a light id and group size onto chunk space.
func (f Filter) collapse(lightID, groupSize int) (int, int) {
	if f.Revision == RevisionLegacy || f.Chunks <= 0 {
		return lightID, groupSize
	}
	size := max(groupSize/f.Chunks, 1)
	return lightID / size, groupSize / size
}

// division returns the [start, end) window of a Division filter.
func (f Filter) division(groupSize int) (int, int) {
	p1 := max(f.Parameter1, 1)
	start := f.Parameter2 * groupSize / p1
	end := max((f.Parameter2+1)*groupSize/p1, start+1)
	return start, end
}

// Contains reports whether the light is selected by the filter.
// Unknown filter types select every light.
func (f Filter) Contains(lightID, groupSize int) (bool, error) {
	if err := checkLight(lightID, groupSize); err != nil {
		return false, err
	}
	if f.Reverse.IsTrue() {
		lightID = groupSize - lightID - 1
	}
	lightID, groupSize = f.collapse(lightID, groupSize)

	switch f.Type {
	case FilterDivision:
		start, end := f.division(groupSize)
		return lightID >= start && lightID < end, nil
	case FilterStepAndOffset:
		off := lightID - f.Parameter1
		return off >= 0 && off%max(f.Parameter2, 1) == 0, nil
	default:
		return true, nil
	}
}

// Count returns how many lights (or chunks) the filter selects, ignoring
// the limit.
func (f Filter) Count(groupSize int) int {
	_, groupSize = f.collapse(0, groupSize)

	switch f.Type {
	case FilterDivision:
		start, end := f.division(groupSize)
		return end - start
	case FilterStepAndOffset:
		step := max(f.Parameter2, 1)
		return groupSize/step - f.Parameter1/step
	default:
		return groupSize
	}
}

// Rank returns the light's 0-based position among the selected lights.
// The result is only meaningful for selected lights. Unknown filter types
// report the (chunked) group size.
func (f Filter) Rank(lightID, groupSize int) (int, error) {
	if err := checkLight(lightID, groupSize); err != nil {
		return 0, err
	}
	if f.Reverse.IsTrue() {
		if f.Revision == RevisionLegacy {
			lightID = groupSize - lightID
		} else {
			lightID = groupSize - lightID - 1
		}
	}
	lightID, groupSize = f.collapse(lightID, groupSize)

	switch f.Type {
	case FilterDivision:
		start, _ := f.division(groupSize)
		return lightID - start, nil
	case FilterStepAndOffset:
		return (lightID - f.Parameter1) / max(f.Parameter2, 1), nil
	default:
		return groupSize, nil
	}
}

// LimitedCount is Count shrunk by LimitPercent when the limit behaviour
// covers the axis. A non-empty selection never limits below one.
func (f Filter) LimitedCount(groupSize int, axis LimitAxis) int {
	n := f.Count(groupSize)
	if n <= 0 || f.LimitPercent == 0 || !f.limits(axis) {
		return n
	}
	limited := int(math.Round(float64(float32(n) * f.LimitPercent)))
	return max(limited, 1)
}

func (f Filter) limits(axis LimitAxis) bool {
	if axis == BeatAxis {
		return f.LimitBehaviour.Duration()
	}
	return f.LimitBehaviour.Distribution()
}
