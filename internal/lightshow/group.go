package lightshow

import "github.com/coreman2200/beatlights/internal/easing"

// EventData is one keyframe of an event group.
type EventData interface {
	// BeatOffset is the data's beat relative to its box.
	BeatOffset() float32
}

// EventGroup is the per-light view every event family exposes.
type EventGroup interface {
	Selected(lightID, groupSize int) (bool, error)
	BeatOffset(lightID, groupSize int) (float32, error)
	ValueOffset(lightID, groupSize int) (float32, error)
	Duration(groupSize int) float32
}

// Timed is anything placed on the beat timeline of one light group.
type Timed interface {
	StartBeat() float32
	EndBeat(groupSize int) float32
	LightGroup() int
}

var _ Timed = Box[ColorGroup]{}

// Distribution is one axis of an event group.
type Distribution struct {
	Type  DistributionType
	Value float32
}

// ValueDistribution is the value axis. EffectFirst is carried for the file
// format and does not change any offset.
type ValueDistribution struct {
	Distribution
	EffectFirst LooseBool
	Easing      easing.Easing
}

// Group holds the filter, both distribution axes and the data shared by
// every event family.
type Group[D EventData] struct {
	Filter    Filter
	BeatDist  Distribution
	ValueDist ValueDistribution
	Data      []D
}

func defaultGroup[D EventData](first D) Group[D] {
	return Group[D]{
		Filter:    DefaultFilter(),
		BeatDist:  Distribution{Type: Wave},
		ValueDist: ValueDistribution{Distribution: Distribution{Type: Wave}, Easing: easing.Linear},
		Data:      []D{first},
	}
}

// SetRevision re-stamps the filter's rule set.
func (g *Group[D]) SetRevision(r Revision) { g.Filter.Revision = r }

func (g Group[D]) lastBeat() (float32, bool) {
	if len(g.Data) == 0 {
		return 0, false
	}
	return g.Data[len(g.Data)-1].BeatOffset(), true
}

// Selected reports whether the group's filter selects the light.
func (g Group[D]) Selected(lightID, groupSize int) (bool, error) {
	return g.Filter.Contains(lightID, groupSize)
}

// BeatOffset returns how many beats the light's events are delayed.
// The last data entry's beat offset is carried out of a Wave.
func (g Group[D]) BeatOffset(lightID, groupSize int) (float32, error) {
	rank, err := g.Filter.Rank(lightID, groupSize)
	if err != nil {
		return 0, err
	}
	carry, _ := g.lastBeat()
	count := g.Filter.LimitedCount(groupSize, BeatAxis)
	return g.BeatDist.Type.Offset(rank, count, g.BeatDist.Value, carry, easing.Linear), nil
}

// ValueOffset returns how far the light's value (brightness, degrees,
// distance or fx value) is shifted.
func (g Group[D]) ValueOffset(lightID, groupSize int) (float32, error) {
	rank, err := g.Filter.Rank(lightID, groupSize)
	if err != nil {
		return 0, err
	}
	count := g.Filter.LimitedCount(groupSize, ValueAxis)
	return g.ValueDist.Type.Offset(rank, count, g.ValueDist.Value, 0, g.ValueDist.Easing), nil
}

// Duration returns the number of beats the group spans.
func (g Group[D]) Duration(groupSize int) float32 {
	count := g.Filter.Count(groupSize)
	last, ok := g.lastBeat()
	if count == 0 || !ok {
		return 0
	}

	w := g.BeatDist.Value
	switch g.BeatDist.Type {
	case Wave:
		if !g.Filter.LimitBehaviour.Duration() && g.Filter.LimitPercent != 0 {
			return max(w*g.Filter.LimitPercent, last)
		}
		return max(w, last)
	case Step:
		return last + w*float32(count)
	default:
		return 0
	}
}

// Box is a set of groups sharing a beat and a light group id.
type Box[G EventGroup] struct {
	Beat    float32 `json:"b"`
	GroupID int     `json:"g"`
	Groups  []G     `json:"e"`
}

func (b Box[G]) StartBeat() float32 { return b.Beat }

// LightGroup is the light group id the box drives.
func (b Box[G]) LightGroup() int { return b.GroupID }

// Duration is the longest group duration in the box.
func (b Box[G]) Duration(groupSize int) float32 {
	var d float32
	for _, g := range b.Groups {
		d = max(d, g.Duration(groupSize))
	}
	return d
}

// EndBeat is the absolute beat at which the box's last group finishes.
func (b Box[G]) EndBeat(groupSize int) float32 {
	return b.Beat + b.Duration(groupSize)
}
