package lightshow

import (
	"encoding/json"

	"github.com/coreman2200/beatlights/internal/easing"
)

// RotationData rotates lights to an angle.
type RotationData struct {
	Beat       float32           `json:"b"`
	Transition TransitionType    `json:"p"`
	Easing     easing.Easing     `json:"e"`
	Degrees    float32           `json:"r"`
	Direction  RotationDirection `json:"o"`
	// Loops adds full turns in Direction.
	Loops int `json:"l"`
}

func (d RotationData) BeatOffset() float32 { return d.Beat }

// RotationGroup distributes degrees along one axis.
type RotationGroup struct {
	Group[RotationData]
	Axis       EventAxis
	InvertAxis LooseBool
}

func DefaultRotationGroup() RotationGroup {
	g := RotationGroup{Group: defaultGroup(RotationData{Easing: easing.None})}
	g.ValueDist.EffectFirst = LooseTrue
	return g
}

// RotationBox is a lightRotationEventBoxGroups entry.
type RotationBox = Box[RotationGroup]

// axisGroupWire is shared by the rotation and translation families.
type axisGroupWire[D any] struct {
	Filter      Filter           `json:"f"`
	BeatType    DistributionType `json:"d"`
	BeatValue   float32          `json:"w"`
	ValueType   DistributionType `json:"t"`
	Value       float32          `json:"s"`
	EffectFirst LooseBool        `json:"b"`
	Easing      *easing.Easing   `json:"i,omitempty"`
	Axis        EventAxis        `json:"a"`
	InvertAxis  LooseBool        `json:"r"`
	Data        []D              `json:"l"`
}

func newAxisGroupWire[D EventData](g Group[D], axis EventAxis, invert LooseBool) axisGroupWire[D] {
	e := g.ValueDist.Easing
	return axisGroupWire[D]{
		Filter:      g.Filter,
		BeatType:    g.BeatDist.Type,
		BeatValue:   g.BeatDist.Value,
		ValueType:   g.ValueDist.Type,
		Value:       g.ValueDist.Value,
		EffectFirst: g.ValueDist.EffectFirst,
		Easing:      &e,
		Axis:        axis,
		InvertAxis:  invert,
		Data:        nonNil(g.Data),
	}
}

func decodeAxisGroup[D EventData](b []byte) (axisGroupWire[D], Group[D], error) {
	w := axisGroupWire[D]{Filter: DefaultFilter(), BeatType: Wave, ValueType: Wave}
	if err := json.Unmarshal(b, &w); err != nil {
		return w, Group[D]{}, err
	}
	return w, Group[D]{
		Filter:   w.Filter,
		BeatDist: Distribution{Type: w.BeatType, Value: w.BeatValue},
		ValueDist: ValueDistribution{
			Distribution: Distribution{Type: w.ValueType, Value: w.Value},
			EffectFirst:  w.EffectFirst,
			Easing:       easingOrLinear(w.Easing),
		},
		Data: w.Data,
	}, nil
}

func (g RotationGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(newAxisGroupWire(g.Group, g.Axis, g.InvertAxis))
}

func (g *RotationGroup) UnmarshalJSON(b []byte) error {
	w, grp, err := decodeAxisGroup[RotationData](b)
	if err != nil {
		return err
	}
	*g = RotationGroup{Group: grp, Axis: w.Axis, InvertAxis: w.InvertAxis}
	return nil
}
