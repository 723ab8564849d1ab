package lightshow

import (
	"encoding/json"

	"github.com/coreman2200/beatlights/internal/easing"
)

// ColorData sets a light's color and brightness.
type ColorData struct {
	Beat       float32             `json:"b"`
	Transition ColorTransitionType `json:"i"`
	Color      LightColor          `json:"c"`
	Brightness float32             `json:"s"`
	// StrobeFrequency is strobes per beat; 0 disables strobing.
	StrobeFrequency int `json:"f"`
	// V3.3+: brightness of the strobe "off" state and whether strobes fade.
	StrobeBrightness float32   `json:"sb"`
	StrobeFade       LooseBool `json:"sf"`
}

func (d ColorData) BeatOffset() float32 { return d.Beat }

// DefaultColorData is full-brightness primary color with no strobe.
func DefaultColorData() ColorData {
	return ColorData{Brightness: 1}
}

// ColorGroup distributes brightness.
type ColorGroup struct {
	Group[ColorData]
}

func DefaultColorGroup() ColorGroup {
	return ColorGroup{Group: defaultGroup(DefaultColorData())}
}

// ColorBox is a lightColorEventBoxGroups entry.
type ColorBox = Box[ColorGroup]

type colorGroupWire struct {
	Filter      Filter           `json:"f"`
	BeatType    DistributionType `json:"d"`
	BeatValue   float32          `json:"w"`
	ValueType   DistributionType `json:"t"`
	Value       float32          `json:"r"`
	EffectFirst LooseBool        `json:"b"`
	Easing      *easing.Easing   `json:"i,omitempty"`
	Data        []ColorData      `json:"e"`
}

func (g ColorGroup) MarshalJSON() ([]byte, error) {
	e := g.ValueDist.Easing
	return json.Marshal(colorGroupWire{
		Filter:      g.Filter,
		BeatType:    g.BeatDist.Type,
		BeatValue:   g.BeatDist.Value,
		ValueType:   g.ValueDist.Type,
		Value:       g.ValueDist.Value,
		EffectFirst: g.ValueDist.EffectFirst,
		Easing:      &e,
		Data:        nonNil(g.Data),
	})
}

func (g *ColorGroup) UnmarshalJSON(b []byte) error {
	w := colorGroupWire{Filter: DefaultFilter(), BeatType: Wave, ValueType: Wave}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	g.Group = Group[ColorData]{
		Filter:   w.Filter,
		BeatDist: Distribution{Type: w.BeatType, Value: w.BeatValue},
		ValueDist: ValueDistribution{
			Distribution: Distribution{Type: w.ValueType, Value: w.Value},
			EffectFirst:  w.EffectFirst,
			Easing:       easingOrLinear(w.Easing),
		},
		Data: w.Data,
	}
	return nil
}

// easingOrLinear treats a missing value-axis easing (pre-V3.2 files) as linear.
func easingOrLinear(e *easing.Easing) easing.Easing {
	if e == nil {
		return easing.Linear
	}
	return *e
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
