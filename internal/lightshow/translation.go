package lightshow

import (
	"encoding/json"

	"github.com/coreman2200/beatlights/internal/easing"
)

// TranslationData moves lights along the group's axis.
type TranslationData struct {
	Beat       float32        `json:"b"`
	Transition TransitionType `json:"p"`
	Easing     easing.Easing  `json:"e"`
	Distance   float32        `json:"t"`
}

func (d TranslationData) BeatOffset() float32 { return d.Beat }

type TranslationGroup struct {
	Group[TranslationData]
	Axis       EventAxis
	InvertAxis LooseBool
}

func DefaultTranslationGroup() TranslationGroup {
	return TranslationGroup{Group: defaultGroup(TranslationData{Easing: easing.None})}
}

// TranslationBox is a lightTranslationEventBoxGroups entry (V3.2+).
type TranslationBox = Box[TranslationGroup]

func (g TranslationGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(newAxisGroupWire(g.Group, g.Axis, g.InvertAxis))
}

func (g *TranslationGroup) UnmarshalJSON(b []byte) error {
	w, grp, err := decodeAxisGroup[TranslationData](b)
	if err != nil {
		return err
	}
	*g = TranslationGroup{Group: grp, Axis: w.Axis, InvertAxis: w.InvertAxis}
	return nil
}
