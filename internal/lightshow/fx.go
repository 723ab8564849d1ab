package lightshow

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coreman2200/beatlights/internal/easing"
)

// ErrMissingFxData is returned when a group references an fx data index the
// collection does not hold.
var ErrMissingFxData = errors.New("missing fx event data")

// FxData drives an environment specific effect value.
type FxData struct {
	Beat       float32        `json:"b"`
	Transition TransitionType `json:"p"`
	Easing     easing.Easing  `json:"i"`
	Value      float32        `json:"v"`
}

func (d FxData) BeatOffset() float32 { return d.Beat }

// FxGroup distributes an fx value. On disk its data lives in a shared
// collection and the group keeps indices; see FxContainer.
type FxGroup struct {
	Group[FxData]
}

func DefaultFxGroup() FxGroup {
	return FxGroup{Group: defaultGroup(FxData{Easing: easing.None, Value: 1})}
}

// FxBox is a vfxEventBoxGroups entry.
type FxBox = Box[FxGroup]

// FxContainer resolves the indexed fx layout into boxes holding their data.
type FxContainer struct {
	Boxes []FxBox
}

type fxGroupWire struct {
	Filter      Filter           `json:"f"`
	BeatType    DistributionType `json:"d"`
	BeatValue   float32          `json:"w"`
	ValueType   DistributionType `json:"t"`
	Value       float32          `json:"s"`
	EffectFirst LooseBool        `json:"b"`
	Easing      *easing.Easing   `json:"i,omitempty"`
	DataIDs     []int            `json:"l"`
}

type fxBoxWire struct {
	Beat    float32       `json:"b"`
	GroupID int           `json:"g"`
	Groups  []fxGroupWire `json:"e"`
}

type fxCollection struct {
	Float []FxData        `json:"_fl"`
	Int   json.RawMessage `json:"_il,omitempty"`
}

// fxLayout is the on-disk pair of fx keys.
type fxLayout struct {
	Boxes      []fxBoxWire  `json:"vfxEventBoxGroups"`
	Collection fxCollection `json:"_fxEventsCollection"`
}

// layout flattens the container's data into one collection. Every data
// entry gets its own index; nothing is deduplicated.
func (c FxContainer) layout() fxLayout {
	out := fxLayout{
		Boxes:      make([]fxBoxWire, 0, len(c.Boxes)),
		Collection: fxCollection{Float: []FxData{}, Int: json.RawMessage("[]")},
	}
	for _, b := range c.Boxes {
		bw := fxBoxWire{Beat: b.Beat, GroupID: b.GroupID, Groups: make([]fxGroupWire, 0, len(b.Groups))}
		for _, g := range b.Groups {
			ids := make([]int, 0, len(g.Data))
			for _, d := range g.Data {
				ids = append(ids, len(out.Collection.Float))
				out.Collection.Float = append(out.Collection.Float, d)
			}
			e := g.ValueDist.Easing
			bw.Groups = append(bw.Groups, fxGroupWire{
				Filter:      g.Filter,
				BeatType:    g.BeatDist.Type,
				BeatValue:   g.BeatDist.Value,
				ValueType:   g.ValueDist.Type,
				Value:       g.ValueDist.Value,
				EffectFirst: g.ValueDist.EffectFirst,
				Easing:      &e,
				DataIDs:     ids,
			})
		}
		out.Boxes = append(out.Boxes, bw)
	}
	return out
}

// resolve turns an on-disk layout back into a container.
func (l fxLayout) resolve() (FxContainer, error) {
	c := FxContainer{Boxes: make([]FxBox, 0, len(l.Boxes))}
	for bi, bw := range l.Boxes {
		box := FxBox{Beat: bw.Beat, GroupID: bw.GroupID, Groups: make([]FxGroup, 0, len(bw.Groups))}
		for gi, gw := range bw.Groups {
			data := make([]FxData, 0, len(gw.DataIDs))
			for _, id := range gw.DataIDs {
				if id < 0 || id >= len(l.Collection.Float) {
					return FxContainer{}, fmt.Errorf("box %d group %d: %w: index %d", bi, gi, ErrMissingFxData, id)
				}
				data = append(data, l.Collection.Float[id])
			}
			box.Groups = append(box.Groups, FxGroup{Group: Group[FxData]{
				Filter:   gw.Filter,
				BeatDist: Distribution{Type: gw.BeatType, Value: gw.BeatValue},
				ValueDist: ValueDistribution{
					Distribution: Distribution{Type: gw.ValueType, Value: gw.Value},
					EffectFirst:  gw.EffectFirst,
					Easing:       easingOrLinear(gw.Easing),
				},
				Data: data,
			}})
		}
		c.Boxes = append(c.Boxes, box)
	}
	return c, nil
}

func (c FxContainer) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.layout())
}

func (c *FxContainer) UnmarshalJSON(b []byte) error {
	var l fxLayout
	if err := json.Unmarshal(b, &l); err != nil {
		return err
	}
	resolved, err := l.resolve()
	if err != nil {
		return err
	}
	*c = resolved
	return nil
}

func (w *fxGroupWire) UnmarshalJSON(b []byte) error {
	type plain fxGroupWire
	p := plain{Filter: DefaultFilter(), BeatType: Wave, ValueType: Wave}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*w = fxGroupWire(p)
	return nil
}
