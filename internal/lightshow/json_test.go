package lightshow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/beatlights/internal/easing"
)

func TestFilterDefaultsForOlderFiles(t *testing.T) {
	var f Filter
	require.NoError(t, json.Unmarshal([]byte(`{"f":2,"p":1,"t":3,"r":1}`), &f))

	assert.Equal(t, FilterStepAndOffset, f.Type)
	assert.Equal(t, 1, f.Parameter1)
	assert.Equal(t, 3, f.Parameter2)
	assert.True(t, f.Reverse.IsTrue())
	assert.Equal(t, 0, f.Chunks)
	assert.Equal(t, RandomNone, f.RandomBehaviour)
	assert.Equal(t, LimitNone, f.LimitBehaviour)
	assert.Equal(t, float32(1), f.LimitPercent)
}

func TestFilterKeepsUnknownValues(t *testing.T) {
	in := `{"f":7,"p":1,"t":0,"r":4,"c":0,"n":9,"s":1087373312,"d":11,"l":0.5}`
	var f Filter
	require.NoError(t, json.Unmarshal([]byte(in), &f))
	assert.False(t, f.Type.IsKnown())
	assert.False(t, f.Reverse.IsKnown())
	assert.False(t, f.RandomBehaviour.IsKnown())
	assert.False(t, f.LimitBehaviour.IsKnown())
	assert.Equal(t, 1087373312, f.RandomSeed)

	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestFilterKeepsStampedRevision(t *testing.T) {
	f := Filter{Revision: RevisionLegacy}
	require.NoError(t, json.Unmarshal([]byte(`{"f":1}`), &f))
	assert.Equal(t, RevisionLegacy, f.Revision)
}

// Translation box taken from a published map.
const translationBox = `{
	"b": 6.5, "g": 9,
	"e": [{
		"f": {"f": 1, "p": 1, "t": 0, "r": 0, "c": 0, "n": 2, "s": 1087373312, "l": 0, "d": 0},
		"w": 0, "d": 1, "s": 1, "t": 1, "b": 1, "a": 2, "r": 0, "i": 0,
		"l": [
			{"b": 0, "p": 0, "e": -1, "t": 5.45},
			{"b": 2, "p": 0, "e": 3, "t": 0},
			{"b": 30.5, "p": 0, "e": 3, "t": 0}
		]
	}]
}`

func TestTranslationBoxFromMap(t *testing.T) {
	var box TranslationBox
	require.NoError(t, json.Unmarshal([]byte(translationBox), &box))

	assert.Equal(t, float32(6.5), box.Beat)
	assert.Equal(t, 9, box.GroupID)
	require.Len(t, box.Groups, 1)
	g := box.Groups[0]
	assert.Equal(t, AxisZ, g.Axis)
	assert.Equal(t, RandomElements, g.Filter.RandomBehaviour)
	assert.Equal(t, easing.Linear, g.ValueDist.Easing)
	require.Len(t, g.Data, 3)
	assert.Equal(t, float32(5.45), g.Data[0].Distance)
	assert.Equal(t, easing.InOutQuad, g.Data[1].Easing)

	for i := 0; i < 5; i++ {
		v, err := g.ValueOffset(i, 5)
		require.NoError(t, err)
		assert.Equal(t, float32(i)/5, v)
	}
}

func TestColorGroupMissingEasingIsLinear(t *testing.T) {
	var g ColorGroup
	require.NoError(t, json.Unmarshal([]byte(`{"f":{"f":1,"p":1,"t":0,"r":0},"d":1,"w":1,"t":1,"r":1,"b":0,"e":[{"b":0,"i":0,"c":1,"s":1,"f":0}]}`), &g))
	assert.Equal(t, easing.Linear, g.ValueDist.Easing)
	assert.Equal(t, float32(1), g.Filter.LimitPercent)
	assert.Equal(t, Secondary, g.Data[0].Color)
}

func TestRoundTrip(t *testing.T) {
	color := DefaultColorGroup()
	color.Filter = division(3, 2)
	color.Filter.Chunks = 4
	color.Filter.LimitBehaviour = LimitBoth
	color.Filter.LimitPercent = 0.25
	color.BeatDist = Distribution{Step, 0.5}
	color.ValueDist.Easing = easing.OutBounce
	color.Data = []ColorData{{Beat: 1, Transition: ColorTransitionType(9), Color: White, Brightness: 0.5, StrobeFrequency: 4, StrobeBrightness: 0.2, StrobeFade: LooseTrue}}

	rotation := DefaultRotationGroup()
	rotation.Axis = AxisY
	rotation.InvertAxis = LooseTrue
	rotation.ValueDist.Distribution = Distribution{DistributionType(3), 45}
	rotation.Data = []RotationData{{Beat: 2, Transition: Extend, Easing: easing.BeatSaberInOutBack, Degrees: 90, Direction: CounterClockwise, Loops: 2}}

	translation := DefaultTranslationGroup()
	translation.Axis = EventAxis(5)
	translation.Data = []TranslationData{{Beat: 3, Easing: easing.Easing(250), Distance: -1.5}}

	t.Run("color", func(t *testing.T) {
		box := ColorBox{Beat: 4, GroupID: 1, Groups: []ColorGroup{color}}
		var got ColorBox
		roundTrip(t, box, &got)
		assert.Equal(t, box, got)
	})
	t.Run("rotation", func(t *testing.T) {
		box := RotationBox{Beat: 4, GroupID: 1, Groups: []RotationGroup{rotation}}
		var got RotationBox
		roundTrip(t, box, &got)
		assert.Equal(t, box, got)
	})
	t.Run("translation", func(t *testing.T) {
		box := TranslationBox{Beat: 4, GroupID: 1, Groups: []TranslationGroup{translation}}
		var got TranslationBox
		roundTrip(t, box, &got)
		assert.Equal(t, box, got)
	})
}

func roundTrip(t *testing.T, in any, out any) {
	t.Helper()
	b, err := json.Marshal(in)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, out))
}

const fxContainer = `{
	"vfxEventBoxGroups": [{
		"b": 2.0, "g": 0,
		"e": [{
			"f": {"c": 0, "f": 1, "p": 1, "t": 0, "r": 0, "n": 0, "s": 0, "l": 1.0, "d": 0},
			"w": 1.0, "d": 1, "s": 1.0, "t": 1, "b": 1, "i": -1,
			"l": [0]
		}]
	}],
	"_fxEventsCollection": {
		"_fl": [{"b": 0.0, "p": 0, "i": 0, "v": 100.0}],
		"_il": []
	}
}`

func TestFxContainer(t *testing.T) {
	var c FxContainer
	require.NoError(t, json.Unmarshal([]byte(fxContainer), &c))

	want := DefaultFxGroup()
	want.BeatDist = Distribution{Wave, 1}
	want.ValueDist = ValueDistribution{Distribution: Distribution{Wave, 1}, EffectFirst: LooseTrue, Easing: easing.None}
	want.Data = []FxData{{Beat: 0, Transition: Transition, Easing: easing.Linear, Value: 100}}
	assert.Equal(t, FxContainer{Boxes: []FxBox{{Beat: 2, GroupID: 0, Groups: []FxGroup{want}}}}, c)

	var again FxContainer
	roundTrip(t, c, &again)
	assert.Equal(t, c, again)
}

func TestFxContainerFlattensData(t *testing.T) {
	g := DefaultFxGroup()
	g.Data = []FxData{{Beat: 0, Value: 1}, {Beat: 1, Value: 2}}
	c := FxContainer{Boxes: []FxBox{{Groups: []FxGroup{g, g}}}}

	b, err := json.Marshal(c)
	require.NoError(t, err)

	var raw struct {
		Boxes []struct {
			Groups []struct {
				IDs []int `json:"l"`
			} `json:"e"`
		} `json:"vfxEventBoxGroups"`
		Collection struct {
			Float []FxData `json:"_fl"`
		} `json:"_fxEventsCollection"`
	}
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Len(t, raw.Collection.Float, 4)
	assert.Equal(t, []int{0, 1}, raw.Boxes[0].Groups[0].IDs)
	assert.Equal(t, []int{2, 3}, raw.Boxes[0].Groups[1].IDs)
}

func TestFxContainerMissingData(t *testing.T) {
	in := `{"vfxEventBoxGroups":[{"b":0,"g":0,"e":[{"l":[3]}]}],"_fxEventsCollection":{"_fl":[],"_il":[]}}`
	var c FxContainer
	err := json.Unmarshal([]byte(in), &c)
	assert.ErrorIs(t, err, ErrMissingFxData)
}
