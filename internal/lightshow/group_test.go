package lightshow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/beatlights/internal/easing"
)

func colorGroup(f Filter, beat, value Distribution) ColorGroup {
	g := DefaultColorGroup()
	g.Filter = f
	g.BeatDist = beat
	g.ValueDist.Distribution = value
	return g
}

func beatOffsets(t *testing.T, g EventGroup, ids []int, size int) []float32 {
	t.Helper()
	out := make([]float32, 0, len(ids))
	for _, id := range ids {
		v, err := g.BeatOffset(id, size)
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func valueOffsets(t *testing.T, g EventGroup, ids []int, size int) []float32 {
	t.Helper()
	out := make([]float32, 0, len(ids))
	for _, id := range ids {
		v, err := g.ValueOffset(id, size)
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func seq(from, n, step int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = from + i*step
	}
	return out
}

func floats(from, n int, scale float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(from+i) * scale
	}
	return out
}

func TestGroupOffsets(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		dist   Distribution
		ids    []int
		want   []float32
	}{
		{"wave", DefaultFilter(), Distribution{Wave, 12}, seq(0, 12, 1), floats(0, 12, 1)},
		{"step", DefaultFilter(), Distribution{Step, 1}, seq(0, 12, 1), floats(0, 12, 1)},
		{"wave second half", division(2, 1), Distribution{Wave, 6}, seq(6, 6, 1), floats(0, 6, 1)},
		{"step second half", division(2, 1), Distribution{Step, 1}, seq(6, 6, 1), floats(0, 6, 1)},
		{"wave every other", stepAndOffset(0, 2), Distribution{Wave, 6}, seq(0, 6, 2), floats(0, 6, 1)},
		{"step every other", stepAndOffset(0, 2), Distribution{Step, 1}, seq(0, 6, 2), floats(0, 6, 1)},
		{"wave zero", DefaultFilter(), Distribution{Wave, 0}, seq(0, 12, 1), make([]float32, 12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			beat := colorGroup(tt.filter, tt.dist, Distribution{Type: Wave})
			assert.Equal(t, tt.want, beatOffsets(t, beat, tt.ids, 12))

			value := colorGroup(tt.filter, Distribution{Type: Wave}, tt.dist)
			assert.Equal(t, tt.want, valueOffsets(t, value, tt.ids, 12))
		})
	}
}

func TestGroupReverse(t *testing.T) {
	f := DefaultFilter()
	f.Reverse = LooseTrue

	legacy := f
	legacy.Revision = RevisionLegacy
	for _, d := range []Distribution{{Wave, 12}, {Step, 1}} {
		g := colorGroup(legacy, d, d)
		for i := 0; i < 12; i++ {
			b, err := g.BeatOffset(i, 12)
			require.NoError(t, err)
			v, err := g.ValueOffset(i, 12)
			require.NoError(t, err)
			assert.Equal(t, float32(12-i), b)
			assert.Equal(t, float32(12-i), v)
		}
	}

	g := colorGroup(f, Distribution{Step, 1}, Distribution{Step, 1})
	for i := 0; i < 12; i++ {
		b, err := g.BeatOffset(i, 12)
		require.NoError(t, err)
		assert.Equal(t, float32(11-i), b)
	}
}

func TestGroupChunksShareOffsets(t *testing.T) {
	f := DefaultFilter()
	f.Chunks = 6
	g := colorGroup(f, Distribution{Wave, 6}, Distribution{Wave, 6})
	for i := 0; i < 6; i++ {
		a := beatOffsets(t, g, []int{2 * i, 2*i + 1}, 12)
		assert.Equal(t, a[0], a[1])
		assert.Equal(t, float32(i), a[0])
	}
}

func TestGroupLimit(t *testing.T) {
	f := DefaultFilter()
	f.LimitBehaviour = LimitDuration
	f.LimitPercent = 0.5
	g := colorGroup(f, Distribution{Wave, 12}, Distribution{Wave, 12})
	assert.Equal(t, floats(0, 6, 2), beatOffsets(t, g, seq(0, 6, 1), 12))
	assert.Equal(t, floats(0, 6, 1), valueOffsets(t, g, seq(0, 6, 1), 12))

	g.Filter.LimitBehaviour = LimitDistribution
	assert.Equal(t, floats(0, 6, 1), beatOffsets(t, g, seq(0, 6, 1), 12))
	assert.Equal(t, floats(0, 6, 2), valueOffsets(t, g, seq(0, 6, 1), 12))

	g.Filter.LimitBehaviour = LimitBoth
	assert.Equal(t, floats(0, 6, 2), beatOffsets(t, g, seq(0, 6, 1), 12))
	assert.Equal(t, floats(0, 6, 2), valueOffsets(t, g, seq(0, 6, 1), 12))
}

func TestBeatCarryOverFromLastData(t *testing.T) {
	g := colorGroup(DefaultFilter(), Distribution{Wave, 12}, Distribution{Wave, 12})
	g.Data = []ColorData{{Beat: 0}, {Beat: 6}}
	b, err := g.BeatOffset(6, 12)
	require.NoError(t, err)
	assert.Equal(t, float32(3), b)

	v, err := g.ValueOffset(6, 12)
	require.NoError(t, err)
	assert.Equal(t, float32(6), v)
}

func TestValueEasing(t *testing.T) {
	g := colorGroup(DefaultFilter(), Distribution{Wave, 0}, Distribution{Wave, 12})
	g.ValueDist.Easing = easing.InQuad
	v, err := g.ValueOffset(6, 12)
	require.NoError(t, err)
	assert.Equal(t, float32(3), v)

	g.ValueDist.Easing = easing.None
	v, err = g.ValueOffset(6, 12)
	require.NoError(t, err)
	assert.Equal(t, float32(0), v)
}

func TestEffectFirstDoesNotChangeOffsets(t *testing.T) {
	g := colorGroup(DefaultFilter(), Distribution{Wave, 12}, Distribution{Wave, 12})
	before := valueOffsets(t, g, seq(0, 12, 1), 12)
	g.ValueDist.EffectFirst = LooseTrue
	assert.Equal(t, before, valueOffsets(t, g, seq(0, 12, 1), 12))
}

func TestGroupOutOfRange(t *testing.T) {
	g := DefaultColorGroup()
	_, err := g.BeatOffset(12, 12)
	assert.ErrorIs(t, err, ErrLightOutOfRange)
	_, err = g.ValueOffset(-1, 12)
	assert.ErrorIs(t, err, ErrLightOutOfRange)
	_, err = g.Selected(3, 2)
	assert.ErrorIs(t, err, ErrLightOutOfRange)
}

func TestDuration(t *testing.T) {
	limited := func(b LimitBehaviour, p float32) Filter {
		f := DefaultFilter()
		f.LimitBehaviour = b
		f.LimitPercent = p
		return f
	}
	tests := []struct {
		name   string
		filter Filter
		dist   Distribution
		data   []ColorData
		want   float32
	}{
		{"no distribution", DefaultFilter(), Distribution{Wave, 0}, []ColorData{{}}, 0},
		{"wave", DefaultFilter(), Distribution{Wave, 12}, []ColorData{{}}, 12},
		{"step", DefaultFilter(), Distribution{Step, 1}, []ColorData{{}}, 12},
		{"wave limit without duration", limited(LimitNone, 0.5), Distribution{Wave, 12}, []ColorData{{}}, 6},
		{"step limit without duration", limited(LimitNone, 0.5), Distribution{Step, 1}, []ColorData{{}}, 12},
		{"wave limit with duration", limited(LimitDuration, 0.5), Distribution{Wave, 12}, []ColorData{{}}, 12},
		{"step limit with duration", limited(LimitDuration, 0.5), Distribution{Step, 1}, []ColorData{{}}, 12},
		{"step zero percent", limited(LimitNone, 0), Distribution{Step, 1}, []ColorData{{}}, 12},
		{"wave shorter than last data", DefaultFilter(), Distribution{Wave, 2}, []ColorData{{Beat: 0}, {Beat: 5}}, 5},
		{"step adds last data", DefaultFilter(), Distribution{Step, 0.5}, []ColorData{{Beat: 0}, {Beat: 2}}, 8},
		{"empty data", DefaultFilter(), Distribution{Wave, 12}, nil, 0},
		{"unknown distribution", DefaultFilter(), Distribution{DistributionType(4), 12}, []ColorData{{}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := colorGroup(tt.filter, tt.dist, Distribution{Type: Wave})
			g.Data = tt.data
			assert.Equal(t, tt.want, g.Duration(12))
		})
	}
}

func TestBoxTiming(t *testing.T) {
	short := colorGroup(DefaultFilter(), Distribution{Wave, 4}, Distribution{Type: Wave})
	long := colorGroup(DefaultFilter(), Distribution{Step, 1}, Distribution{Type: Wave})
	box := ColorBox{Beat: 10, GroupID: 2, Groups: []ColorGroup{short, long}}

	assert.Equal(t, float32(10), box.StartBeat())
	assert.Equal(t, float32(12), box.Duration(12))
	assert.Equal(t, float32(22), box.EndBeat(12))
	assert.Equal(t, float32(0), ColorBox{Beat: 3}.Duration(12))

	var timed Timed = box
	assert.Equal(t, 2, timed.LightGroup())
	assert.Equal(t, float32(22), timed.EndBeat(12))
}

func TestDefaults(t *testing.T) {
	c := DefaultColorGroup()
	require.Len(t, c.Data, 1)
	assert.Equal(t, float32(1), c.Data[0].Brightness)
	assert.Equal(t, easing.Linear, c.ValueDist.Easing)

	r := DefaultRotationGroup()
	assert.True(t, r.ValueDist.EffectFirst.IsTrue())
	assert.Equal(t, easing.None, r.Data[0].Easing)

	fx := DefaultFxGroup()
	assert.Equal(t, float32(1), fx.Data[0].Value)

	tr := DefaultTranslationGroup()
	assert.Equal(t, AxisX, tr.Axis)
}
