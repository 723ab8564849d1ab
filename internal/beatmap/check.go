package beatmap

import (
	"fmt"

	diag "github.com/coreman2200/beatlights/internal/diagnostics"
	"github.com/coreman2200/beatlights/internal/easing"
	"github.com/coreman2200/beatlights/internal/lightshow"
)

type enumValue interface {
	IsKnown() bool
	String() string
}

type checker struct {
	out diag.List
	rev lightshow.Revision
}

// Check reports values the offset engine will fall back on: unknown enum
// ids, out of range limits and settings the active revision ignores.
// None of these stop offsets from being computed.
func (d *Difficulty) Check() diag.List {
	c := &checker{rev: d.Revision}
	for bi, b := range d.ColorBoxes {
		for gi, g := range b.Groups {
			loc := fmt.Sprintf("color[%d].group[%d]", bi, gi)
			c.group(loc, g.Group.Filter, g.BeatDist, g.ValueDist, len(g.Data))
			for di, e := range g.Data {
				dl := fmt.Sprintf("%s.data[%d]", loc, di)
				c.enum(dl, "DATA.UNKNOWN_TRANSITION", "transition type", e.Transition)
				c.enum(dl, "DATA.UNKNOWN_COLOR", "light color", e.Color)
				c.enum(dl, "DATA.UNKNOWN_STROBE_FADE", "strobe fade flag", e.StrobeFade)
			}
		}
	}
	for bi, b := range d.RotationBoxes {
		for gi, g := range b.Groups {
			loc := fmt.Sprintf("rotation[%d].group[%d]", bi, gi)
			c.group(loc, g.Filter, g.BeatDist, g.ValueDist, len(g.Data))
			c.enum(loc, "GROUP.UNKNOWN_AXIS", "event axis", g.Axis)
			c.enum(loc, "GROUP.UNKNOWN_INVERT", "invert axis flag", g.InvertAxis)
			for di, e := range g.Data {
				dl := fmt.Sprintf("%s.data[%d]", loc, di)
				c.enum(dl, "DATA.UNKNOWN_TRANSITION", "transition type", e.Transition)
				c.enum(dl, "DATA.UNKNOWN_EASING", "easing", e.Easing)
				c.enum(dl, "DATA.UNKNOWN_DIRECTION", "rotation direction", e.Direction)
			}
		}
	}
	for bi, b := range d.TranslationBoxes {
		for gi, g := range b.Groups {
			loc := fmt.Sprintf("translation[%d].group[%d]", bi, gi)
			c.group(loc, g.Filter, g.BeatDist, g.ValueDist, len(g.Data))
			c.enum(loc, "GROUP.UNKNOWN_AXIS", "event axis", g.Axis)
			c.enum(loc, "GROUP.UNKNOWN_INVERT", "invert axis flag", g.InvertAxis)
			for di, e := range g.Data {
				dl := fmt.Sprintf("%s.data[%d]", loc, di)
				c.enum(dl, "DATA.UNKNOWN_TRANSITION", "transition type", e.Transition)
				c.enum(dl, "DATA.UNKNOWN_EASING", "easing", e.Easing)
			}
		}
	}
	if d.Fx != nil {
		for bi, b := range d.Fx.Boxes {
			for gi, g := range b.Groups {
				loc := fmt.Sprintf("fx[%d].group[%d]", bi, gi)
				c.group(loc, g.Filter, g.BeatDist, g.ValueDist, len(g.Data))
				for di, e := range g.Data {
					dl := fmt.Sprintf("%s.data[%d]", loc, di)
					c.enum(dl, "DATA.UNKNOWN_TRANSITION", "transition type", e.Transition)
					c.enum(dl, "DATA.UNKNOWN_EASING", "easing", e.Easing)
				}
			}
		}
	}
	return c.out
}

func (c *checker) group(loc string, f lightshow.Filter, beat lightshow.Distribution, value lightshow.ValueDistribution, data int) {
	if !f.Type.IsKnown() {
		c.out.Add(diag.Diagnostic{
			Severity: diag.Warn, Code: "FILTER.UNKNOWN_TYPE", Location: loc,
			Summary:        "unknown filter type; every light is selected",
			LikelyCauses:   []string{"file written by a newer editor"},
			SuggestedFixes: []string{"use division (1) or step and offset (2)"},
			Evidence:       map[string]any{"type": int32(f.Type)},
		})
	}
	c.enum(loc, "FILTER.UNKNOWN_REVERSE", "reverse flag", f.Reverse)
	c.enum(loc, "FILTER.UNKNOWN_RANDOM", "random behaviour", f.RandomBehaviour)
	c.enum(loc, "FILTER.UNKNOWN_LIMIT", "limit behaviour", f.LimitBehaviour)
	if f.RandomBehaviour != lightshow.RandomNone && f.RandomBehaviour.IsKnown() {
		c.out.Add(diag.Diagnostic{
			Severity: diag.Info, Code: "FILTER.RANDOM_IGNORED", Location: loc,
			Summary:  "random ordering is not applied to offsets",
			Evidence: map[string]any{"behaviour": f.RandomBehaviour.String(), "seed": f.RandomSeed},
		})
	}
	if f.LimitPercent < 0 || f.LimitPercent > 1 {
		c.out.Add(diag.Diagnostic{
			Severity: diag.Warn, Code: "FILTER.LIMIT_RANGE", Location: loc,
			Summary:  "limit percent outside 0..1",
			Evidence: map[string]any{"limit_percent": f.LimitPercent},
		})
	}
	if f.Chunks > 0 && c.rev == lightshow.RevisionLegacy {
		c.out.Add(diag.Diagnostic{
			Severity: diag.Info, Code: "FILTER.CHUNKS_IGNORED", Location: loc,
			Summary:  "chunks are ignored by the legacy filter revision",
			Evidence: map[string]any{"chunks": f.Chunks},
		})
	}
	if f.Type == lightshow.FilterDivision && f.Parameter1 < 1 {
		c.out.Add(diag.Diagnostic{
			Severity: diag.Info, Code: "FILTER.DIVISION_FLOORED", Location: loc,
			Summary:  "division section count below 1 is treated as 1",
			Evidence: map[string]any{"parameter1": f.Parameter1},
		})
	}
	c.enum(loc, "GROUP.UNKNOWN_BEAT_DISTRIBUTION", "beat distribution type", beat.Type)
	c.enum(loc, "GROUP.UNKNOWN_VALUE_DISTRIBUTION", "value distribution type", value.Type)
	c.enum(loc, "GROUP.UNKNOWN_EASING", "value easing", value.Easing)
	if value.Type == lightshow.Wave && value.Easing == easing.None && value.Value != 0 {
		c.out.Add(diag.Diagnostic{
			Severity: diag.Info, Code: "GROUP.EASING_NONE", Location: loc,
			Summary: "wave value easing is none; value offsets are always zero",
		})
	}
	if data == 0 {
		c.out.Add(diag.Diagnostic{
			Severity: diag.Info, Code: "GROUP.NO_DATA", Location: loc,
			Summary: "group has no event data; duration is zero",
		})
	}
}

func (c *checker) enum(loc, code, what string, v enumValue) {
	if v.IsKnown() {
		return
	}
	c.out.Add(diag.Diagnostic{
		Severity: diag.Warn, Code: code, Location: loc,
		Summary:  "unknown " + what,
		Detail:   v.String() + " is kept as is and treated as neutral",
		Evidence: map[string]any{"value": v.String()},
	})
}
