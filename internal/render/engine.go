package render

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coreman2200/beatlights/internal/beatmap"
	"github.com/coreman2200/beatlights/internal/layout"
	"github.com/coreman2200/beatlights/internal/lightshow"
)

// Engine computes per-light offsets for every group of a difficulty and
// writes the result to its driver.
type Engine struct {
	Layout  layout.Layout
	Drv     Driver
	Workers int

	seq atomic.Uint64

	// metrics (last durations in ms)
	Last struct {
		ComputeMS float64
		WriteMS   float64
		TotalMS   float64
		Lights    int
	}
}

// NewEngine returns an Engine; workers below 1 run groups one at a time.
func NewEngine(l layout.Layout, drv Driver, workers int) (*Engine, error) {
	if l.Default <= 0 {
		return nil, errors.New("layout default group size must be positive")
	}
	for id, n := range l.Groups {
		if n <= 0 {
			return nil, fmt.Errorf("layout group %d has %d lights", id, n)
		}
	}
	return &Engine{Layout: l, Drv: drv, Workers: max(workers, 1)}, nil
}

type job struct {
	family  Family
	box     int
	group   int
	groupID int
	g       lightshow.EventGroup
}

func collect[G lightshow.EventGroup](jobs []job, f Family, boxes []lightshow.Box[G]) []job {
	for bi, b := range boxes {
		for gi, g := range b.Groups {
			jobs = append(jobs, job{family: f, box: bi, group: gi, groupID: b.GroupID, g: g})
		}
	}
	return jobs
}

func spans[T lightshow.Timed](out []BoxSpan, f Family, boxes []T, l layout.Layout) []BoxSpan {
	for bi, b := range boxes {
		id := b.LightGroup()
		out = append(out, BoxSpan{
			Family: f, Box: bi, GroupID: id,
			Start: b.StartBeat(), End: b.EndBeat(l.Size(id)),
		})
	}
	return out
}

func jobsFor(d *beatmap.Difficulty) []job {
	var jobs []job
	jobs = collect(jobs, FamilyColor, d.ColorBoxes)
	jobs = collect(jobs, FamilyRotation, d.RotationBoxes)
	jobs = collect(jobs, FamilyTranslation, d.TranslationBoxes)
	if d.Fx != nil {
		jobs = collect(jobs, FamilyFx, d.Fx.Boxes)
	}
	return jobs
}

// Timeline lists each box's beat range in family order.
func (e *Engine) Timeline(d *beatmap.Difficulty) []BoxSpan {
	var out []BoxSpan
	out = spans(out, FamilyColor, d.ColorBoxes, e.Layout)
	out = spans(out, FamilyRotation, d.RotationBoxes, e.Layout)
	out = spans(out, FamilyTranslation, d.TranslationBoxes, e.Layout)
	if d.Fx != nil {
		out = spans(out, FamilyFx, d.Fx.Boxes, e.Layout)
	}
	return out
}

// EndBeat is the beat at which the document's last box finishes.
func (e *Engine) EndBeat(d *beatmap.Difficulty) float32 {
	var end float32
	for _, s := range e.Timeline(d) {
		end = max(end, s.End)
	}
	return end
}

func offsets(j job, l layout.Layout) ([]LightOffsets, error) {
	size := l.Size(j.groupID)
	out := make([]LightOffsets, size)
	for id := 0; id < size; id++ {
		lo := LightOffsets{Family: j.family, Box: j.box, Group: j.group, GroupID: j.groupID, Light: id, Fixture: -1}
		if n, err := l.Index(j.groupID, id); err == nil {
			lo.Fixture = n
		}
		sel, err := j.g.Selected(id, size)
		if err != nil {
			return nil, err
		}
		if sel {
			lo.Selected = true
			if lo.Beat, err = j.g.BeatOffset(id, size); err != nil {
				return nil, err
			}
			if lo.Value, err = j.g.ValueOffset(id, size); err != nil {
				return nil, err
			}
		}
		out[id] = lo
	}
	return out, nil
}

// Offsets computes a single group. The box and group indices are positions
// within the family's list.
func (e *Engine) Offsets(d *beatmap.Difficulty, f Family, box, group int) ([]LightOffsets, error) {
	if _, err := ParseFamily(string(f)); err != nil {
		return nil, err
	}
	for _, j := range jobsFor(d) {
		if j.family == f && j.box == box && j.group == group {
			return offsets(j, e.Layout)
		}
	}
	return nil, fmt.Errorf("%s box %d group %d: not found", f, box, group)
}

// Compute fans groups out over the engine's workers. Results keep document
// order regardless of which worker finished first.
func (e *Engine) Compute(ctx context.Context, d *beatmap.Difficulty) (Frame, error) {
	jobs := jobsFor(d)
	slots := make([][]LightOffsets, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.Workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := offsets(j, e.Layout)
			if err != nil {
				return fmt.Errorf("%s box %d group %d: %w", j.family, j.box, j.group, err)
			}
			slots[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Frame{}, err
	}

	n := 0
	for _, s := range slots {
		n += len(s)
	}
	f := Frame{
		Version:  d.Version,
		Revision: d.Revision.String(),
		Lights:   make([]LightOffsets, 0, n),
		Spans:    e.Timeline(d),
	}
	for _, s := range slots {
		f.Lights = append(f.Lights, s...)
	}
	for _, s := range f.Spans {
		f.EndBeat = max(f.EndBeat, s.End)
	}
	return f, nil
}

// RenderOnce computes a frame, stamps its sequence number and writes it to
// the driver.
func (e *Engine) RenderOnce(ctx context.Context, d *beatmap.Difficulty) (Frame, error) {
	start := time.Now()
	f, err := e.Compute(ctx, d)
	if err != nil {
		return Frame{}, err
	}
	f.Seq = e.seq.Add(1)
	e.Last.ComputeMS = float64(time.Since(start).Microseconds()) / 1000.0
	e.Last.Lights = len(f.Lights)

	writeStart := time.Now()
	if e.Drv != nil {
		if err := e.Drv.Write(f); err != nil {
			return f, err
		}
	}
	e.Last.WriteMS = float64(time.Since(writeStart).Microseconds()) / 1000.0
	e.Last.TotalMS = float64(time.Since(start).Microseconds()) / 1000.0
	return f, nil
}
