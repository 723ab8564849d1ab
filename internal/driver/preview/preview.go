package preview

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/coreman2200/beatlights/internal/render"
)

// Driver writes frames as JSON, one document per Write.
type Driver struct {
	w        io.Writer
	indent   bool
	throttle time.Duration
	lastEmit time.Time
	mu       sync.Mutex
	now      func() time.Time
}

type Option func(*Driver)

// Indented pretty-prints each frame.
func Indented() Option { return func(d *Driver) { d.indent = true } }

// Throttle drops frames arriving sooner than every after the last one written.
func Throttle(every time.Duration) Option { return func(d *Driver) { d.throttle = every } }

func New(w io.Writer, opts ...Option) *Driver {
	d := &Driver{w: w, now: time.Now}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *Driver) Write(f render.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if d.throttle > 0 && !d.lastEmit.IsZero() && d.lastEmit.Add(d.throttle).After(now) {
		return nil
	}
	d.lastEmit = now

	enc := json.NewEncoder(d.w)
	if d.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(f)
}
