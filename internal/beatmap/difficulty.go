// Package beatmap reads the light-show parts of a difficulty file.
package beatmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/coreman2200/beatlights/internal/lightshow"
)

const (
	keyVersion      = "version"
	keyColor        = "lightColorEventBoxGroups"
	keyRotation     = "lightRotationEventBoxGroups"
	keyTranslation  = "lightTranslationEventBoxGroups"
	keyFxBoxes      = "vfxEventBoxGroups"
	keyFxCollection = "_fxEventsCollection"
)

// Difficulty is a difficulty file's light-show event boxes. Keys this
// package does not model are kept verbatim and written back by Encode.
type Difficulty struct {
	Version string

	ColorBoxes    []lightshow.ColorBox
	RotationBoxes []lightshow.RotationBox
	// TranslationBoxes is nil for files older than V3.2.
	TranslationBoxes []lightshow.TranslationBox
	// Fx is nil for files without vfx event boxes.
	Fx *lightshow.FxContainer

	// Revision is the filter rule set stamped on every group.
	Revision lightshow.Revision

	extra map[string]json.RawMessage
}

type options struct {
	revision *lightshow.Revision
}

type Option func(*options)

// WithRevision overrides the revision detected from the file version.
func WithRevision(r lightshow.Revision) Option {
	return func(o *options) { o.revision = &r }
}

// RevisionFor maps a file version onto a filter rule set. Only 3.0.x files
// use the legacy rules; newer, unversioned and unparseable versions use the
// current ones.
func RevisionFor(version string) lightshow.Revision {
	parts := strings.Split(strings.TrimSpace(version), ".")
	if len(parts) < 2 {
		return lightshow.RevisionCurrent
	}
	major, err1 := strconv.Atoi(parts[0])
	minor, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return lightshow.RevisionCurrent
	}
	if major == 3 && minor == 0 {
		return lightshow.RevisionLegacy
	}
	return lightshow.RevisionCurrent
}

// Load decodes the difficulty file at path.
func Load(path string, opts ...Option) (*Difficulty, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Decode(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Decode reads a difficulty document and stamps every filter with the
// revision for its version.
func Decode(r io.Reader, opts ...Option) (*Difficulty, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode difficulty: %w", err)
	}

	d := &Difficulty{extra: raw}
	if err := take(raw, keyVersion, &d.Version); err != nil {
		return nil, err
	}
	if err := take(raw, keyColor, &d.ColorBoxes); err != nil {
		return nil, err
	}
	if err := take(raw, keyRotation, &d.RotationBoxes); err != nil {
		return nil, err
	}
	if _, ok := raw[keyTranslation]; ok {
		d.TranslationBoxes = []lightshow.TranslationBox{}
		if err := take(raw, keyTranslation, &d.TranslationBoxes); err != nil {
			return nil, err
		}
	}
	if _, ok := raw[keyFxBoxes]; ok {
		fx, err := decodeFx(raw)
		if err != nil {
			return nil, err
		}
		d.Fx = fx
	}

	d.Revision = RevisionFor(d.Version)
	if o.revision != nil {
		d.Revision = *o.revision
	}
	d.SetRevision(d.Revision)
	return d, nil
}

func take(raw map[string]json.RawMessage, key string, dst any) error {
	b, ok := raw[key]
	if !ok {
		return nil
	}
	delete(raw, key)
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func decodeFx(raw map[string]json.RawMessage) (*lightshow.FxContainer, error) {
	pair := map[string]json.RawMessage{keyFxBoxes: raw[keyFxBoxes]}
	if c, ok := raw[keyFxCollection]; ok {
		pair[keyFxCollection] = c
	}
	b, err := json.Marshal(pair)
	if err != nil {
		return nil, err
	}
	var fx lightshow.FxContainer
	if err := json.Unmarshal(b, &fx); err != nil {
		return nil, fmt.Errorf("decode %s: %w", keyFxBoxes, err)
	}
	delete(raw, keyFxBoxes)
	delete(raw, keyFxCollection)
	return &fx, nil
}

// SetRevision re-stamps every group's filter.
func (d *Difficulty) SetRevision(r lightshow.Revision) {
	d.Revision = r
	stamp(d.ColorBoxes, r)
	stamp(d.RotationBoxes, r)
	stamp(d.TranslationBoxes, r)
	if d.Fx != nil {
		stamp(d.Fx.Boxes, r)
	}
}

func stamp[G lightshow.EventGroup, P interface {
	*G
	SetRevision(lightshow.Revision)
}](boxes []lightshow.Box[G], r lightshow.Revision) {
	for i := range boxes {
		for j := range boxes[i].Groups {
			P(&boxes[i].Groups[j]).SetRevision(r)
		}
	}
}

// MarshalJSON writes the modelled keys over the preserved ones.
func (d *Difficulty) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.extra)+6)
	for k, v := range d.extra {
		out[k] = v
	}
	put := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		out[key] = b
		return nil
	}
	if err := put(keyVersion, d.Version); err != nil {
		return nil, err
	}
	if err := put(keyColor, nonNil(d.ColorBoxes)); err != nil {
		return nil, err
	}
	if err := put(keyRotation, nonNil(d.RotationBoxes)); err != nil {
		return nil, err
	}
	if d.TranslationBoxes != nil {
		if err := put(keyTranslation, d.TranslationBoxes); err != nil {
			return nil, err
		}
	}
	if d.Fx != nil {
		b, err := json.Marshal(d.Fx)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", keyFxBoxes, err)
		}
		var pair map[string]json.RawMessage
		if err := json.Unmarshal(b, &pair); err != nil {
			return nil, err
		}
		for k, v := range pair {
			out[k] = v
		}
	}
	return json.Marshal(out)
}

// Encode writes the document as indented JSON.
func (d *Difficulty) Encode(w io.Writer) error {
	b, err := d.MarshalJSON()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
