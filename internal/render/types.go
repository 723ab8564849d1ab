package render

import (
	"errors"
	"fmt"
)

// Family names an event box family of a difficulty.
type Family string

const (
	FamilyColor       Family = "color"
	FamilyRotation    Family = "rotation"
	FamilyTranslation Family = "translation"
	FamilyFx          Family = "fx"
)

var ErrUnknownFamily = errors.New("unknown event family")

func ParseFamily(s string) (Family, error) {
	switch f := Family(s); f {
	case FamilyColor, FamilyRotation, FamilyTranslation, FamilyFx:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

// LightOffsets is one fixture's view of one event group. Beat and Value are
// zero for lights the filter does not select. Fixture is the light's linear
// index across the configured light groups, or -1 when its group only has
// the default size.
type LightOffsets struct {
	Family   Family  `json:"family"`
	Box      int     `json:"box"`
	Group    int     `json:"group"`
	GroupID  int     `json:"group_id"`
	Light    int     `json:"light"`
	Fixture  int     `json:"fixture"`
	Selected bool    `json:"selected"`
	Beat     float32 `json:"beat"`
	Value    float32 `json:"value"`
}

// BoxSpan is the beat range one box occupies.
type BoxSpan struct {
	Family  Family  `json:"family"`
	Box     int     `json:"box"`
	GroupID int     `json:"group_id"`
	Start   float32 `json:"start"`
	End     float32 `json:"end"`
}

// Frame is everything the engine computed for a document.
type Frame struct {
	Seq      uint64         `json:"seq"`
	Version  string         `json:"version"`
	Revision string         `json:"revision"`
	Lights   []LightOffsets `json:"lights"`
	Spans    []BoxSpan      `json:"spans"`
	// EndBeat is the latest span end, 0 for an empty document.
	EndBeat float32 `json:"end_beat"`
}

// Driver receives computed frames (JSON writer, websocket broadcaster, ...).
type Driver interface {
	Write(Frame) error
}
