// Package easing maps the map format's easing ids onto unit curves.
package easing

import "fmt"

// Easing is an easing curve id as stored in a map file. Ids outside the
// known set are kept verbatim so they survive a decode/encode cycle.
type Easing int32

const (
	None Easing = -1

	Linear       Easing = 0
	InQuad       Easing = 1
	OutQuad      Easing = 2
	InOutQuad    Easing = 3
	InSine       Easing = 4
	OutSine      Easing = 5
	InOutSine    Easing = 6
	InCubic      Easing = 7
	OutCubic     Easing = 8
	InOutCubic   Easing = 9
	InQuart      Easing = 10
	OutQuart     Easing = 11
	InOutQuart   Easing = 12
	InQuint      Easing = 13
	OutQuint     Easing = 14
	InOutQuint   Easing = 15
	InExpo       Easing = 16
	OutExpo      Easing = 17
	InOutExpo    Easing = 18
	InCirc       Easing = 19
	OutCirc      Easing = 20
	InOutCirc    Easing = 21
	InBack       Easing = 22
	OutBack      Easing = 23
	InOutBack    Easing = 24
	InElastic    Easing = 25
	OutElastic   Easing = 26
	InOutElastic Easing = 27
	InBounce     Easing = 28
	OutBounce    Easing = 29
	InOutBounce  Easing = 30

	BeatSaberInOutBack    Easing = 100
	BeatSaberInOutElastic Easing = 101
	BeatSaberInOutBounce  Easing = 102
)

var names = map[Easing]string{
	None:                  "none",
	Linear:                "linear",
	InQuad:                "in_quad",
	OutQuad:               "out_quad",
	InOutQuad:             "in_out_quad",
	InSine:                "in_sine",
	OutSine:               "out_sine",
	InOutSine:             "in_out_sine",
	InCubic:               "in_cubic",
	OutCubic:              "out_cubic",
	InOutCubic:            "in_out_cubic",
	InQuart:               "in_quart",
	OutQuart:              "out_quart",
	InOutQuart:            "in_out_quart",
	InQuint:               "in_quint",
	OutQuint:              "out_quint",
	InOutQuint:            "in_out_quint",
	InExpo:                "in_expo",
	OutExpo:               "out_expo",
	InOutExpo:             "in_out_expo",
	InCirc:                "in_circ",
	OutCirc:               "out_circ",
	InOutCirc:             "in_out_circ",
	InBack:                "in_back",
	OutBack:               "out_back",
	InOutBack:             "in_out_back",
	InElastic:             "in_elastic",
	OutElastic:            "out_elastic",
	InOutElastic:          "in_out_elastic",
	InBounce:              "in_bounce",
	OutBounce:             "out_bounce",
	InOutBounce:           "in_out_bounce",
	BeatSaberInOutBack:    "beatsaber_in_out_back",
	BeatSaberInOutElastic: "beatsaber_in_out_elastic",
	BeatSaberInOutBounce:  "beatsaber_in_out_bounce",
}

// IsKnown reports whether e names a curve.
func (e Easing) IsKnown() bool {
	_, ok := names[e]
	return ok
}

func (e Easing) String() string {
	if n, ok := names[e]; ok {
		return n
	}
	return fmt.Sprintf("unknown(%d)", int32(e))
}

// Parse looks an easing up by its String name.
func Parse(name string) (Easing, bool) {
	for e, n := range names {
		if n == name {
			return e, true
		}
	}
	return None, false
}

// Ease evaluates the curve at x, normally in [0,1].
// None and unknown ids always yield 0.
func (e Easing) Ease(x float32) float32 {
	if e == Linear {
		return x
	}
	f := e.Func()
	if f == nil {
		return 0
	}
	return float32(f(float64(x)))
}

// Func returns the curve for e, or nil for None and unknown ids.
func (e Easing) Func() func(float64) float64 {
	switch e {
	case Linear:
		return linear
	case InQuad:
		return inQuad
	case OutQuad:
		return outQuad
	case InOutQuad:
		return inOutQuad
	case InSine:
		return inSine
	case OutSine:
		return outSine
	case InOutSine:
		return inOutSine
	case InCubic:
		return inCubic
	case OutCubic:
		return outCubic
	case InOutCubic:
		return inOutCubic
	case InQuart:
		return inQuart
	case OutQuart:
		return outQuart
	case InOutQuart:
		return inOutQuart
	case InQuint:
		return inQuint
	case OutQuint:
		return outQuint
	case InOutQuint:
		return inOutQuint
	case InExpo:
		return inExpo
	case OutExpo:
		return outExpo
	case InOutExpo:
		return inOutExpo
	case InCirc:
		return inCirc
	case OutCirc:
		return outCirc
	case InOutCirc:
		return inOutCirc
	case InBack:
		return inBack
	case OutBack:
		return outBack
	case InOutBack, BeatSaberInOutBack:
		return inOutBack
	case InElastic:
		return inElastic
	case OutElastic:
		return outElastic
	case InOutElastic, BeatSaberInOutElastic:
		return inOutElastic
	case InBounce:
		return inBounce
	case OutBounce:
		return outBounce
	case InOutBounce, BeatSaberInOutBounce:
		return inOutBounce
	default:
		return nil
	}
}
