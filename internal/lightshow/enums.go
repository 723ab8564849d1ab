package lightshow

import "fmt"

// Every enum in this file keeps the raw integer from the map file. Values
// outside the named set are "unknown": they decode, round-trip and fall back
// to a neutral behaviour instead of failing.

func enumString[T ~int32](v T, names map[T]string) string {
	if n, ok := names[v]; ok {
		return n
	}
	return fmt.Sprintf("unknown(%d)", int32(v))
}

func enumKnown[T ~int32](v T, names map[T]string) bool {
	_, ok := names[v]
	return ok
}

// LooseBool is a 0/1 flag. Any other value reads as false.
type LooseBool int32

const (
	LooseFalse LooseBool = 0
	LooseTrue  LooseBool = 1
)

var looseBoolNames = map[LooseBool]string{LooseFalse: "false", LooseTrue: "true"}

func (b LooseBool) IsTrue() bool  { return b == LooseTrue }
func (b LooseBool) IsKnown() bool { return enumKnown(b, looseBoolNames) }
func (b LooseBool) String() string {
	return enumString(b, looseBoolNames)
}

// FilterType selects how a Filter reads its two parameters.
type FilterType int32

const (
	// FilterDivision splits the group into Parameter1 sections and keeps
	// section Parameter2.
	FilterDivision FilterType = 1
	// FilterStepAndOffset keeps every Parameter2-th light starting at
	// Parameter1.
	FilterStepAndOffset FilterType = 2
)

var filterTypeNames = map[FilterType]string{
	FilterDivision:      "division",
	FilterStepAndOffset: "step_and_offset",
}

func (t FilterType) IsKnown() bool  { return enumKnown(t, filterTypeNames) }
func (t FilterType) String() string { return enumString(t, filterTypeNames) }

// RandomBehaviour is stored and round-tripped only.
type RandomBehaviour int32

const (
	RandomNone      RandomBehaviour = 0
	RandomKeepOrder RandomBehaviour = 1
	RandomElements  RandomBehaviour = 2
)

var randomBehaviourNames = map[RandomBehaviour]string{
	RandomNone:      "none",
	RandomKeepOrder: "keep_order",
	RandomElements:  "random_elements",
}

func (r RandomBehaviour) IsKnown() bool  { return enumKnown(r, randomBehaviourNames) }
func (r RandomBehaviour) String() string { return enumString(r, randomBehaviourNames) }

// LimitBehaviour picks which distribution axes the limit percent shrinks.
type LimitBehaviour int32

const (
	LimitNone         LimitBehaviour = 0
	LimitDuration     LimitBehaviour = 1
	LimitDistribution LimitBehaviour = 2
	LimitBoth         LimitBehaviour = 3
)

var limitBehaviourNames = map[LimitBehaviour]string{
	LimitNone:         "none",
	LimitDuration:     "duration",
	LimitDistribution: "distribution",
	LimitBoth:         "both",
}

// Duration reports whether the beat axis is limited.
func (l LimitBehaviour) Duration() bool { return l == LimitDuration || l == LimitBoth }

// Distribution reports whether the value axis is limited.
func (l LimitBehaviour) Distribution() bool { return l == LimitDistribution || l == LimitBoth }

func (l LimitBehaviour) IsKnown() bool  { return enumKnown(l, limitBehaviourNames) }
func (l LimitBehaviour) String() string { return enumString(l, limitBehaviourNames) }

// DistributionType says how a distribution value spreads across lights.
type DistributionType int32

const (
	// Wave: the value is the difference between the first and last step.
	Wave DistributionType = 1
	// Step: the value is the difference between consecutive steps.
	Step DistributionType = 2
)

var distributionTypeNames = map[DistributionType]string{Wave: "wave", Step: "step"}

func (d DistributionType) IsKnown() bool  { return enumKnown(d, distributionTypeNames) }
func (d DistributionType) String() string { return enumString(d, distributionTypeNames) }

// TransitionType controls how rotation, translation and fx data blend from
// the previous event.
type TransitionType int32

const (
	Transition TransitionType = 0
	Extend     TransitionType = 1
)

var transitionTypeNames = map[TransitionType]string{Transition: "transition", Extend: "extend"}

func (t TransitionType) IsKnown() bool  { return enumKnown(t, transitionTypeNames) }
func (t TransitionType) String() string { return enumString(t, transitionTypeNames) }

// ColorTransitionType is the color family's transition, with an extra
// Instant mode.
type ColorTransitionType int32

const (
	ColorInstant    ColorTransitionType = 0
	ColorTransition ColorTransitionType = 1
	ColorExtend     ColorTransitionType = 2
)

var colorTransitionTypeNames = map[ColorTransitionType]string{
	ColorInstant:    "instant",
	ColorTransition: "transition",
	ColorExtend:     "extend",
}

func (t ColorTransitionType) IsKnown() bool  { return enumKnown(t, colorTransitionTypeNames) }
func (t ColorTransitionType) String() string { return enumString(t, colorTransitionTypeNames) }

// LightColor indexes into the environment's color scheme.
type LightColor int32

const (
	Primary   LightColor = 0
	Secondary LightColor = 1
	White     LightColor = 2
)

var lightColorNames = map[LightColor]string{Primary: "primary", Secondary: "secondary", White: "white"}

func (c LightColor) IsKnown() bool  { return enumKnown(c, lightColorNames) }
func (c LightColor) String() string { return enumString(c, lightColorNames) }

// EventAxis is the axis a rotation or translation group moves along.
type EventAxis int32

const (
	AxisX EventAxis = 0
	AxisY EventAxis = 1
	AxisZ EventAxis = 2
)

var eventAxisNames = map[EventAxis]string{AxisX: "x", AxisY: "y", AxisZ: "z"}

func (a EventAxis) IsKnown() bool  { return enumKnown(a, eventAxisNames) }
func (a EventAxis) String() string { return enumString(a, eventAxisNames) }

// RotationDirection; Automatic takes the shortest path.
type RotationDirection int32

const (
	Automatic        RotationDirection = 0
	Clockwise        RotationDirection = 1
	CounterClockwise RotationDirection = 2
)

var rotationDirectionNames = map[RotationDirection]string{
	Automatic:        "automatic",
	Clockwise:        "clockwise",
	CounterClockwise: "counter_clockwise",
}

func (d RotationDirection) IsKnown() bool  { return enumKnown(d, rotationDirectionNames) }
func (d RotationDirection) String() string { return enumString(d, rotationDirectionNames) }
