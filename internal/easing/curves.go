package easing

import "math"

const (
	back1    = 1.70158
	back2    = back1 * 1.525
	back3    = back1 + 1
	elastic4 = 2 * math.Pi / 3
	elastic5 = 2 * math.Pi / 4.5
	bounceN  = 7.5625
	bounceD  = 2.75
)

func linear(x float64) float64 { return x }

func inQuad(x float64) float64  { return x * x }
func outQuad(x float64) float64 { return 1 - (1-x)*(1-x) }
func inOutQuad(x float64) float64 {
	if x < 0.5 {
		return 2 * x * x
	}
	return 1 - math.Pow(-2*x+2, 2)/2
}

func inSine(x float64) float64    { return 1 - math.Cos(x*math.Pi/2) }
func outSine(x float64) float64   { return math.Sin(x * math.Pi / 2) }
func inOutSine(x float64) float64 { return -(math.Cos(math.Pi*x) - 1) / 2 }

func inCubic(x float64) float64  { return x * x * x }
func outCubic(x float64) float64 { return 1 - math.Pow(1-x, 3) }
func inOutCubic(x float64) float64 {
	if x < 0.5 {
		return 4 * x * x * x
	}
	return 1 - math.Pow(-2*x+2, 3)/2
}

func inQuart(x float64) float64  { return x * x * x * x }
func outQuart(x float64) float64 { return 1 - math.Pow(1-x, 4) }
func inOutQuart(x float64) float64 {
	if x < 0.5 {
		return 8 * x * x * x * x
	}
	return 1 - math.Pow(-2*x+2, 4)/2
}

func inQuint(x float64) float64  { return x * x * x * x * x }
func outQuint(x float64) float64 { return 1 - math.Pow(1-x, 5) }
func inOutQuint(x float64) float64 {
	if x < 0.5 {
		return 16 * x * x * x * x * x
	}
	return 1 - math.Pow(-2*x+2, 5)/2
}

func inExpo(x float64) float64 {
	if x == 0 {
		return 0
	}
	return math.Pow(2, 10*x-10)
}

func outExpo(x float64) float64 {
	if x == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*x)
}

func inOutExpo(x float64) float64 {
	switch {
	case x == 0:
		return 0
	case x == 1:
		return 1
	case x < 0.5:
		return math.Pow(2, 20*x-10) / 2
	default:
		return (2 - math.Pow(2, -20*x+10)) / 2
	}
}

func inCirc(x float64) float64  { return 1 - math.Sqrt(1-x*x) }
func outCirc(x float64) float64 { return math.Sqrt(1 - (x-1)*(x-1)) }
func inOutCirc(x float64) float64 {
	if x < 0.5 {
		return (1 - math.Sqrt(1-math.Pow(2*x, 2))) / 2
	}
	return (math.Sqrt(1-math.Pow(-2*x+2, 2)) + 1) / 2
}

func inBack(x float64) float64 { return back3*x*x*x - back1*x*x }
func outBack(x float64) float64 {
	return 1 + back3*math.Pow(x-1, 3) + back1*math.Pow(x-1, 2)
}
func inOutBack(x float64) float64 {
	if x < 0.5 {
		return (math.Pow(2*x, 2) * ((back2+1)*2*x - back2)) / 2
	}
	return (math.Pow(2*x-2, 2)*((back2+1)*(2*x-2)+back2) + 2) / 2
}

func inElastic(x float64) float64 {
	switch x {
	case 0:
		return 0
	case 1:
		return 1
	}
	return -math.Pow(2, 10*x-10) * math.Sin((10*x-10.75)*elastic4)
}

func outElastic(x float64) float64 {
	switch x {
	case 0:
		return 0
	case 1:
		return 1
	}
	return math.Pow(2, -10*x)*math.Sin((10*x-0.75)*elastic4) + 1
}

func inOutElastic(x float64) float64 {
	switch {
	case x == 0:
		return 0
	case x == 1:
		return 1
	case x < 0.5:
		return -(math.Pow(2, 20*x-10) * math.Sin((20*x-11.125)*elastic5)) / 2
	default:
		return (math.Pow(2, -20*x+10)*math.Sin((20*x-11.125)*elastic5))/2 + 1
	}
}

func inBounce(x float64) float64 { return 1 - outBounce(1-x) }

func outBounce(x float64) float64 {
	switch {
	case x < 1/bounceD:
		return bounceN * x * x
	case x < 2/bounceD:
		x -= 1.5 / bounceD
		return bounceN*x*x + 0.75
	case x < 2.5/bounceD:
		x -= 2.25 / bounceD
		return bounceN*x*x + 0.9375
	default:
		x -= 2.625 / bounceD
		return bounceN*x*x + 0.984375
	}
}

func inOutBounce(x float64) float64 {
	if x < 0.5 {
		return (1 - outBounce(1-2*x)) / 2
	}
	return (1 + outBounce(2*x-1)) / 2
}
