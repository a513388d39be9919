package common

import "math"

// TPS is the fixed simulation rate; every system advances by FixedDt.
const (
	TPS     = 60
	FixedDt = 1.0 / TPS
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// ExpDecay moves current toward target by the frame-rate independent factor
// 1 - e^(-rate*dt). A non-positive rate snaps.
func ExpDecay(current, target, rate, dt float64) float64 {
	if rate <= 0 {
		return target
	}
	return Lerp(current, target, 1-math.Exp(-rate*dt))
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
