package greeting

import "time"

// Keyframes are values evenly spaced over one animation cycle.
type Keyframes []float64

// At linearly interpolates the keyframes at progress in [0, 1].
func (k Keyframes) At(progress float64) float64 {
	switch len(k) {
	case 0:
		return 0
	case 1:
		return k[0]
	}

	if progress <= 0 {
		return k[0]
	}
	if progress >= 1 {
		return k[len(k)-1]
	}

	pos := progress * float64(len(k)-1)
	i := int(pos)
	frac := pos - float64(i)
	return k[i] + (k[i+1]-k[i])*frac
}

// Pose is the transform of an orb at one instant.
type Pose struct {
	X, Y   float64 // offset in percent of the travel range
	Rotate float64 // degrees
	Scale  float64
}

// Orb is a background decoration that loops through its keyframes.
type Orb struct {
	Name   string
	Period time.Duration
	X      Keyframes
	Y      Keyframes
	Rotate Keyframes
	Scale  Keyframes
}

// Progress returns the position within the current cycle in [0, 1).
func (o Orb) Progress(elapsed time.Duration) float64 {
	if o.Period <= 0 || elapsed <= 0 {
		return 0
	}
	return float64(elapsed%o.Period) / float64(o.Period)
}

// PoseAt returns the orb's transform after elapsed.
func (o Orb) PoseAt(elapsed time.Duration) Pose {
	p := o.Progress(elapsed)
	return Pose{
		X:      o.X.At(p),
		Y:      o.Y.At(p),
		Rotate: o.Rotate.At(p),
		Scale:  o.Scale.At(p),
	}
}

// Orbs are the two drifting background circles.
var Orbs = []Orb{
	{
		Name:   "upper-left",
		Period: 20 * time.Second,
		X:      Keyframes{0, 100, 0},
		Y:      Keyframes{0, -50, 0},
		Rotate: Keyframes{0, 360},
		Scale:  Keyframes{1, 1.2, 1},
	},
	{
		Name:   "lower-right",
		Period: 15 * time.Second,
		X:      Keyframes{0, -100, 0},
		Y:      Keyframes{0, 50, 0},
		Rotate: Keyframes{360, 0},
		Scale:  Keyframes{1, 1.3, 1},
	},
}
