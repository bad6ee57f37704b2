package vmath

import "math"

// WrapAngle normalizes an angle to the range (-Pi, Pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleDiff returns the signed shortest rotation from -> to.
func AngleDiff(from, to float64) float64 {
	return WrapAngle(to - from)
}

// StepAngle rotates current toward target by at most step radians.
// It lands exactly on target instead of overshooting.
func StepAngle(current, target, step float64) float64 {
	d := AngleDiff(current, target)
	if math.Abs(d) <= step {
		return WrapAngle(target)
	}
	if d > 0 {
		return WrapAngle(current + step)
	}
	return WrapAngle(current - step)
}

// RayDistance measures point p against the segment that starts at origin and
// runs length units along angle. It returns the perpendicular distance to the
// closest point of the segment and how far along the segment that point is.
func RayDistance(origin Vec, angle, length float64, p Vec) (dist, along float64) {
	dir := FromAngle(angle, 1)
	rel := p.Sub(origin)
	along = rel.Dot(dir)
	if along < 0 {
		along = 0
	} else if along > length {
		along = length
	}
	closest := origin.Add(dir.Mul(along))
	return Dist(closest, p), along
}
