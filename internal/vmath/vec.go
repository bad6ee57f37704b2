// Package vmath provides the 2D vector helpers used by the simulation.
// Vectors are mgl64.Vec2 values, so every operation here returns a new value
// and never mutates its arguments.
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec is a 2D point or direction in world units.
type Vec = mgl64.Vec2

// Zero is the zero vector.
var Zero = Vec{}

// V builds a vector from components.
func V(x, y float64) Vec {
	return Vec{x, y}
}

// FromAngle returns a vector of the given length pointing along angle (radians).
func FromAngle(angle, length float64) Vec {
	return Vec{math.Cos(angle) * length, math.Sin(angle) * length}
}

// Angle returns the heading of v in radians.
func Angle(v Vec) float64 {
	return math.Atan2(v.Y(), v.X())
}

// Rotate rotates v by angle radians counter-clockwise.
func Rotate(v Vec, angle float64) Vec {
	return mgl64.Rotate2D(angle).Mul2x1(v)
}

// Perp returns v rotated by +90 degrees.
func Perp(v Vec) Vec {
	return Vec{-v.Y(), v.X()}
}

// Dist returns the distance between two points.
func Dist(a, b Vec) float64 {
	return b.Sub(a).Len()
}

// Dir returns the unit vector from a to b, or Zero if the points coincide.
func Dir(a, b Vec) Vec {
	return Unit(b.Sub(a))
}

// Unit normalizes v. Zero-length and non-finite inputs return Zero.
func Unit(v Vec) Vec {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Zero
	}
	return v.Mul(1 / l)
}

// ClampLen scales v down so its length does not exceed max.
func ClampLen(v Vec, max float64) Vec {
	if max <= 0 {
		return Zero
	}
	l := v.Len()
	if l <= max {
		return v
	}
	return v.Mul(max / l)
}

// Finite reports whether both components are finite numbers.
func Finite(v Vec) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Lerp moves from a toward b by fraction t.
func Lerp(a, b Vec, t float64) Vec {
	return a.Add(b.Sub(a).Mul(t))
}
