// Package geom holds the 2D value types used by the physics core: discs,
// planes, segments, boxes and convex polygons, plus the GJK/EPA narrow phase
// that turns two overlapping shapes into a contact manifold.
package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// ContactTolerance is the absolute distance, in world units, under which two
// plane or edge distances are treated as equal by EPA and contact clipping.
const ContactTolerance = 0.01

const nearlyZero = 1e-12

// Vec2 builds a cp.Vector.
func Vec2(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}

// RotateDegrees rotates v counter-clockwise about the origin.
func RotateDegrees(v cp.Vector, degrees float64) cp.Vector {
	return v.Rotate(cp.ForAngle(DegreesToRadians(degrees)))
}

// RotateRadians rotates v counter-clockwise about the origin.
func RotateRadians(v cp.Vector, radians float64) cp.Vector {
	return v.Rotate(cp.ForAngle(radians))
}

func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func RadiansToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// SafeNormalize returns the unit vector of v, or fallback when v has no length.
func SafeNormalize(v, fallback cp.Vector) cp.Vector {
	l := v.Length()
	if l < nearlyZero {
		return fallback
	}
	return v.Mult(1 / l)
}

// TripleCross computes (a x b) x c for vectors lifted into the XY plane.
func TripleCross(a, b, c cp.Vector) cp.Vector {
	z := a.Cross(b)
	return cp.Vector{X: -z * c.Y, Y: z * c.X}
}

// NearlyEqual reports whether a and b are within eps of each other.
func NearlyEqual(a, b cp.Vector, eps float64) bool {
	return a.DistanceSq(b) <= eps*eps
}
