package physics

import "github.com/jakecoffman/cp"

// PhysicsMaterial holds the surface response of a collider. Both values are
// kept in [0, 1].
type PhysicsMaterial struct {
	Restitution float64
	Friction    float64
}

var DefaultMaterial = PhysicsMaterial{Restitution: 0.5, Friction: 0.3}

func NewPhysicsMaterial(restitution, friction float64) PhysicsMaterial {
	return PhysicsMaterial{
		Restitution: cp.Clamp01(restitution),
		Friction:    cp.Clamp01(friction),
	}
}

// GetBounceWith combines two restitutions multiplicatively.
func (m PhysicsMaterial) GetBounceWith(other PhysicsMaterial) float64 {
	return m.Restitution * other.Restitution
}

// GetFrictionWith combines two friction coefficients multiplicatively.
func (m PhysicsMaterial) GetFrictionWith(other PhysicsMaterial) float64 {
	return m.Friction * other.Friction
}
