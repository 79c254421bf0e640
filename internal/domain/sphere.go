package domain

// Sphere is the life category a user asks the reading to interpret
// (work/love/health/general). Sphere keys double as the sphere keys of
// an OrientationBlock.
type Sphere string

const (
	SphereWork    Sphere = "work"
	SphereLove    Sphere = "love"
	SphereHealth  Sphere = "health"
	SphereGeneral Sphere = "general"
)

// Spheres lists all valid spheres in presentation order.
var Spheres = []Sphere{SphereWork, SphereLove, SphereHealth, SphereGeneral}

// ParseSphere validates a raw sphere key coming from the transport.
// Returns ErrInvalidSphere for anything outside the known set.
func ParseSphere(raw string) (Sphere, error) {
	s := Sphere(raw)
	for _, known := range Spheres {
		if s == known {
			return s, nil
		}
	}
	return "", ErrInvalidSphere
}
