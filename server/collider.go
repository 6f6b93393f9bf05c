package main

// Sphere is the bounding volume used for all collision tests.
// Intersection tests are the only geometry the simulation does.
type Sphere struct {
	X, Y, Z float64
	R       float64
}

// Intersects reports whether two spheres overlap or touch.
func (s Sphere) Intersects(o Sphere) bool {
	dx := o.X - s.X
	dy := o.Y - s.Y
	dz := o.Z - s.Z
	dist2 := dx*dx + dy*dy + dz*dz
	radSum := s.R + o.R
	return dist2 <= radSum*radSum
}

// Translated returns a copy of the sphere moved by (dx, dy).
func (s Sphere) Translated(dx, dy float64) Sphere {
	s.X += dx
	s.Y += dy
	return s
}
