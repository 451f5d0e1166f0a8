package field

import "math"

type Vec struct {
	X, Y float64
}

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Particle is one animated point. Radius and Vel are fixed at creation apart
// from the sign flips applied on boundary crossings.
type Particle struct {
	Pos    Vec
	Vel    Vec
	Radius float64
	Color  RGBA
}

// update bounces off the surface edges, applies pointer repulsion and moves
// the particle by its velocity. Repulsion changes position only.
func (p *Particle) update(width, height float64, pointer *Vec, influence, maxForce float64) {
	if p.Pos.X > width || p.Pos.X < 0 {
		p.Vel.X = -p.Vel.X
	}
	if p.Pos.Y > height || p.Pos.Y < 0 {
		p.Vel.Y = -p.Vel.Y
	}

	if pointer != nil {
		d := p.Pos.Sub(*pointer)
		dist := d.Len()
		// dist == 0 has no direction to push along.
		if dist > 0 && dist < influence {
			force := repulsion(dist, influence, maxForce)
			p.Pos.X += d.X / dist * force
			p.Pos.Y += d.Y / dist * force
		}
	}

	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y
}

// repulsion is the push magnitude at distance dist from the pointer.
func repulsion(dist, influence, maxForce float64) float64 {
	if dist >= influence {
		return 0
	}
	return (influence - dist) / influence * maxForce
}
