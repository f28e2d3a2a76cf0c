package physics

import "gonum.org/v1/gonum/spatial/r2"

// PositionAtFrame returns the particle position at the given frame. The particle
// travels along y = 0, so any frame can be reproduced without replaying the ones
// before it.
func PositionAtFrame(frame int) r2.Vec {
	return r2.Vec{X: mulRounded(float64(frame), ParticleStepX) + ParticleStartX}
}

// Trail keeps the most recent particle positions, oldest first.
type Trail struct {
	points   []r2.Vec
	capacity int
}

func NewTrail(capacity int) *Trail {
	return &Trail{
		points:   make([]r2.Vec, 0, capacity+1),
		capacity: capacity,
	}
}

// Push appends p and evicts from the front once the capacity is exceeded.
func (t *Trail) Push(p r2.Vec) {
	t.points = append(t.points, p)
	if over := len(t.points) - t.capacity; over > 0 {
		t.points = append(t.points[:0], t.points[over:]...)
	}
}

func (t *Trail) Len() int { return len(t.points) }

// Points returns a copy of the trail, oldest first.
func (t *Trail) Points() []r2.Vec {
	out := make([]r2.Vec, len(t.points))
	copy(out, t.points)
	return out
}

// Reset empties the trail.
func (t *Trail) Reset() {
	t.points = t.points[:0]
}

// mulRounded returns a*b rounded to float64. The explicit conversion keeps the
// compiler from fusing the product into a following add, so results match on
// every architecture.
func mulRounded(a, b float64) float64 {
	return float64(a * b)
}
