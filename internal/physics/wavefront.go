package physics

import "gonum.org/v1/gonum/spatial/r2"

// Wavefront is a point source emitted by the particle. Its age is derived from
// the current frame, never stored.
type Wavefront struct {
	Center    r2.Vec
	EmittedAt int
}

// Age returns the number of frames since emission.
func (w Wavefront) Age(frame int) int {
	return frame - w.EmittedAt
}

// WavefrontView is the per-frame state of a wavefront handed to the field and
// to renderers.
type WavefrontView struct {
	Center    r2.Vec
	EmittedAt int
	Age       int
	Radius    float64
	FadeAlpha float64
}

// WavefrontStore owns the active wavefront set.
type WavefrontStore struct {
	mediumLightSpeed float64
	active           []Wavefront
}

func NewWavefrontStore(mediumLightSpeed float64) *WavefrontStore {
	return &WavefrontStore{mediumLightSpeed: mediumLightSpeed}
}

// MaybeEmit adds a wavefront at p on every EmissionPeriod-th frame while the
// particle is inside the emission band. It reports whether one was added.
func (s *WavefrontStore) MaybeEmit(frame int, p r2.Vec) bool {
	if frame%EmissionPeriod != 0 || p.X < EmissionXMin || p.X > EmissionXMax {
		return false
	}
	s.active = append(s.active, Wavefront{Center: p, EmittedAt: frame})
	return true
}

// AgeAndExpire drops every wavefront that has faded out or left ExpiryBounds and
// returns how many were dropped. Decisions are made against a snapshot of the
// set, then the kept subset replaces it, so each wavefront is visited once.
func (s *WavefrontStore) AgeAndExpire(frame int) int {
	snapshot := s.active
	kept := make([]Wavefront, 0, len(snapshot))
	for _, w := range snapshot {
		if s.expired(w, frame) {
			continue
		}
		kept = append(kept, w)
	}
	s.active = kept
	return len(snapshot) - len(kept)
}

func (s *WavefrontStore) expired(w Wavefront, frame int) bool {
	if FadeAlpha(w.Age(frame)) <= FadeThreshold {
		return true
	}
	// Centers never move, so with straight-line motion this only fires for
	// wavefronts emitted outside the bounds.
	return !ExpiryBounds.Contains(w.Center.X, w.Center.Y)
}

// Active returns views of the active wavefronts at frame, in emission order.
func (s *WavefrontStore) Active(frame int) []WavefrontView {
	views := make([]WavefrontView, len(s.active))
	for i, w := range s.active {
		age := w.Age(frame)
		views[i] = WavefrontView{
			Center:    w.Center,
			EmittedAt: w.EmittedAt,
			Age:       age,
			Radius:    Radius(age, s.mediumLightSpeed),
			FadeAlpha: FadeAlpha(age),
		}
	}
	return views
}

func (s *WavefrontStore) Len() int { return len(s.active) }

// Reset drops all wavefronts.
func (s *WavefrontStore) Reset() {
	s.active = nil
}

// Radius is the display radius of a wavefront of the given age.
func Radius(age int, mediumLightSpeed float64) float64 {
	return InitialRadius + mulRounded(mulRounded(float64(age), RadiusGrowthRate), mediumLightSpeed)
}

// FadeAlpha is the display opacity of a wavefront of the given age. It reaches
// FadeThreshold at age 17.
func FadeAlpha(age int) float64 {
	return max(0, InitialFadeAlpha-mulRounded(float64(age), FadePerFrame))
}
