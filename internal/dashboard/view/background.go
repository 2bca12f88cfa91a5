package view

import (
	"math"
	"sync"

	"github.com/weathernow/weathernow/internal/dashboard"
	"github.com/weathernow/weathernow/internal/weather"
)

// ModeSelector derives the background mode from the current weather. The
// mode is recomputed only when the weather reference changes.
type ModeSelector struct {
	mu       sync.Mutex
	last     *dashboard.CurrentWeather
	mode     weather.VisualMode
	computed bool
}

// Mode returns the visual mode for w, or weather.VisualModeDefault for nil.
func (s *ModeSelector) Mode(w *dashboard.CurrentWeather) weather.VisualMode {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.computed && w == s.last {
		return s.mode
	}

	s.last = w
	s.computed = true
	if w == nil {
		s.mode = weather.VisualModeDefault
	} else {
		s.mode = weather.ClassifyDescription(w.Description)
	}
	return s.mode
}

// Particle counts per mode.
const (
	rainParticles = 150
	snowParticles = 100
)

// skylineHeights are building heights in px, one every 5% of the width.
var skylineHeights = []int{120, 180, 90, 160, 140, 100, 190, 130, 110, 170, 95, 150, 125, 185, 105, 145, 115, 165, 135}

// BackgroundData is the view model of the ambient background.
type BackgroundData struct {
	Mode      weather.VisualMode
	Sun       bool
	Clouds    bool
	Rain      bool
	Snow      bool
	Buildings []Building
	Particles []Particle
}

// Building is one skyline block.
type Building struct {
	Height int
	Left   int
}

// Particle is one falling rain drop or snowflake.
type Particle struct {
	Left     float64
	Delay    float64
	Duration float64
	Size     float64
}

// NewBackground lays out the background for mode. Layout is deterministic
// so the same mode always renders the same markup.
func NewBackground(mode weather.VisualMode) BackgroundData {
	b := BackgroundData{
		Mode:   mode,
		Sun:    mode == weather.VisualModeSunny,
		Clouds: mode == weather.VisualModeCloudy || mode == weather.VisualModeDefault,
		Rain:   mode == weather.VisualModeRainy,
		Snow:   mode == weather.VisualModeSnowy,
	}

	for i, h := range skylineHeights {
		b.Buildings = append(b.Buildings, Building{Height: h, Left: 5 * (i + 1)})
	}

	switch {
	case b.Rain:
		b.Particles = particles(rainParticles, 2, 0.5, 0.5, 0)
	case b.Snow:
		b.Particles = particles(snowParticles, 5, 3, 2, 10)
	}
	return b
}

// particles spreads n particles with a low-discrepancy sequence.
func particles(n int, maxDelay, minDuration, durationSpread, minSize float64) []Particle {
	const phi = 0.6180339887498949

	out := make([]Particle, n)
	for i := range out {
		x := frac(float64(i) * phi)
		y := frac(float64(i) * phi * phi)
		p := Particle{
			Left:     round2(x * 100),
			Delay:    round2(y * maxDelay),
			Duration: round2(minDuration + frac(x+y)*durationSpread),
		}
		if minSize > 0 {
			p.Size = round2(minSize + y*10)
		}
		out[i] = p
	}
	return out
}

func frac(v float64) float64 {
	return v - math.Floor(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
