// Package navigator implements in-page section navigation: the animated
// scroll to a section and the scroll-driven "active section" highlight.
//
// Everything here is driven from a single UI loop and is not safe for
// concurrent use.
package navigator

import (
	"math"
	"time"
)

const (
	// HeaderOffset keeps the target section clear of the fixed header.
	HeaderOffset = 80.0
	// ProbeOffset is the distance below the viewport top used to pick the
	// active section.
	ProbeOffset = 100.0

	durationFactor = 0.5
	MaxDuration    = 1500 * time.Millisecond
)

// DefaultSections lists the landing page sections in document order.
var DefaultSections = []string{"home", "about", "skills", "experience", "projects", "contact"}

// Rect is the vertical geometry of an element relative to the viewport top.
type Rect struct {
	Top    float64
	Height float64
}

// Layout resolves section ids to their current geometry.
type Layout interface {
	ElementRect(id string) (Rect, bool)
}

// Viewport is a scrollable Layout.
type Viewport interface {
	Layout
	ScrollY() float64
	ScrollTo(y float64)
}

// FrameID identifies a scheduled frame callback.
type FrameID uint64

// FrameScheduler runs a callback once on the next display refresh, passing a
// monotonic timestamp.
type FrameScheduler interface {
	RequestFrame(fn func(now time.Duration)) FrameID
	CancelFrame(id FrameID)
}

// Ease is the quartic ease-out curve 1-(1-t)^4. t is clamped to [0,1].
func Ease(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return 1 - math.Pow(1-t, 4)
}

// Duration returns the animation length for a scroll distance in pixels:
// half a millisecond per pixel, capped at MaxDuration.
func Duration(distance float64) time.Duration {
	ms := math.Min(math.Abs(distance)*durationFactor, float64(MaxDuration/time.Millisecond))
	return time.Duration(ms * float64(time.Millisecond))
}

// Scroller animates the viewport towards sections. Starting a new scroll
// cancels the one in flight.
type Scroller struct {
	vp      Viewport
	frames  FrameScheduler
	current *animation
}

type animation struct {
	start    float64
	target   float64
	duration time.Duration
	began    time.Duration
	started  bool
	frame    FrameID
}

func NewScroller(vp Viewport, frames FrameScheduler) *Scroller {
	return &Scroller{vp: vp, frames: frames}
}

// ScrollToSection starts an animated scroll to the section with the given
// id. It reports false and does nothing when the section does not exist.
func (s *Scroller) ScrollToSection(id string) bool {
	rect, ok := s.vp.ElementRect(id)
	if !ok {
		return false
	}

	s.Cancel()

	start := s.vp.ScrollY()
	target := rect.Top + start - HeaderOffset
	a := &animation{
		start:    start,
		target:   target,
		duration: Duration(target - start),
	}
	s.current = a
	a.frame = s.frames.RequestFrame(func(now time.Duration) { s.step(a, now) })
	return true
}

// Animating reports whether a scroll animation is in flight.
func (s *Scroller) Animating() bool {
	return s.current != nil
}

// Cancel stops the animation in flight, leaving the viewport where it is.
func (s *Scroller) Cancel() {
	if s.current == nil {
		return
	}
	s.frames.CancelFrame(s.current.frame)
	s.current = nil
}

func (s *Scroller) step(a *animation, now time.Duration) {
	if s.current != a {
		return
	}
	if !a.started {
		a.began = now
		a.started = true
	}

	elapsed := now - a.began
	progress := 1.0
	if a.duration > 0 {
		progress = math.Min(float64(elapsed)/float64(a.duration), 1)
	}

	if progress >= 1 {
		s.vp.ScrollTo(a.target)
		s.current = nil
		return
	}

	s.vp.ScrollTo(a.start + (a.target-a.start)*Ease(progress))
	a.frame = s.frames.RequestFrame(func(now time.Duration) { s.step(a, now) })
}
