package navigator

// ComputeActiveSection returns the id of the section under the probe line,
// ProbeOffset pixels below the viewport top. Sections are scanned in order
// and a later match overrides an earlier one. When nothing matches, previous
// is returned unchanged.
func ComputeActiveSection(layout Layout, ids []string, scrollY float64, previous string) string {
	probe := scrollY + ProbeOffset
	active := previous
	for _, id := range ids {
		r, ok := layout.ElementRect(id)
		if !ok {
			continue
		}
		top := r.Top + scrollY
		if top <= probe && probe < top+r.Height {
			active = id
		}
	}
	return active
}

// Tracker follows the active section while the page scrolls and notifies
// subscribers when it changes.
type Tracker struct {
	layout Layout
	ids    []string
	active string
	subs   []*Subscription
	nextID int
}

// Subscription is a registered Tracker listener.
type Subscription struct {
	t  *Tracker
	id int
	fn func(active string)
}

// NewTracker starts with the first id active.
func NewTracker(layout Layout, ids []string) *Tracker {
	t := &Tracker{layout: layout, ids: append([]string(nil), ids...)}
	if len(ids) > 0 {
		t.active = ids[0]
	}
	return t
}

func (t *Tracker) Active() string { return t.active }

// Sections returns the tracked ids in document order.
func (t *Tracker) Sections() []string {
	return append([]string(nil), t.ids...)
}

// OnScroll recomputes the active section for the new scroll position and
// returns it. Subscribers are called only when it changed.
func (t *Tracker) OnScroll(scrollY float64) string {
	next := ComputeActiveSection(t.layout, t.ids, scrollY, t.active)
	if next == t.active {
		return next
	}
	t.active = next
	for _, s := range append([]*Subscription(nil), t.subs...) {
		s.fn(next)
	}
	return next
}

// Subscribe registers fn for active section changes.
func (t *Tracker) Subscribe(fn func(active string)) *Subscription {
	t.nextID++
	s := &Subscription{t: t, id: t.nextID, fn: fn}
	t.subs = append(t.subs, s)
	return s
}

// Close detaches the listener. Closing twice is a no-op.
func (s *Subscription) Close() {
	if s.t == nil {
		return
	}
	subs := s.t.subs
	for i, other := range subs {
		if other.id == s.id {
			s.t.subs = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	s.t = nil
}
