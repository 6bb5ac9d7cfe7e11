package blog

import (
	"slices"
	"sync"

	"golang.org/x/text/language"
)

// SpeechRate is the speaking rate requested for every utterance.
const SpeechRate = 0.9

// SpeechState is the playback state of a SpeechPlayer.
type SpeechState int

const (
	SpeechIdle SpeechState = iota
	SpeechPlaying
	SpeechPaused
)

func (s SpeechState) String() string {
	switch s {
	case SpeechIdle:
		return "idle"
	case SpeechPlaying:
		return "playing"
	case SpeechPaused:
		return "paused"
	}
	return "unknown"
}

// Voice is a voice offered by a speech engine.
type Voice struct {
	Name string
	Lang language.Tag
}

// Utterance is a request to read text aloud.
type Utterance struct {
	Text   string
	Locale language.Tag
	// Voice is nil when no available voice matches Locale.
	Voice *Voice
	Rate  float64
}

// SpeechEngine is a text-to-speech backend. Speak must eventually call done
// exactly once, with a nil error when the utterance finished and non-nil
// when it failed. After Cancel the engine may call done or not.
type SpeechEngine interface {
	Voices() []Voice
	Speak(u Utterance, done func(err error))
	Pause()
	Resume()
	Cancel()
}

// MatchVoice picks the voice best matching locale, or nil when none shares
// its language.
func MatchVoice(voices []Voice, locale language.Tag) *Voice {
	if len(voices) == 0 {
		return nil
	}
	tags := make([]language.Tag, len(voices))
	for i, v := range voices {
		tags[i] = v.Lang
	}
	_, idx, conf := language.NewMatcher(tags).Match(locale)
	if conf == language.No {
		return nil
	}
	v := voices[idx]
	return &v
}

// SpeechPlayer reads a post aloud. Activate cycles through
// idle -> playing -> paused -> playing and Stop returns to idle from
// anywhere. Safe for concurrent use, engines may report completion from
// their own goroutine. Observers see transitions in the order they happened.
type SpeechPlayer struct {
	engine SpeechEngine
	post   Post
	locale language.Tag

	mu        sync.Mutex
	state     SpeechState
	gen       uint64
	observers []func(SpeechState)
	pending   []SpeechState
	notifying bool
}

func NewSpeechPlayer(engine SpeechEngine, post Post, locale language.Tag) *SpeechPlayer {
	return &SpeechPlayer{engine: engine, post: post, locale: locale}
}

func (p *SpeechPlayer) State() SpeechState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// OnChange registers fn to be called after every state transition.
func (p *SpeechPlayer) OnChange(fn func(SpeechState)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, fn)
}

// Utterance builds the request handed to the engine.
func (p *SpeechPlayer) Utterance() Utterance {
	return Utterance{
		Text:   PlainText(p.post),
		Locale: p.locale,
		Voice:  MatchVoice(p.engine.Voices(), p.locale),
		Rate:   SpeechRate,
	}
}

// Activate advances playback and returns the new state.
func (p *SpeechPlayer) Activate() SpeechState {
	p.mu.Lock()
	switch p.state {
	case SpeechIdle:
		p.gen++
		gen := p.gen
		p.set(SpeechPlaying)
		p.mu.Unlock()
		p.notify()
		p.engine.Speak(p.Utterance(), func(error) { p.finished(gen) })
		return p.State()
	case SpeechPlaying:
		p.set(SpeechPaused)
		p.mu.Unlock()
		p.engine.Pause()
		p.notify()
		return SpeechPaused
	default:
		p.set(SpeechPlaying)
		p.mu.Unlock()
		p.engine.Resume()
		p.notify()
		return p.State()
	}
}

// Stop cancels any output and returns to idle.
func (p *SpeechPlayer) Stop() {
	p.mu.Lock()
	p.gen++
	if p.state != SpeechIdle {
		p.set(SpeechIdle)
	}
	p.mu.Unlock()

	p.engine.Cancel()
	p.notify()
}

// Close stops playback. The player can still be reused afterwards.
func (p *SpeechPlayer) Close() error {
	p.Stop()
	return nil
}

// finished handles engine completion. Success and failure both end the
// utterance; reports for an utterance that was stopped are dropped.
func (p *SpeechPlayer) finished(gen uint64) {
	p.mu.Lock()
	if gen != p.gen || p.state == SpeechIdle {
		p.mu.Unlock()
		return
	}
	p.set(SpeechIdle)
	p.mu.Unlock()
	p.notify()
}

// set changes the state and queues the transition. p.mu must be held.
func (p *SpeechPlayer) set(s SpeechState) {
	p.state = s
	p.pending = append(p.pending, s)
}

// notify delivers queued transitions. Only one caller delivers at a time;
// transitions queued meanwhile, including from observers, are picked up by
// that caller before it returns.
func (p *SpeechPlayer) notify() {
	p.mu.Lock()
	if p.notifying {
		p.mu.Unlock()
		return
	}
	p.notifying = true
	for len(p.pending) > 0 {
		batch := p.pending
		p.pending = nil
		obs := slices.Clone(p.observers)
		p.mu.Unlock()
		for _, s := range batch {
			for _, fn := range obs {
				fn(s)
			}
		}
		p.mu.Lock()
	}
	p.notifying = false
	p.mu.Unlock()
}
