package blog

import (
	"fmt"
	"io"
)

// TranscriptEngine is a SpeechEngine that writes each utterance to W
// instead of producing audio. Speaking completes immediately.
type TranscriptEngine struct {
	W         io.Writer
	Available []Voice
}

func (e *TranscriptEngine) Voices() []Voice { return e.Available }

func (e *TranscriptEngine) Speak(u Utterance, done func(err error)) {
	voice := "default"
	if u.Voice != nil {
		voice = u.Voice.Name
	}
	_, err := fmt.Fprintf(e.W, "[%s voice=%s rate=%.1f]\n%s\n", u.Locale, voice, u.Rate, u.Text)
	done(err)
}

func (e *TranscriptEngine) Pause()  {}
func (e *TranscriptEngine) Resume() {}
func (e *TranscriptEngine) Cancel() {}
