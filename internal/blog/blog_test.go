package blog

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"golang.org/x/text/language"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDefaultCollection(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	p, ok := c.GetPostBySlug("fundamentos-arquitectura-software")
	if !ok {
		t.Fatal("expected embedded post")
	}
	if !p.Date.Equal(date("2025-01-27")) {
		t.Errorf("date = %v", p.Date)
	}
	if len(p.Tags) != 3 || p.ReadTime != "8 min" {
		t.Errorf("front matter not loaded: %+v", p)
	}
	if !strings.HasPrefix(p.Content, "## ") {
		t.Errorf("content should start with a heading, got %.30q", p.Content)
	}
	if _, ok := c.GetPostBySlug("does-not-exist"); ok {
		t.Error("expected not found")
	}
}

func TestGetAllPosts(t *testing.T) {
	c := NewCollection(
		Post{ID: "old", Date: date("2024-06-01")},
		Post{ID: "new", Date: date("2025-01-27")},
		Post{ID: "tie-a", Date: date("2024-09-10")},
		Post{ID: "tie-b", Date: date("2024-09-10")},
	)

	var ids []string
	for _, p := range c.GetAllPosts() {
		ids = append(ids, p.ID)
	}
	want := []string{"new", "tie-a", "tie-b", "old"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}

	// The collection keeps its authoring order.
	if first := c.posts[0].ID; first != "old" {
		t.Errorf("collection mutated, first = %q", first)
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"b.md": {Data: []byte("---\ntitle: Diseño Limpio\ndate: \"2024-06-01\"\n---\nBody\n")},
		"a.md": {Data: []byte("---\nid: hello\ntitle: Hello\ndate: \"2025-01-27\"\ntags: [go]\n---\n## Hi\n")},
	}
	c, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d", c.Len())
	}
	if _, ok := c.GetPostBySlug("diseno-limpio"); !ok {
		t.Error("expected id derived from title")
	}
	if p, _ := c.GetPostBySlug("hello"); p.Content != "## Hi" {
		t.Errorf("content = %q", p.Content)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"duplicate id": {
			"a.md": {Data: []byte("---\nid: same\ntitle: A\ndate: \"2025-01-01\"\n---\n")},
			"b.md": {Data: []byte("---\nid: same\ntitle: B\ndate: \"2025-01-02\"\n---\n")},
		},
		"bad id": {
			"a.md": {Data: []byte("---\nid: Not A Slug\ntitle: A\ndate: \"2025-01-01\"\n---\n")},
		},
		"bad date": {
			"a.md": {Data: []byte("---\ntitle: A\ndate: yesterday\n---\n")},
		},
		"missing title": {
			"a.md": {Data: []byte("---\ndate: \"2025-01-01\"\n---\n")},
		},
	}
	for name, fsys := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(fsys); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRender(t *testing.T) {
	in := "## Title\n- **Bold** item\n- plain item\n\nParagraph with **bold** and `code`."
	want := []Block{
		{Kind: BlockHeading, Level: 2, Text: "Title"},
		{Kind: BlockList, Items: [][]Span{
			{{Kind: SpanEmphasis, Text: "Bold"}, {Kind: SpanText, Text: " item"}},
			{{Kind: SpanText, Text: "plain item"}},
		}},
		{Kind: BlockParagraph, Spans: []Span{
			{Kind: SpanText, Text: "Paragraph with "},
			{Kind: SpanEmphasis, Text: "bold"},
			{Kind: SpanText, Text: " and "},
			{Kind: SpanCode, Text: "code"},
			{Kind: SpanText, Text: "."},
		}},
	}
	got := Render(in)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Render:\n got %+v\nwant %+v", got, want)
	}
	if !reflect.DeepEqual(Render(in), got) {
		t.Error("Render is not deterministic")
	}
}

func TestRenderRules(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Block
	}{
		{
			name: "level three heading",
			in:   "### Sub",
			want: []Block{{Kind: BlockHeading, Level: 3, Text: "Sub"}},
		},
		{
			name: "quote drops double quotes",
			in:   `> "Use it when it solves a problem."`,
			want: []Block{{Kind: BlockQuote, Text: "Use it when it solves a problem."}},
		},
		{
			name: "ordered point keeps body raw",
			in:   "12. Conocer **todo**",
			want: []Block{{Kind: BlockPoint, Label: "12", Text: "Conocer **todo**"}},
		},
		{
			name: "plain list item is raw",
			in:   "- uses `code` and *stars*",
			want: []Block{{Kind: BlockList, Items: [][]Span{{{Kind: SpanText, Text: "uses `code` and *stars*"}}}}},
		},
		{
			name: "heading flushes list",
			in:   "- a\n- b\n## H\n- c",
			want: []Block{
				{Kind: BlockList, Items: [][]Span{{{Kind: SpanText, Text: "a"}}, {{Kind: SpanText, Text: "b"}}}},
				{Kind: BlockHeading, Level: 2, Text: "H"},
				{Kind: BlockList, Items: [][]Span{{{Kind: SpanText, Text: "c"}}}},
			},
		},
		{
			name: "blank line splits lists",
			in:   "- a\n\n- b",
			want: []Block{
				{Kind: BlockList, Items: [][]Span{{{Kind: SpanText, Text: "a"}}}},
				{Kind: BlockList, Items: [][]Span{{{Kind: SpanText, Text: "b"}}}},
			},
		},
		{
			name: "indented lines are trimmed",
			in:   "   ## Indented  \n   text  ",
			want: []Block{
				{Kind: BlockHeading, Level: 2, Text: "Indented"},
				{Kind: BlockParagraph, Spans: []Span{{Kind: SpanText, Text: "text"}}},
			},
		},
		{
			name: "number without space is a paragraph",
			in:   "2.5 million",
			want: []Block{{Kind: BlockParagraph, Spans: []Span{{Kind: SpanText, Text: "2.5 million"}}}},
		},
		{
			name: "code inside emphasis",
			in:   "Pass **the `x` flag** here",
			want: []Block{{Kind: BlockParagraph, Spans: []Span{
				{Kind: SpanText, Text: "Pass "},
				{Kind: SpanEmphasis, Text: "the x flag", Inner: []Span{
					{Kind: SpanText, Text: "the "},
					{Kind: SpanCode, Text: "x"},
					{Kind: SpanText, Text: " flag"},
				}},
				{Kind: SpanText, Text: " here"},
			}}},
		},
		{
			name: "empty input",
			in:   "\n\n",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v\nwant %+v", got, tt.want)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	p := Post{
		Title:   "Hola",
		Content: "## Intro\n\nTexto con **negrita** y `code`.\n- item uno\n> cita\n",
	}
	want := "Hola. Intro. Texto con negrita y code.. item uno. cita."
	if got := PlainText(p); got != want {
		t.Errorf("PlainText = %q, want %q", got, want)
	}
}

type fakeEngine struct {
	voices []Voice
	calls  []string
	last   Utterance
	done   func(error)
	// onResume runs inside Resume, like an engine finishing as it resumes.
	onResume func()
}

func (e *fakeEngine) Voices() []Voice { return e.voices }
func (e *fakeEngine) Speak(u Utterance, done func(error)) {
	e.calls = append(e.calls, "speak")
	e.last = u
	e.done = done
}
func (e *fakeEngine) Pause() { e.calls = append(e.calls, "pause") }
func (e *fakeEngine) Resume() {
	e.calls = append(e.calls, "resume")
	if e.onResume != nil {
		e.onResume()
	}
}
func (e *fakeEngine) Cancel() { e.calls = append(e.calls, "cancel") }

func TestSpeechSequence(t *testing.T) {
	eng := &fakeEngine{}
	p := NewSpeechPlayer(eng, Post{Title: "T", Content: "body"}, language.EuropeanSpanish)

	var seen []SpeechState
	p.OnChange(func(s SpeechState) { seen = append(seen, s) })

	p.Activate()
	p.Activate()
	p.Activate()
	p.Stop()

	want := []SpeechState{SpeechPlaying, SpeechPaused, SpeechPlaying, SpeechIdle}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("states = %v, want %v", seen, want)
	}
	if !reflect.DeepEqual(eng.calls, []string{"speak", "pause", "resume", "cancel"}) {
		t.Errorf("engine calls = %v", eng.calls)
	}
	if eng.last.Text != "T. body" || eng.last.Rate != 0.9 {
		t.Errorf("utterance = %+v", eng.last)
	}
}

func TestSpeechCompletion(t *testing.T) {
	for _, err := range []error{nil, errors.New("synthesis failed")} {
		eng := &fakeEngine{}
		p := NewSpeechPlayer(eng, Post{Title: "T"}, language.EuropeanSpanish)
		p.Activate()
		eng.done(err)
		if p.State() != SpeechIdle {
			t.Errorf("after done(%v) state = %v, want idle", err, p.State())
		}
	}
}

func TestSpeechCompletionDuringResume(t *testing.T) {
	eng := &fakeEngine{}
	p := NewSpeechPlayer(eng, Post{Title: "T"}, language.EuropeanSpanish)

	var seen []SpeechState
	p.OnChange(func(s SpeechState) { seen = append(seen, s) })

	p.Activate()
	p.Activate()
	eng.onResume = func() { eng.done(nil) }
	if got := p.Activate(); got != SpeechIdle {
		t.Errorf("Activate = %v, want idle", got)
	}

	want := []SpeechState{SpeechPlaying, SpeechPaused, SpeechPlaying, SpeechIdle}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("states = %v, want %v", seen, want)
	}
	if p.State() != SpeechIdle {
		t.Errorf("state = %v, want idle", p.State())
	}
}

func TestSpeechObserverReentry(t *testing.T) {
	eng := &fakeEngine{}
	p := NewSpeechPlayer(eng, Post{Title: "T"}, language.EuropeanSpanish)

	var seen []SpeechState
	p.OnChange(func(s SpeechState) {
		seen = append(seen, s)
		if s == SpeechPlaying && len(seen) == 1 {
			p.Stop()
		}
	})
	p.Activate()

	want := []SpeechState{SpeechPlaying, SpeechIdle}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("states = %v, want %v", seen, want)
	}
}

func TestSpeechStaleCompletionIgnored(t *testing.T) {
	eng := &fakeEngine{}
	p := NewSpeechPlayer(eng, Post{Title: "T"}, language.EuropeanSpanish)

	p.Activate()
	stale := eng.done
	p.Stop()
	p.Activate()
	stale(nil)

	if p.State() != SpeechPlaying {
		t.Errorf("stale completion changed state to %v", p.State())
	}
}

func TestSpeechStopFromIdleAndClose(t *testing.T) {
	eng := &fakeEngine{}
	p := NewSpeechPlayer(eng, Post{Title: "T"}, language.EuropeanSpanish)

	changes := 0
	p.OnChange(func(SpeechState) { changes++ })
	p.Stop()
	if p.State() != SpeechIdle || changes != 0 {
		t.Errorf("stop from idle: state=%v changes=%d", p.State(), changes)
	}

	p.Activate()
	p.Activate()
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if p.State() != SpeechIdle {
		t.Errorf("Close left state %v", p.State())
	}
}

func TestMatchVoice(t *testing.T) {
	voices := []Voice{
		{Name: "Samantha", Lang: language.AmericanEnglish},
		{Name: "Paulina", Lang: language.MustParse("es-MX")},
	}
	if v := MatchVoice(voices, language.EuropeanSpanish); v == nil || v.Name != "Paulina" {
		t.Errorf("es-ES matched %+v", v)
	}
	if v := MatchVoice(voices, language.AmericanEnglish); v == nil || v.Name != "Samantha" {
		t.Errorf("en-US matched %+v", v)
	}
	if v := MatchVoice(voices[:1], language.EuropeanSpanish); v != nil {
		t.Errorf("expected no voice, got %+v", v)
	}
	if v := MatchVoice(nil, language.EuropeanSpanish); v != nil {
		t.Errorf("expected no voice, got %+v", v)
	}
}

func TestTranscriptEngine(t *testing.T) {
	var buf bytes.Buffer
	eng := &TranscriptEngine{W: &buf}
	p := NewSpeechPlayer(eng, Post{Title: "Hi", Content: "- there"}, language.AmericanEnglish)
	if got := p.Activate(); got != SpeechIdle {
		t.Errorf("state after synchronous engine = %v", got)
	}
	if !strings.Contains(buf.String(), "Hi. there") {
		t.Errorf("transcript = %q", buf.String())
	}
}

func TestFeed(t *testing.T) {
	c := NewCollection(
		Post{ID: "old", Title: "Old", Date: date("2024-06-01"), Content: "plain"},
		Post{ID: "new", Title: "New & shiny", Date: date("2025-01-27"), Content: "## Head\n\n**b**", Tags: []string{"go"}},
	)
	out, err := Feed(c, FeedInfo{Title: "Blog", BaseURL: "https://example.com/", Language: "es"})
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		`<rss version="2.0"`,
		"<link>https://example.com/blog/new</link>",
		"New &amp; shiny",
		"<category>go</category>",
		"<![CDATA[<h2>Head</h2>",
		"<strong>b</strong>",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("feed missing %q:\n%s", want, s)
		}
	}
	if strings.Index(s, "/blog/new") > strings.Index(s, "/blog/old") {
		t.Error("newest post should come first")
	}
}

func TestShare(t *testing.T) {
	links := Share("https://consultorvarela.com", Post{ID: "a-b", Title: "A B"})
	if links.LinkedIn != "https://www.linkedin.com/sharing/share-offsite/?url=https%3A%2F%2Fconsultorvarela.com%2Fblog%2Fa-b" {
		t.Errorf("LinkedIn = %s", links.LinkedIn)
	}
	if !strings.HasSuffix(links.Twitter, "&text=A+B") {
		t.Errorf("Twitter = %s", links.Twitter)
	}
}
