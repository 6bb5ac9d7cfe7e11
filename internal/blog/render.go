package blog

import (
	"regexp"
	"strings"
)

// BlockKind identifies a display block produced by Render.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockQuote
	BlockList
	BlockPoint
	BlockParagraph
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockQuote:
		return "quote"
	case BlockList:
		return "list"
	case BlockPoint:
		return "point"
	case BlockParagraph:
		return "paragraph"
	}
	return "unknown"
}

// SpanKind identifies an inline run of text.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanEmphasis
	SpanCode
)

// Span is a run of inline text. Inner is set on an emphasis span whose text
// holds code runs; Text is then the emphasis text without code markers.
type Span struct {
	Kind  SpanKind
	Text  string
	Inner []Span
}

// Block is one rendered unit of a post body. Which fields are set depends
// on Kind:
//
//	heading    Level, Text
//	quote      Text
//	list       Items
//	point      Label, Text
//	paragraph  Spans
type Block struct {
	Kind  BlockKind
	Level int
	Text  string
	Label string
	Items [][]Span
	Spans []Span
}

var (
	emphasisRe = regexp.MustCompile(`\*\*(.*?)\*\*`)
	codeRe     = regexp.MustCompile("`(.*?)`")
	pointRe    = regexp.MustCompile(`^(\d+)\.\s`)
)

// Render turns lite-markdown into display blocks. It reads one line at a
// time and keeps a pending list that is flushed by any non-list line, by a
// blank line and at the end of input.
func Render(content string) []Block {
	var (
		blocks  []Block
		pending [][]Span
	)
	flush := func() {
		if len(pending) > 0 {
			blocks = append(blocks, Block{Kind: BlockList, Items: pending})
			pending = nil
		}
	}

	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "## "):
			flush()
			blocks = append(blocks, Block{Kind: BlockHeading, Level: 2, Text: line[3:]})
		case strings.HasPrefix(line, "### "):
			flush()
			blocks = append(blocks, Block{Kind: BlockHeading, Level: 3, Text: line[4:]})
		case strings.HasPrefix(line, "> "):
			flush()
			blocks = append(blocks, Block{Kind: BlockQuote, Text: strings.ReplaceAll(line[2:], `"`, "")})
		case strings.HasPrefix(line, "- **"):
			pending = append(pending, parseEmphasis(line[2:]))
		case strings.HasPrefix(line, "- "):
			pending = append(pending, []Span{{Kind: SpanText, Text: line[2:]}})
		case pointRe.MatchString(line):
			flush()
			m := pointRe.FindStringSubmatch(line)
			blocks = append(blocks, Block{Kind: BlockPoint, Label: m[1], Text: line[len(m[0]):]})
		default:
			flush()
			blocks = append(blocks, Block{Kind: BlockParagraph, Spans: parseInline(line)})
		}
	}
	flush()
	return blocks
}

// parseEmphasis splits s on **bold** runs.
func parseEmphasis(s string) []Span {
	return split(s, emphasisRe, SpanEmphasis)
}

// parseInline splits s on **bold** runs, then splits every run on `code`
// runs. Code inside emphasis ends up in the emphasis span's Inner.
func parseInline(s string) []Span {
	var out []Span
	for _, sp := range parseEmphasis(s) {
		if sp.Kind == SpanText {
			out = append(out, split(sp.Text, codeRe, SpanCode)...)
			continue
		}
		if codeRe.MatchString(sp.Text) {
			sp.Inner = split(sp.Text, codeRe, SpanCode)
			sp.Text = codeRe.ReplaceAllString(sp.Text, "$1")
		}
		out = append(out, sp)
	}
	return out
}

func split(s string, re *regexp.Regexp, kind SpanKind) []Span {
	var out []Span
	last := 0
	for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > last {
			out = append(out, Span{Kind: SpanText, Text: s[last:m[0]]})
		}
		out = append(out, Span{Kind: kind, Text: s[m[2]:m[3]]})
		last = m[1]
	}
	if last < len(s) {
		out = append(out, Span{Kind: SpanText, Text: s[last:]})
	}
	return out
}

var (
	stripHeaderRe = regexp.MustCompile(`#{1,3}\s`)
	stripQuoteRe  = regexp.MustCompile(`>\s`)
	stripBulletRe = regexp.MustCompile(`-\s`)
	newlinesRe    = regexp.MustCompile(`\n+`)
)

// StripMarkup removes lite-markdown markers from content and joins lines
// with sentence pauses, for reading aloud.
func StripMarkup(content string) string {
	s := stripHeaderRe.ReplaceAllString(content, "")
	s = emphasisRe.ReplaceAllString(s, "$1")
	s = codeRe.ReplaceAllString(s, "$1")
	s = stripQuoteRe.ReplaceAllString(s, "")
	s = stripBulletRe.ReplaceAllString(s, "")
	s = newlinesRe.ReplaceAllString(s, ". ")
	return strings.TrimSpace(s)
}

// PlainText is the text read aloud for a post: its title followed by the
// stripped body.
func PlainText(p Post) string {
	return p.Title + ". " + StripMarkup(p.Content)
}
