package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/consultorvarela/portfolio/internal/blog"
	"github.com/consultorvarela/portfolio/internal/prefs"
)

var (
	renderFormat string
	renderLang   string
)

var renderCmd = &cobra.Command{
	Use:   "render <slug>",
	Short: "Render a post to the terminal",
	Long: `Renders a post as display blocks (default), as the plain text read
aloud (--format plain), as the read-aloud session transcript
(--format speech) or as HTML (--format html).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		posts, err := blog.Default()
		if err != nil {
			return err
		}
		post, ok := posts.GetPostBySlug(args[0])
		if !ok {
			return fmt.Errorf("post %q not found", args[0])
		}

		out := cmd.OutOrStdout()
		switch renderFormat {
		case "blocks":
			writeBlocks(out, post)
		case "plain":
			fmt.Fprintln(out, blog.PlainText(post))
		case "speech":
			storage := prefs.NewMemoryStorage()
			storage.Set(prefs.LanguageKey, renderLang)
			store := prefs.New(storage)
			if string(store.Language()) != renderLang {
				return fmt.Errorf("unknown language %q", renderLang)
			}
			return speak(out, cmd.ErrOrStderr(), post, store.Locale())
		case "html":
			html, err := blog.HTML(post)
			if err != nil {
				return err
			}
			fmt.Fprint(out, html)
		default:
			return fmt.Errorf("unknown format %q", renderFormat)
		}
		return nil
	},
}

func writeBlocks(w io.Writer, p blog.Post) {
	fmt.Fprintf(w, "%s\n%s · %s\n\n", cases.Upper(language.Und).String(p.Title), p.DisplayDate(), p.ReadTime)
	for _, b := range blog.Render(p.Content) {
		switch b.Kind {
		case blog.BlockHeading:
			fmt.Fprintf(w, "%s %s\n\n", strings.Repeat("#", b.Level), b.Text)
		case blog.BlockQuote:
			fmt.Fprintf(w, "  │ %s\n\n", b.Text)
		case blog.BlockList:
			for _, item := range b.Items {
				fmt.Fprintf(w, "  • %s\n", spans(item))
			}
			fmt.Fprintln(w)
		case blog.BlockPoint:
			fmt.Fprintf(w, "  %s) %s\n\n", b.Label, b.Text)
		case blog.BlockParagraph:
			fmt.Fprintf(w, "%s\n\n", spans(b.Spans))
		}
	}
}

func spans(ss []blog.Span) string {
	var b strings.Builder
	for _, s := range ss {
		switch s.Kind {
		case blog.SpanEmphasis:
			if len(s.Inner) > 0 {
				b.WriteString("*" + spans(s.Inner) + "*")
				continue
			}
			b.WriteString("*" + s.Text + "*")
		case blog.SpanCode:
			b.WriteString("`" + s.Text + "`")
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// speak runs a read-aloud session against the transcript engine and reports
// the player states on status.
func speak(out, status io.Writer, p blog.Post, locale language.Tag) error {
	engine := &blog.TranscriptEngine{W: out}
	player := blog.NewSpeechPlayer(engine, p, locale)
	player.OnChange(func(s blog.SpeechState) {
		fmt.Fprintf(status, "speech: %s\n", s)
	})
	player.Activate()
	return player.Close()
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "blocks", "output format: blocks, plain, speech or html")
	renderCmd.Flags().StringVar(&renderLang, "lang", string(prefs.DefaultLanguage), "speech language: es or en")
	rootCmd.AddCommand(renderCmd)
}
