package site

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/consultorvarela/portfolio/internal/blog"
	"github.com/consultorvarela/portfolio/internal/prefs"
)

//go:embed templates
var embedded embed.FS

// EmbeddedTemplates returns the templates compiled into the binary.
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// ReloadDelay is how long template changes settle before a reload.
const ReloadDelay = 500 * time.Millisecond

var funcs = template.FuncMap{
	"t":            prefs.Text,
	"renderBlocks": renderBlocks,
	"title":        title,
	"join":         strings.Join,
}

// Templates holds one parsed set per page. Each page file is parsed
// together with everything under partials/ and executed by its file name.
type Templates struct {
	mu    sync.RWMutex
	pages map[string]*template.Template
}

// ParseTemplates parses partials/*.html and pages/*.html from fsys.
func ParseTemplates(fsys fs.FS) (*Templates, error) {
	pages, err := parsePages(fsys)
	if err != nil {
		return nil, err
	}
	return &Templates{pages: pages}, nil
}

func parsePages(fsys fs.FS) (map[string]*template.Template, error) {
	base, err := template.New("").Funcs(funcs).ParseFS(fsys, "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing partials: %w", err)
	}
	names, err := fs.Glob(fsys, "pages/*.html")
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no pages found")
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if t, err = t.ParseFS(fsys, name); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		pages[path.Base(name)] = t
	}
	return pages, nil
}

// Execute renders page into w. Output is buffered so a failing template
// never produces a partial response.
func (t *Templates) Execute(w io.Writer, page string, data any) error {
	t.mu.RLock()
	tmpl, ok := t.pages[page]
	t.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, page, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// Reload replaces the parsed set. On error the previous set stays active.
func (t *Templates) Reload(fsys fs.FS) error {
	pages, err := parsePages(fsys)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.pages = pages
	t.mu.Unlock()
	return nil
}

// Watch reloads the templates from dir whenever a file below it changes.
// Bursts of events are collapsed into one reload after ReloadDelay. It
// returns when ctx is done.
func (t *Templates) Watch(ctx context.Context, dir string, log *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating template watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, dir); err != nil {
		return err
	}
	log.Info("Watching templates", zap.String("dir", dir))

	fsys := os.DirFS(dir)
	var (
		timer  *time.Timer
		reload = make(chan struct{}, 1)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			log.Debug("Template change detected", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := watcher.Add(ev.Name); err != nil {
						log.Warn("Unable to watch new directory", zap.String("dir", ev.Name), zap.Error(err))
					}
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(ReloadDelay, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			if err := t.Reload(fsys); err != nil {
				log.Error("Template reload failed, keeping previous templates", zap.Error(err))
				continue
			}
			log.Info("Templates reloaded")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("Template watcher error", zap.Error(err))
		}
	}
}

func watchTree(w *fsnotify.Watcher, root string) error {
	return fs.WalkDir(os.DirFS(root), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(filepath.Join(root, filepath.FromSlash(p))); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
}

// title upper-cases the first letter of each word. Casers are stateful, so
// one is built per call.
func title(s string) string {
	return cases.Title(language.Und).String(s)
}

// renderBlocks turns rendered post blocks into markup.
func renderBlocks(blocks []blog.Block) template.HTML {
	var b strings.Builder
	esc := template.HTMLEscapeString
	for _, blk := range blocks {
		switch blk.Kind {
		case blog.BlockHeading:
			fmt.Fprintf(&b, "<h%d>%s</h%d>\n", blk.Level, esc(blk.Text), blk.Level)
		case blog.BlockQuote:
			fmt.Fprintf(&b, "<blockquote>%s</blockquote>\n", esc(blk.Text))
		case blog.BlockList:
			b.WriteString("<ul>\n")
			for _, item := range blk.Items {
				b.WriteString("<li>")
				writeSpans(&b, item)
				b.WriteString("</li>\n")
			}
			b.WriteString("</ul>\n")
		case blog.BlockPoint:
			fmt.Fprintf(&b, "<div class=\"point\"><span class=\"point-label\">%s</span><p>%s</p></div>\n",
				esc(blk.Label), esc(blk.Text))
		case blog.BlockParagraph:
			b.WriteString("<p>")
			writeSpans(&b, blk.Spans)
			b.WriteString("</p>\n")
		}
	}
	return template.HTML(b.String())
}

func writeSpans(b *strings.Builder, spans []blog.Span) {
	for _, sp := range spans {
		text := template.HTMLEscapeString(sp.Text)
		switch sp.Kind {
		case blog.SpanEmphasis:
			if len(sp.Inner) > 0 {
				b.WriteString("<strong>")
				writeSpans(b, sp.Inner)
				b.WriteString("</strong>")
				continue
			}
			b.WriteString("<strong>" + text + "</strong>")
		case blog.SpanCode:
			b.WriteString("<code>" + text + "</code>")
		default:
			b.WriteString(text)
		}
	}
}
