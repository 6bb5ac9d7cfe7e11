package site

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/consultorvarela/portfolio/internal/blog"
	"github.com/consultorvarela/portfolio/internal/contact"
	"github.com/consultorvarela/portfolio/internal/navigator"
	"github.com/consultorvarela/portfolio/internal/portfolio"
	"github.com/consultorvarela/portfolio/internal/prefs"
)

// withPreferences attaches a cookie backed preference store to every
// request context.
func withPreferences(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := prefs.New(prefs.NewCookieStorage(c.Writer, c.Request, secure))
		c.Request = c.Request.WithContext(prefs.WithStore(c.Request.Context(), store))
		c.Next()
	}
}

func preferences(c *gin.Context) *prefs.Store {
	return prefs.FromContext(c.Request.Context())
}

// view adds the data every layout needs to page specific values.
func (s *Server) view(c *gin.Context, seo SEO, data gin.H) gin.H {
	store := preferences(c)
	if data == nil {
		data = gin.H{}
	}
	data["Lang"] = store.Language()
	data["Theme"] = store.Theme()
	data["Locale"] = store.Locale().String()
	data["SEO"] = seo
	data["Sections"] = navigator.DefaultSections
	data["Nav"] = defaultNav
	data["Owner"] = portfolio.Owner
	data["Year"] = time.Now().Year()
	return data
}

// navSettings drives the in-page scrolling done by site.js.
type navSettings struct {
	HeaderOffset float64
	ProbeOffset  float64
	MaxDuration  int64 // milliseconds
	Sections     string
}

var defaultNav = navSettings{
	HeaderOffset: navigator.HeaderOffset,
	ProbeOffset:  navigator.ProbeOffset,
	MaxDuration:  navigator.MaxDuration.Milliseconds(),
	Sections:     strings.Join(navigator.DefaultSections, " "),
}

func (s *Server) render(c *gin.Context, status int, page string, data any) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(c.Writer, page, data); err != nil {
		s.log.Error("Template execution failed", zap.String("page", page), zap.Error(err))
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func (s *Server) home(c *gin.Context) {
	lang := preferences(c).Language()
	s.render(c, http.StatusOK, "index.html", s.view(c, s.homeSEO(lang), gin.H{
		"SkillGroups":    portfolio.SkillGroups(),
		"Databases":      portfolio.Databases,
		"Tools":          portfolio.Tools,
		"Marquee":        portfolio.Marquee,
		"Experience":     portfolio.Experience,
		"Education":      portfolio.Education,
		"Projects":       portfolio.Projects,
		"Services":       portfolio.Services,
		"Certifications": portfolio.Certifications,
		"Posts":          s.posts.GetAllPosts(),
		"Form":           contactForm{Lang: lang},
	}))
}

func (s *Server) blogIndex(c *gin.Context) {
	lang := preferences(c).Language()
	s.render(c, http.StatusOK, "blog.html", s.view(c, s.blogSEO(lang), gin.H{
		"Posts": s.posts.GetAllPosts(),
	}))
}

func (s *Server) blogPost(c *gin.Context) {
	post, ok := s.posts.GetPostBySlug(c.Param("slug"))
	if !ok {
		c.Redirect(http.StatusFound, "/blog")
		return
	}
	s.render(c, http.StatusOK, "post.html", s.view(c, s.postSEO(post), gin.H{
		"Post":   post,
		"Blocks": blog.Render(post.Content),
		"Share":  blog.Share(s.cfg.BaseURL, post),
	}))
}

// speechScript is what the browser hands to its speech engine.
type speechScript struct {
	Title  string  `json:"title"`
	Text   string  `json:"text"`
	Locale string  `json:"locale"`
	Rate   float64 `json:"rate"`
}

func (s *Server) speech(c *gin.Context) {
	post, ok := s.posts.GetPostBySlug(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, speechScript{
		Title:  post.Title,
		Text:   blog.PlainText(post),
		Locale: preferences(c).Locale().String(),
		Rate:   blog.SpeechRate,
	})
}

func (s *Server) rss(c *gin.Context) {
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", s.feed)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "posts": s.posts.Len()})
}

func (s *Server) stats(c *gin.Context) {
	st, err := s.tracker.Stats(c.Request.Context())
	if err != nil {
		s.log.Error("Unable to compute stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// exportStats serves the stats as a downloadable file.
func (s *Server) exportStats(c *gin.Context) {
	c.Header("Content-Disposition", "attachment; filename=portfolio-stats.json")
	s.stats(c)
	s.log.Info("Stats exported", zap.String("by", s.tracker.HashIP(c.ClientIP())))
}

// cleanup purges visits past the retention window right away.
func (s *Server) cleanup(c *gin.Context) {
	n, err := s.tracker.Cleanup(c.Request.Context())
	if err != nil {
		s.log.Error("Visit cleanup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (s *Server) notFound(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) toggleTheme(c *gin.Context) {
	t := preferences(c).ToggleTheme()
	s.log.Debug("Theme changed", zap.String("theme", string(t)))
	c.Redirect(http.StatusSeeOther, back(c))
}

func (s *Server) toggleLanguage(c *gin.Context) {
	l := preferences(c).ToggleLanguage()
	s.log.Debug("Language changed", zap.String("language", string(l)))
	c.Redirect(http.StatusSeeOther, back(c))
}

// back returns the same-site page the request came from, or "/".
func back(c *gin.Context) string {
	ref, err := url.Parse(c.Request.Referer())
	if err != nil || ref.Host != c.Request.Host || !strings.HasPrefix(ref.Path, "/") {
		return "/"
	}
	return ref.RequestURI()
}

// contactForm is the state of the contact form partial.
type contactForm struct {
	Lang   prefs.Language
	Values contact.Submission
	// Errors maps a form field to its message key.
	Errors map[string]string
	Failed bool
}

func (f contactForm) Error(field string) string {
	if key, ok := f.Errors[field]; ok {
		return prefs.Text(f.Lang, key)
	}
	return ""
}

func (s *Server) submitContact(c *gin.Context) {
	lang := preferences(c).Language()
	sub := contact.Submission{
		Name:        c.PostForm("name"),
		Email:       c.PostForm("email"),
		ProjectType: c.PostForm("projectType"),
		Message:     c.PostForm("message"),
	}

	_, err := s.contact.Submit(c.Request.Context(), sub)
	if err == nil {
		s.render(c, http.StatusOK, "contact-success.html", contactForm{Lang: lang})
		return
	}

	form := contactForm{Lang: lang, Values: sub}
	var invalid contact.ValidationErrors
	if errors.As(err, &invalid) {
		form.Errors = make(map[string]string, len(invalid))
		for _, fe := range invalid {
			form.Errors[fe.Field] = fe.Key
		}
	} else {
		form.Failed = true
	}
	s.render(c, http.StatusOK, "contact-error.html", form)
}
