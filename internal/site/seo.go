package site

import (
	"strings"

	"github.com/consultorvarela/portfolio/internal/blog"
	"github.com/consultorvarela/portfolio/internal/portfolio"
	"github.com/consultorvarela/portfolio/internal/prefs"
)

const (
	defaultImage = "/static/og-image.jpg"
	themeColor   = "#10b981"
	keywords     = "desarrollador fullstack, react developer, python developer, nodejs, aws, desarrollador web, programador honduras, fullstack engineer, web development"
)

// SEO is the per page metadata rendered into the document head.
type SEO struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	Image       string
	Type        string // website or article
	Published   string
	Tags        []string
	ThemeColor  string
}

func (s *Server) absolute(path string) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + path
}

func (s *Server) homeSEO(lang prefs.Language) SEO {
	return SEO{
		Title:       portfolio.Owner.Name + " - " + prefs.Text(lang, "hero.title") + " | React, Python, Node.js",
		Description: prefs.Text(lang, "hero.descriptionFull"),
		Keywords:    keywords,
		Canonical:   s.absolute("/"),
		Image:       s.absolute(defaultImage),
		Type:        "website",
		ThemeColor:  themeColor,
	}
}

func (s *Server) blogSEO(lang prefs.Language) SEO {
	return SEO{
		Title:       prefs.Text(lang, "blog.title") + " | " + portfolio.Owner.Name,
		Description: prefs.Text(lang, "blog.subtitle"),
		Keywords:    keywords,
		Canonical:   s.absolute("/blog"),
		Image:       s.absolute(defaultImage),
		Type:        "website",
		ThemeColor:  themeColor,
	}
}

func (s *Server) postSEO(p blog.Post) SEO {
	image := defaultImage
	if p.Image != "" {
		image = p.Image
	}
	if strings.HasPrefix(image, "/") {
		image = s.absolute(image)
	}
	return SEO{
		Title:       p.Title + " | " + portfolio.Owner.Name,
		Description: p.Excerpt,
		Keywords:    strings.Join(p.Tags, ", "),
		Canonical:   blog.PostURL(s.cfg.BaseURL, p.ID),
		Image:       image,
		Type:        "article",
		Published:   p.Date.Format(blog.DateLayout),
		Tags:        p.Tags,
		ThemeColor:  themeColor,
	}
}
