package blog

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// FeedInfo describes the channel of the RSS feed.
type FeedInfo struct {
	Title       string
	Description string
	BaseURL     string
	Language    string
}

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Content string     `xml:"xmlns:content,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        string   `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category"`
	Encoded     cdata    `xml:"content:encoded"`
}

type cdata struct {
	Value string `xml:",cdata"`
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

// HTML renders a post body as standard markdown.
func HTML(p Post) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(p.Content), &buf); err != nil {
		return "", fmt.Errorf("rendering %s: %w", p.ID, err)
	}
	return buf.String(), nil
}

// PostURL is the absolute address of a post.
func PostURL(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + "/blog/" + url.PathEscape(id)
}

// Feed renders the collection as an RSS 2.0 document, newest post first.
func Feed(c *Collection, info FeedInfo) ([]byte, error) {
	posts := c.GetAllPosts()
	ch := rssChannel{
		Title:       info.Title,
		Link:        strings.TrimRight(info.BaseURL, "/") + "/blog",
		Description: info.Description,
		Language:    info.Language,
	}
	if len(posts) > 0 {
		ch.LastBuildDate = posts[0].Date.Format(time.RFC1123Z)
	}
	for _, p := range posts {
		body, err := HTML(p)
		if err != nil {
			return nil, err
		}
		link := PostURL(info.BaseURL, p.ID)
		ch.Items = append(ch.Items, rssItem{
			Title:       p.Title,
			Link:        link,
			GUID:        link,
			PubDate:     p.Date.Format(time.RFC1123Z),
			Description: p.Excerpt,
			Categories:  p.Tags,
			Encoded:     cdata{Value: body},
		})
	}

	out, err := xml.MarshalIndent(rss{
		Version: "2.0",
		Content: "http://purl.org/rss/1.0/modules/content/",
		Channel: ch,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding feed: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// ShareLinks are the social sharing targets of a post.
type ShareLinks struct {
	LinkedIn string
	Twitter  string
}

// Share builds LinkedIn and Twitter share URLs for a post.
func Share(baseURL string, p Post) ShareLinks {
	u := url.QueryEscape(PostURL(baseURL, p.ID))
	return ShareLinks{
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + u,
		Twitter:  "https://twitter.com/intent/tweet?url=" + u + "&text=" + url.QueryEscape(p.Title),
	}
}
