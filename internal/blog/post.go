// Package blog holds the compiled-in blog posts and everything derived from
// them: block rendering, speech playback and the RSS feed.
package blog

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/gosimple/slug"
)

// DateLayout is the format of post dates in front matter.
const DateLayout = "2006-01-02"

//go:embed content/posts/*.md
var content embed.FS

// Post is a single blog article. Content is lite-markdown.
type Post struct {
	ID       string
	Title    string
	Excerpt  string
	Date     time.Time
	ReadTime string
	Tags     []string
	Image    string
	Content  string
}

// DisplayDate formats the post date for listings.
func (p Post) DisplayDate() string {
	return p.Date.Format(DateLayout)
}

type frontMatter struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Excerpt  string   `yaml:"excerpt"`
	Date     string   `yaml:"date"`
	ReadTime string   `yaml:"readTime"`
	Tags     []string `yaml:"tags"`
	Image    string   `yaml:"image"`
}

// Collection is an immutable set of posts in authoring order.
type Collection struct {
	posts []Post
}

// NewCollection wraps posts as given.
func NewCollection(posts ...Post) *Collection {
	return &Collection{posts: slices.Clone(posts)}
}

// Default loads the posts compiled into the binary.
func Default() (*Collection, error) {
	sub, err := fs.Sub(content, "content/posts")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load parses every .md file at the root of fsys, in file name order.
func Load(fsys fs.FS) (*Collection, error) {
	names, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, err
	}
	slices.Sort(names)

	seen := make(map[string]string, len(names))
	posts := make([]Post, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading post %s: %w", name, err)
		}
		p, err := parsePost(data)
		if err != nil {
			return nil, fmt.Errorf("parsing post %s: %w", name, err)
		}
		if other, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("post %s: id %q already used by %s", name, p.ID, other)
		}
		seen[p.ID] = name
		posts = append(posts, p)
	}
	return &Collection{posts: posts}, nil
}

func parsePost(data []byte) (Post, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return Post{}, err
	}
	if strings.TrimSpace(fm.Title) == "" {
		return Post{}, fmt.Errorf("missing title")
	}

	id := fm.ID
	if id == "" {
		id = slug.Make(fm.Title)
	}
	if !slug.IsSlug(id) {
		return Post{}, fmt.Errorf("invalid id %q", id)
	}

	date, err := time.Parse(DateLayout, strings.TrimSpace(fm.Date))
	if err != nil {
		return Post{}, fmt.Errorf("invalid date %q: %w", fm.Date, err)
	}

	return Post{
		ID:       id,
		Title:    fm.Title,
		Excerpt:  fm.Excerpt,
		Date:     date,
		ReadTime: fm.ReadTime,
		Tags:     fm.Tags,
		Image:    fm.Image,
		Content:  strings.TrimSpace(string(body)),
	}, nil
}

// Len returns the number of posts.
func (c *Collection) Len() int { return len(c.posts) }

// GetPostBySlug finds the post whose ID equals slug. The boolean is false
// when there is no such post.
func (c *Collection) GetPostBySlug(slug string) (Post, bool) {
	for _, p := range c.posts {
		if p.ID == slug {
			return p, true
		}
	}
	return Post{}, false
}

// GetAllPosts returns the posts newest first. Posts sharing a date keep
// their authoring order. The collection itself is not reordered.
func (c *Collection) GetAllPosts() []Post {
	out := slices.Clone(c.posts)
	slices.SortStableFunc(out, func(a, b Post) int {
		return b.Date.Compare(a.Date)
	})
	return out
}
