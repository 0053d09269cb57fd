package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v3"
)

// Post is one blog article in one locale.
type Post struct {
	Slug           string
	Lang           string
	Path           string
	Title          string
	Description    string
	Author         string
	Image          string
	Tags           []string
	PublishedAt    time.Time
	UpdatedAt      time.Time
	ReadingMinutes int
	HTML           template.HTML
}

type postFrontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Author      string   `yaml:"author"`
	Image       string   `yaml:"image"`
	Tags        []string `yaml:"tags"`
	Date        string   `yaml:"date"`
	Updated     string   `yaml:"updated"`
}

const (
	excerptLength  = 160
	wordsPerMinute = 200
	defaultAuthor  = "ZeroToVPN"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithUnsafe(),
	),
)

// sanitizer strips anything the authored markdown should not carry through.
// UGC policy adds rel="nofollow" to outbound links, which affiliate links need.
var sanitizer = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h2", "h3", "h4")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}()

// RenderMarkdown converts markdown to sanitized HTML.
func RenderMarkdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil
}

func (s *Store) loadPosts(fsys fs.FS) error {
	files, err := fs.Glob(fsys, "blog/*/*.md")
	if err != nil {
		return fmt.Errorf("content: glob blog: %w", err)
	}
	sort.Strings(files)
	for _, file := range files {
		lang := path.Base(path.Dir(file))
		slug := strings.TrimSuffix(path.Base(file), ".md")
		if sanitizeSlug(slug) != slug {
			return fmt.Errorf("content: %s: invalid slug %q", file, slug)
		}
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("content: read %s: %w", file, err)
		}
		post, err := parsePost(slug, lang, string(raw))
		if err != nil {
			return fmt.Errorf("content: %s: %w", file, err)
		}
		if s.posts[slug] == nil {
			s.posts[slug] = Localized[Post]{}
		}
		s.posts[slug][lang] = post
	}
	for slug, set := range s.posts {
		if err := set.Validate(); err != nil {
			return fmt.Errorf("content: blog %s: %w", slug, err)
		}
	}
	return nil
}

func parsePost(slug, lang, raw string) (Post, error) {
	fm, body := splitFrontMatter(raw)
	front := postFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Post{}, fmt.Errorf("parse front matter: %w", err)
		}
	}
	rendered, err := RenderMarkdown(body)
	if err != nil {
		return Post{}, fmt.Errorf("render markdown: %w", err)
	}
	text := textOf(string(rendered))
	post := Post{
		Slug:           slug,
		Lang:           lang,
		Path:           "/blog/" + slug,
		Title:          firstNonEmpty(strings.TrimSpace(front.Title), prettifySlug(slug)),
		Description:    strings.TrimSpace(front.Description),
		Author:         firstNonEmpty(strings.TrimSpace(front.Author), defaultAuthor),
		Image:          strings.TrimSpace(front.Image),
		Tags:           front.Tags,
		PublishedAt:    parseContentDate(front.Date),
		UpdatedAt:      parseContentDate(front.Updated),
		ReadingMinutes: readingMinutes(text),
		HTML:           rendered,
	}
	if post.Description == "" {
		post.Description = Excerpt(string(rendered))
	}
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = post.PublishedAt
	}
	return post, nil
}

// Post returns slug in locale, or its English version when locale has none.
// Lang on the result is the locale actually served.
func (s *Store) Post(slug, locale string) (Post, bool) {
	set, ok := s.posts[slug]
	if !ok {
		return Post{}, false
	}
	return clonePost(set.Resolve(locale)), true
}

// PostLocales lists the locales slug is translated into.
func (s *Store) PostLocales(slug string) []string {
	return s.posts[slug].Locales()
}

// Posts lists every post once, resolved for locale, newest first.
func (s *Store) Posts(locale string) []Post {
	out := make([]Post, 0, len(s.posts))
	for _, set := range s.posts {
		out = append(out, clonePost(set.Resolve(locale)))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.PublishedAt.Equal(b.PublishedAt) {
			return a.PublishedAt.After(b.PublishedAt)
		}
		return a.Slug < b.Slug
	})
	return out
}

func clonePost(p Post) Post {
	cp := p
	if p.Tags != nil {
		cp.Tags = append([]string(nil), p.Tags...)
	}
	return cp
}

// Excerpt returns the text of the first paragraph of an HTML fragment,
// shortened on a word boundary.
func Excerpt(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	var first *html.Node
	var find func(n *html.Node)
	find = func(n *html.Node) {
		if first != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.P {
			first = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)
	if first == nil {
		return ""
	}
	return truncateWords(collapseSpace(nodeText(first)), excerptLength)
}

func textOf(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return nodeText(doc)
}

// nodeText concatenates the text under n, separating block elements with a
// space so words from adjacent paragraphs do not run together.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.DataAtom] {
			b.WriteByte(' ')
		}
	}
	walk(n)
	return b.String()
}

var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Li: true, atom.Br: true, atom.Div: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.Td: true, atom.Th: true, atom.Blockquote: true, atom.Pre: true,
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateWords(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:limit])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

func readingMinutes(text string) int {
	words := len(strings.Fields(text))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
