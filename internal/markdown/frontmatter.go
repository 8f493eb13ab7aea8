package markdown

import (
	"bytes"
	"fmt"
	"maps"
	"strings"

	"github.com/adrg/frontmatter"
)

// FrontMatter holds the metadata block of an advisory document.
type FrontMatter struct {
	TopicKey string         `yaml:"topic_key"`
	Language string         `yaml:"language"`
	Title    string         `yaml:"title"`
	Category string         `yaml:"category"`
	Image    string         `yaml:"image"`
	Custom   map[string]any `yaml:",inline"`
}

// Document is a parsed Markdown file.
type Document struct {
	Path        string
	FrontMatter FrontMatter
	Body        []byte
}

// ParseFrontMatter splits source into metadata and the Markdown body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	meta.TopicKey = strings.TrimSpace(meta.TopicKey)
	meta.Language = strings.TrimSpace(meta.Language)
	meta.Title = strings.TrimSpace(meta.Title)
	meta.Category = strings.TrimSpace(meta.Category)
	meta.Image = strings.TrimSpace(meta.Image)
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	} else {
		meta.Custom = maps.Clone(meta.Custom)
	}
	return meta, bytes.TrimSpace(body), nil
}

// BuildDocument parses source read from path.
func BuildDocument(path string, source []byte) (*Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Document{
		Path:        path,
		FrontMatter: meta,
		Body:        body,
	}, nil
}
