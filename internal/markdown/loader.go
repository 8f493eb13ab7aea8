package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Loader reads Markdown documents from a filesystem.
type Loader struct {
	fs      fs.FS
	locales []string
}

// NewLoader constructs a Loader. When a document has no language in its
// frontmatter, a leading directory named after one of locales is used.
func NewLoader(filesystem fs.FS, locales ...string) *Loader {
	return &Loader{
		fs:      filesystem,
		locales: append([]string(nil), locales...),
	}
}

// LoadDirectory parses every *.md file under dir, sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*Document, error) {
	root := path.Clean(strings.TrimPrefix(dir, "./"))
	if root == "" {
		root = "."
	}

	var docs []*Document
	err := fs.WalkDir(l.fs, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(path.Ext(current), ".md") {
			return nil
		}
		data, err := fs.ReadFile(l.fs, current)
		if err != nil {
			return fmt.Errorf("markdown loader read %s: %w", current, err)
		}
		doc, err := BuildDocument(current, data)
		if err != nil {
			return err
		}
		if doc.FrontMatter.Language == "" {
			doc.FrontMatter.Language = l.localeFromPath(root, current)
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Path < docs[j].Path
	})
	return docs, nil
}

func (l *Loader) localeFromPath(root, current string) string {
	rel := strings.TrimPrefix(current, root+"/")
	first, _, found := strings.Cut(rel, "/")
	if !found {
		return ""
	}
	for _, locale := range l.locales {
		if strings.EqualFold(first, locale) {
			return locale
		}
	}
	return ""
}
