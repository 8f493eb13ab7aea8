// Package markdown renders advisory Markdown to HTML and loads frontmatter
// documents from a filesystem for import.
package markdown
