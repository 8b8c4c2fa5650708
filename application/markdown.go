package application

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Frontmatter and heading extraction is best-effort: malformed or ambiguous
// frontmatter is treated as "not found" and the title falls through the
// priority chain instead of failing ingestion.
var (
	frontmatterTitleRe = regexp.MustCompile(`(?s)^---\s*\n.*?title:\s*["']?([^"'\n]+)["']?\s*\n.*?---`)
	frontmatterBlockRe = regexp.MustCompile(`(?s)^---\s*\n.*?---\s*\n`)
	h1Re               = regexp.MustCompile(`(?m)^#\s+(.+)$`)
)

var titleCaser = cases.Title(language.English)

// ParsedDocument is the result of parsing a single markdown file.
type ParsedDocument struct {
	Title   string // Extracted document title
	Content string // Body with any leading frontmatter stripped
	Path    string // Canonical URL-style path derived from the file location
}

// ParseMarkdown extracts the title, body, and canonical URL path from a
// markdown file's raw content.
//
// Title priority: a frontmatter `title:` field, then the first level-1
// heading, then the filename with hyphens replaced by spaces, title-cased.
func ParseMarkdown(filePath, content string) ParsedDocument {
	title := extractTitle(content, filePath)

	body := frontmatterBlockRe.ReplaceAllString(content, "")
	body = strings.TrimSpace(body)

	return ParsedDocument{
		Title:   title,
		Content: body,
		Path:    urlPath(filePath),
	}
}

func extractTitle(content, filePath string) string {
	if m := frontmatterTitleRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := h1Re.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	stem := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return titleCaser.String(strings.ReplaceAll(stem, "-", " "))
}

// urlPath converts a filesystem path to the document's canonical URL path by
// joining the components from the distinguished "docs" segment onward, e.g.
// book/docs/module-1/nervous-system.md -> /docs/module-1/nervous-system.
// Files outside a docs directory fall back to /docs/<filename-stem>.
func urlPath(filePath string) string {
	parts := strings.Split(filepath.ToSlash(filePath), "/")
	for i, part := range parts {
		if part == "docs" {
			p := "/" + strings.Join(parts[i:], "/")
			return strings.TrimSuffix(p, ".md")
		}
	}
	stem := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return "/docs/" + stem
}
