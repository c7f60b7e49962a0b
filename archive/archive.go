// Package archive keeps a Markdown copy of every report mail that was sent.
package archive

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"redhour/period"
)

var (
	linkPattern      = regexp.MustCompile(`<a href=["'](.*?)["']>(.*?)</a>`)
	signaturePattern = regexp.MustCompile(`<img[^>]*firma_digital[^>]*>`)
	blankRunPattern  = regexp.MustCompile(`\n\s*\n`)

	tagReplacer = strings.NewReplacer(
		"<h1>", "\n# ", "</h1>", "",
		"<h2>", "\n## ", "</h2>", "",
		"<p>", "", "</p>", "\n",
		"<br>", "  \n",
		"<strong>", "**", "</strong>", "**",
	)
)

// Header is the addressing block written above the body.
type Header struct {
	To      string
	Cc      string
	Subject string
}

// ToMarkdown converts the small HTML subset used by the report body.
func ToMarkdown(body string) string {
	md := tagReplacer.Replace(body)
	md = linkPattern.ReplaceAllString(md, "[$2]($1)")
	md = signaturePattern.ReplaceAllString(md, "")
	md = html.UnescapeString(md)
	md = blankRunPattern.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md)
}

// Path is <dir>/<YYYY>/<MM>_mail_redmine.md.
func Path(dir string, ctx period.Context) string {
	return filepath.Join(dir, ctx.Year, ctx.Month+"_mail_redmine.md")
}

// Render builds the archived document.
func Render(header Header, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Para:** %s\n", header.To)
	fmt.Fprintf(&b, "**CC:** %s\n", header.Cc)
	fmt.Fprintf(&b, "**Asunto:** %s\n\n", header.Subject)
	b.WriteString(ToMarkdown(body))
	return b.String()
}

// Write stores the archive, replacing any previous copy for the same month.
func Write(dir string, ctx period.Context, header Header, body string) (string, error) {
	path := Path(dir, ctx)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create archive directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Render(header, body)), 0o644); err != nil {
		return "", fmt.Errorf("write archive %s: %w", path, err)
	}
	return path, nil
}
