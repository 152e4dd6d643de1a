// Package article derives display metadata from generated article text.
// It never modifies the text itself.
package article

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Formats detected by Inspect
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// Metadata describes an article.
type Metadata struct {
	Headline  string `json:"headline"`
	WordCount int    `json:"word_count"`
	Format    string `json:"format"`
}

var (
	htmlTag        = regexp.MustCompile(`(?i)<(html|body|article|h[1-6]|p|div)[\s>]`)
	markdownHeader = regexp.MustCompile(`^#{1,6}\s+`)
	headlineLabel  = regexp.MustCompile(`(?i)^(headline|title)\s*:\s*`)
)

// Inspect returns the headline, word count and format of content.
func Inspect(content string) Metadata {
	if htmlTag.MatchString(content) {
		if md, ok := inspectHTML(content); ok {
			return md
		}
	}
	return inspectText(content)
}

func inspectHTML(content string) (Metadata, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return Metadata{}, false
	}

	headline := ""
	for _, selector := range []string{"h1", "head title", "h2"} {
		if t := strings.TrimSpace(doc.Find(selector).First().Text()); t != "" {
			headline = t
			break
		}
	}
	if headline == "" {
		ogTitle, _ := doc.Find("meta[property='og:title']").Attr("content")
		headline = strings.TrimSpace(ogTitle)
	}

	doc.Find("script, style, head").Remove()

	var text strings.Builder
	doc.Find("body").Find("p, h1, h2, h3, h4, h5, h6, li, blockquote").Each(func(_ int, item *goquery.Selection) {
		text.WriteString(strings.TrimSpace(item.Text()))
		text.WriteString("\n")
	})
	body := text.String()
	if strings.TrimSpace(body) == "" {
		body = doc.Text()
	}

	return Metadata{
		Headline:  headline,
		WordCount: countWords(body),
		Format:    FormatHTML,
	}, true
}

func inspectText(content string) Metadata {
	md := Metadata{Format: FormatText}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if markdownHeader.MatchString(line) {
			md.Format = FormatMarkdown
		}
		if md.Headline == "" {
			md.Headline = cleanHeadline(line)
		}
	}

	md.WordCount = countWords(content)
	return md
}

func cleanHeadline(line string) string {
	line = markdownHeader.ReplaceAllString(line, "")
	line = strings.Trim(line, "*_ ")
	line = headlineLabel.ReplaceAllString(line, "")
	return strings.Trim(line, "*_ ")
}

// countWords counts whitespace-separated tokens containing a letter or digit.
func countWords(s string) int {
	n := 0
	for _, f := range strings.Fields(s) {
		if strings.IndexFunc(f, isWordRune) >= 0 {
			n++
		}
	}
	return n
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
