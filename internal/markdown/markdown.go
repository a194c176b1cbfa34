// Package markdown converts the restricted markdown subset the chatbot
// emits into sanitized HTML. All input is escaped before any pattern is
// applied, so the substitutions only ever add structural tags around
// already-neutralized text.
package markdown

import (
	"html"
	"regexp"
	"strings"
)

var (
	boldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.+?)\*`)
	linkRe   = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)

	h3Re   = regexp.MustCompile(`^###\s+(.+)$`)
	h2Re   = regexp.MustCompile(`^##\s+(.+)$`)
	listRe = regexp.MustCompile(`^(?:[-*]\s+|\d+\.\s+)(.+)$`)

	paragraphSplitRe = regexp.MustCompile(`\n{2,}`)
)

// Escape is the plain path used for user-authored text: neutralize
// markup, interpret nothing.
func Escape(text string) string {
	return html.EscapeString(text)
}

// Render converts bot text to sanitized HTML. Transformations run in a
// fixed order: escape, bold, italic, links (http/https only), headings,
// list items, paragraph/line breaks.
func Render(text string) string {
	if text == "" {
		return ""
	}

	s := html.EscapeString(text)
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	s = linkRe.ReplaceAllStringFunc(s, renderLink)

	blocks := paragraphSplitRe.Split(s, -1)
	rendered := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if b := renderBlock(block); b != "" {
			rendered = append(rendered, b)
		}
	}

	return strings.Join(rendered, "")
}

// renderLink emits an anchor only for http(s) URLs. Any other scheme
// (javascript:, data:, ...) is left as inert escaped text.
func renderLink(match string) string {
	parts := linkRe.FindStringSubmatch(match)
	text, url := parts[1], parts[2]

	lower := strings.ToLower(url)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return match
	}

	return `<a href="` + url + `" target="_blank" rel="noopener noreferrer">` + text + `</a>`
}

// renderBlock turns one blank-line-separated block into markup. Runs of
// contiguous list items share a single <ul>; everything else becomes a
// paragraph with <br> between lines.
func renderBlock(block string) string {
	lines := strings.Split(strings.Trim(block, "\n"), "\n")

	var out strings.Builder
	var textLines []string
	var listItems []string

	flushText := func() {
		if len(textLines) == 0 {
			return
		}
		out.WriteString("<p>" + strings.Join(textLines, "<br>") + "</p>")
		textLines = nil
	}
	flushList := func() {
		if len(listItems) == 0 {
			return
		}
		out.WriteString("<ul>" + strings.Join(listItems, "") + "</ul>")
		listItems = nil
	}

	for _, line := range lines {
		switch {
		case listRe.MatchString(line):
			flushText()
			listItems = append(listItems, listRe.ReplaceAllString(line, "<li>$1</li>"))
		case h3Re.MatchString(line):
			flushList()
			textLines = append(textLines, h3Re.ReplaceAllString(line, `<strong class="md-h3">$1</strong>`))
		case h2Re.MatchString(line):
			flushList()
			textLines = append(textLines, h2Re.ReplaceAllString(line, `<strong class="md-h2">$1</strong>`))
		case strings.TrimSpace(line) == "":
			continue
		default:
			flushList()
			textLines = append(textLines, line)
		}
	}
	flushText()
	flushList()

	return out.String()
}
