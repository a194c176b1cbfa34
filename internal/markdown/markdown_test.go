package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", Render(""))
}

func TestRenderPlainTextIsWrapped(t *testing.T) {
	assert.Equal(t, "<p>hello world</p>", Render("hello world"))
}

func TestRenderEscapesBeforeSubstitution(t *testing.T) {
	out := Render(`<script>alert("x")</script> **bold**`)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderBoldAndItalic(t *testing.T) {
	out := Render("**bold** and *italic*")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<em>italic</em>")
}

func TestRenderBoldConsumedBeforeItalic(t *testing.T) {
	// Double-asterisk spans must not be reparsed as nested italics.
	assert.Equal(t, "<p><strong>x</strong></p>", Render("**x**"))
}

func TestRenderHTTPSLink(t *testing.T) {
	out := Render("[site](https://mul.edu.pk)")
	assert.Contains(t, out, `<a href="https://mul.edu.pk" target="_blank" rel="noopener noreferrer">site</a>`)
}

func TestRenderJavascriptLinkIsInert(t *testing.T) {
	out := Render("[bad](javascript:alert(1))")
	assert.NotContains(t, out, "<a")
	assert.NotContains(t, out, "javascript:alert(1)\"")
	assert.Contains(t, out, "[bad]")
}

func TestRenderRoundTrip(t *testing.T) {
	out := Render("**bold** and *italic* and [site](https://mul.edu.pk)")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<em>italic</em>")
	assert.Equal(t, 1, strings.Count(out, "<a "))
	assert.Contains(t, out, `href="https://mul.edu.pk"`)
}

func TestRenderEventHandlerAttributeNeutralized(t *testing.T) {
	out := Render(`<img src=x onerror=alert(1)>`)
	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, "&lt;img")
}

func TestRenderHeadings(t *testing.T) {
	out := Render("## Admissions\n### Fall intake")
	assert.Contains(t, out, `<strong class="md-h2">Admissions</strong>`)
	assert.Contains(t, out, `<strong class="md-h3">Fall intake</strong>`)
}

func TestRenderListSharesOneContainer(t *testing.T) {
	out := Render("- one\n- two\n* three")
	assert.Equal(t, 1, strings.Count(out, "<ul>"))
	assert.Equal(t, 3, strings.Count(out, "<li>"))
	assert.Contains(t, out, "<li>one</li><li>two</li><li>three</li>")
}

func TestRenderOrderedList(t *testing.T) {
	out := Render("1. first\n2. second")
	assert.Equal(t, 1, strings.Count(out, "<ul>"))
	assert.Contains(t, out, "<li>first</li><li>second</li>")
}

func TestRenderSeparateListRuns(t *testing.T) {
	out := Render("- a\n\ntext between\n\n- b")
	assert.Equal(t, 2, strings.Count(out, "<ul>"))
	assert.Contains(t, out, "<p>text between</p>")
}

func TestRenderParagraphsAndLineBreaks(t *testing.T) {
	out := Render("first line\nsecond line\n\nnew paragraph")
	assert.Contains(t, out, "<p>first line<br>second line</p>")
	assert.Contains(t, out, "<p>new paragraph</p>")
}

func TestEscapeInterpretsNothing(t *testing.T) {
	out := Escape("**not bold** <b>tag</b>")
	assert.Equal(t, "**not bold** &lt;b&gt;tag&lt;/b&gt;", out)
}
