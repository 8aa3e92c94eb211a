package renderer

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/niklasfasching/go-org/org"
)

// highlightStyle is the chroma style used for source blocks in articles.
const highlightStyle = "friendly"

// NewHTMLWriter returns an org HTML writer that highlights source blocks
// with chroma CSS classes.
func NewHTMLWriter() *org.HTMLWriter {
	w := org.NewHTMLWriter()
	w.HighlightCodeBlock = func(source, lang string, inline bool, params map[string]string) string {
		var buf bytes.Buffer
		lexer := lexers.Get(lang)
		if lexer == nil {
			lexer = lexers.Fallback
		}
		iterator, err := lexer.Tokenise(nil, source)
		if err != nil {
			return source
		}
		formatter := html.New(html.WithClasses(true))
		if err := formatter.Format(&buf, styles.Get(highlightStyle), iterator); err != nil {
			return source
		}
		return buf.String()
	}
	return w
}

// Render turns article markup into HTML. Blank markup renders to nothing.
func Render(markup string) (template.HTML, error) {
	if strings.TrimSpace(markup) == "" {
		return "", nil
	}
	out, err := org.New().Parse(strings.NewReader(escapeLiteralLines(markup)), "").Write(NewHTMLWriter())
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil
}

// zeroWidthSpace is the org escape character. Prefixed to a line it stops
// the line from being parsed as a comment, keyword or rule.
const zeroWidthSpace = "\u200b"

var (
	commentLine = regexp.MustCompile(`^\s*#(\s|$)`)
	keywordLine = regexp.MustCompile(`^\s*#\+`)
	ruleLine    = regexp.MustCompile(`^\s*-{5,}\s*$`)
	blockBegin  = regexp.MustCompile(`(?i)^\s*#\+begin_(\w+)`)
	blockEnd    = regexp.MustCompile(`(?i)^\s*#\+end_(\w+)`)
)

// escapeLiteralLines keeps every line of the content visible: comment lines,
// keyword lines, comment blocks and horizontal rules are shown as text. The
// contents of other blocks (source, quote, example) are left untouched.
func escapeLiteralLines(markup string) string {
	lines := strings.Split(markup, "\n")
	var block string
	for i, line := range lines {
		if block != "" {
			if m := blockEnd.FindStringSubmatch(line); m != nil && strings.EqualFold(m[1], block) {
				block = ""
			}
			continue
		}
		if m := blockBegin.FindStringSubmatch(line); m != nil && !strings.EqualFold(m[1], "comment") {
			block = m[1]
			continue
		}
		if commentLine.MatchString(line) || keywordLine.MatchString(line) || ruleLine.MatchString(line) {
			lines[i] = zeroWidthSpace + line
		}
	}
	return strings.Join(lines, "\n")
}
