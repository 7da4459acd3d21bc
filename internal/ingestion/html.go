package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are removed before conversion
const noiseSelectors = "script, style, noscript, template, nav, iframe, svg, form, button"

var inlineSpace = regexp.MustCompile(`[ \t\n\f\r]+`)

// blockElements start and end a line
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "header": true,
	"main": true, "ol": true, "p": true, "pre": true, "section": true,
	"table": true, "tr": true, "ul": true,
}

// spacedElements are followed by a blank line so the parser sees separate blocks
var spacedElements = map[string]bool{
	"article": true, "p": true, "section": true, "table": true, "ul": true, "ol": true, "dl": true,
}

// HTMLToText renders an HTML resume as line text. Block elements become
// lines and list items become "• " bullets. Table cells are joined with
// " | ". Links are replaced by their address.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(noiseSelectors).Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	w := &lineWriter{}
	w.walk(root)
	w.flush()
	return CleanText(strings.Join(w.lines, "\n")), nil
}

type lineWriter struct {
	lines []string
	cur   strings.Builder
}

func (w *lineWriter) write(s string) {
	w.cur.WriteString(s)
}

// flush ends the current line; empty lines are not emitted
func (w *lineWriter) flush() {
	line := strings.TrimSpace(inlineSpace.ReplaceAllString(w.cur.String(), " "))
	w.cur.Reset()
	if line != "" && line != "•" {
		w.lines = append(w.lines, line)
	}
}

// bulletPending reports whether the current line holds only a list marker
func (w *lineWriter) bulletPending() bool {
	return strings.TrimSpace(w.cur.String()) == "•"
}

func (w *lineWriter) blank() {
	w.flush()
	if n := len(w.lines); n > 0 && w.lines[n-1] != "" {
		w.lines = append(w.lines, "")
	}
}

func (w *lineWriter) walk(sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		name := goquery.NodeName(node)
		switch {
		case name == "#text":
			w.write(node.Text())
		case name == "a":
			if target := linkTarget(node); target != "" {
				w.write(target)
			} else {
				w.walk(node)
			}
		case name == "br":
			w.flush()
		case name == "hr":
			w.blank()
		case isHeading(name):
			w.blank()
			w.walk(node)
			w.flush()
		case name == "li":
			w.flush()
			w.write("• ")
			w.walk(node)
			w.flush()
		case name == "td" || name == "th":
			if strings.TrimSpace(w.cur.String()) != "" {
				w.write(" | ")
			}
			w.walk(node)
		case blockElements[name]:
			if !w.bulletPending() {
				w.flush()
			}
			w.walk(node)
			if spacedElements[name] {
				w.blank()
			} else {
				w.flush()
			}
		default:
			w.walk(node)
		}
	})
}

// linkTarget returns the address a link points to when it should replace the
// link text: web addresses and mailto links. Anchors and relative links
// return "".
func linkTarget(a *goquery.Selection) string {
	href := strings.TrimSpace(a.AttrOr("href", ""))
	switch {
	case strings.HasPrefix(href, "mailto:"):
		addr, _, _ := strings.Cut(strings.TrimPrefix(href, "mailto:"), "?")
		return addr
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	}
	return ""
}

func isHeading(name string) bool {
	return len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6'
}
