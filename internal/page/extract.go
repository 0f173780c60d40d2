// Package page pulls the main text block out of a rendered post page.
package page

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/hpungsan/crumb/internal/errors"
)

// MinBlockChars is the shortest text block considered content.
const MinBlockChars = 40

// maxLinkRatio rejects blocks that are mostly link text (menus, footers).
const maxLinkRatio = 0.5

// noiseSelector matches elements that never hold post content.
const noiseSelector = "script, style, noscript, svg, nav, header, footer, form, button, template, iframe"

// blockSelector matches elements that can hold a content block.
const blockSelector = "article, section, div, p, span, h1, h2, li, blockquote, pre"

// containerSelector matches children that make an element a container
// rather than a leaf block.
const containerSelector = "article, section, div, p, ul, ol, table, blockquote, pre"

// Document is the text pulled from one page.
type Document struct {
	// Title is the og:title (or <title>) of the page.
	Title string `json:"title"`

	// Text is the longest qualifying content block, one line per <br> or
	// paragraph break.
	Text string `json:"text"`

	// Description is the og:description meta tag, used as a fallback when no
	// block qualifies.
	Description string `json:"description,omitempty"`
}

// ExtractText parses rawHTML and returns its longest qualifying content
// block: a leaf element, or an element holding only paragraphs. When no block qualifies, Text falls back to the og:description.
func ExtractText(rawHTML string) (*Document, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, errors.NewInvalidRequest("empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, errors.NewInvalidRequest("failed to parse HTML: " + err.Error())
	}

	result := &Document{
		Title:       metaContent(doc, "og:title"),
		Description: metaContent(doc, "og:description"),
	}
	if result.Title == "" {
		result.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	body := doc.Find("body")
	body.Find(noiseSelector).Remove()
	body.Find("br").ReplaceWithHtml("\n")

	best := ""
	bestChars := 0
	body.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		var text string
		if sel.Find(containerSelector).Length() > 0 {
			joined, ok := paragraphGroupText(sel)
			if !ok {
				return
			}
			text = joined
		} else {
			text = blockText(sel)
		}
		n := utf8.RuneCountInString(text)
		if n < MinBlockChars || n <= bestChars {
			return
		}
		if linkRatio(sel, n) >= maxLinkRatio {
			return
		}
		best = text
		bestChars = n
	})

	if best == "" {
		best = result.Description
	}
	result.Text = best
	return result, nil
}

// blockText returns the text of sel with each line trimmed and runs of
// blank lines collapsed to one.
func blockText(sel *goquery.Selection) string {
	lines := strings.Split(sel.Text(), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// paragraphGroupText joins the paragraphs of an element whose only nested
// blocks are two or more <p> leaves, one blank line between paragraphs. A
// caption split across sibling paragraphs is scored as one block.
func paragraphGroupText(sel *goquery.Selection) (string, bool) {
	nested := sel.Find(containerSelector)
	paragraphs := nested.Filter("p")
	if paragraphs.Length() < 2 || paragraphs.Length() != nested.Length() {
		return "", false
	}

	parts := make([]string, 0, paragraphs.Length())
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		if text := blockText(p); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n"), true
}

// linkRatio is the share of a block's characters that sit inside links.
func linkRatio(sel *goquery.Selection, totalChars int) float64 {
	if totalChars == 0 {
		return 0
	}
	linkChars := 0
	sel.Find("a").Each(func(_ int, a *goquery.Selection) {
		linkChars += utf8.RuneCountInString(strings.TrimSpace(a.Text()))
	})
	return float64(linkChars) / float64(totalChars)
}

// metaContent reads a <meta property=...> or <meta name=...> tag.
func metaContent(doc *goquery.Document, key string) string {
	sel := doc.Find(`meta[property="` + key + `"]`).First()
	if sel.Length() == 0 {
		sel = doc.Find(`meta[name="` + key + `"]`).First()
	}
	content, _ := sel.Attr("content")
	return strings.TrimSpace(content)
}
