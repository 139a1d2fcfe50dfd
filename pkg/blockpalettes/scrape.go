package blockpalettes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Markup the palette page scraper relies on. A page without any blockSelector match is
// treated as restructured; a page without similarSelector matches simply has no similar palettes.
const (
	blockSelector   = ".single-block"
	similarSelector = ".palette-card"
)

// ScrapePalettePage fetches /palette/{id} and extracts its block names and the ids of the
// similar palettes linked from it.
func (c *Client) ScrapePalettePage(ctx context.Context, id uint64) (PalettePage, error) {
	const op = "scrape palette page"

	if id == 0 {
		return PalettePage{}, newError(KindInvalidInput, op, "", errors.New("palette id must be positive"))
	}
	u := c.endpoint(palettePagePath+strconv.FormatUint(id, 10), nil)

	body, err := c.get(ctx, op, u)
	if err != nil {
		return PalettePage{}, err
	}

	page, skipped, err := parsePalettePage(body)
	if err != nil {
		return PalettePage{}, newError(KindParse, op, u, err)
	}
	if len(skipped) > 0 {
		c.log.DebugObj("blockpalettes skipped similar palette links", "similar_skipped", map[string]any{
			"palette_id": id,
			"hrefs":      skipped,
		})
	}
	page.ID = id
	return page, nil
}

// SimilarPaletteIDs returns the ids in the "similar palettes" section of a palette page,
// in page order. A page without that section yields an empty slice.
func (c *Client) SimilarPaletteIDs(ctx context.Context, id uint64) ([]uint64, error) {
	page, err := c.ScrapePalettePage(ctx, id)
	if err != nil {
		return nil, err
	}
	return page.SimilarIDs, nil
}

// parsePalettePage returns the parsed page and the similar-card hrefs it could not turn into ids.
func parsePalettePage(body []byte) (PalettePage, []string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return PalettePage{}, nil, fmt.Errorf("parse html: %w", err)
	}

	blockNodes := doc.Find(blockSelector)
	if blockNodes.Length() == 0 {
		return PalettePage{}, nil, fmt.Errorf("palette page markup changed: no %s elements", blockSelector)
	}

	page := PalettePage{
		Blocks:     make([]string, 0, blockNodes.Length()),
		SimilarIDs: []uint64{},
	}
	for i, n := range blockNodes.Nodes {
		name := lastText(n)
		if name == "" {
			return PalettePage{}, nil, fmt.Errorf("palette page markup changed: %s[%d] has no text", blockSelector, i)
		}
		page.Blocks = append(page.Blocks, name)
	}

	var skipped []string
	seen := make(map[uint64]struct{})
	doc.Find(similarSelector).Each(func(_ int, card *goquery.Selection) {
		href, ok := cardHref(card)
		if !ok {
			skipped = append(skipped, "")
			return
		}
		id, ok := paletteIDFromHref(href)
		if !ok {
			skipped = append(skipped, href)
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		page.SimilarIDs = append(page.SimilarIDs, id)
	})

	return page, skipped, nil
}

// cardHref reads href from the card itself, or from the first link inside it.
func cardHref(card *goquery.Selection) (string, bool) {
	if href, ok := card.Attr("href"); ok && strings.TrimSpace(href) != "" {
		return strings.TrimSpace(href), true
	}
	if href, ok := card.Find("a[href]").First().Attr("href"); ok && strings.TrimSpace(href) != "" {
		return strings.TrimSpace(href), true
	}
	return "", false
}

// paletteIDFromHref takes the numeric last path segment of a link such as /palette/123.
func paletteIDFromHref(href string) (uint64, bool) {
	parsed, err := url.Parse(href)
	if err != nil {
		return 0, false
	}
	last := path.Base(strings.TrimRight(parsed.Path, "/"))
	id, err := strconv.ParseUint(last, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// lastText returns the last non-blank text node under n, trimmed. Block tiles render an
// image first and the block name last.
func lastText(n *html.Node) string {
	var last string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				last = t
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(last), " ")
}
