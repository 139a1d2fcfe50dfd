package blockpalettes

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

// GetPalettes lists palettes containing every block in q.Blocks.
//
// The site only filters on one block per request, so one request is sent per block and the
// union is narrowed locally to palettes holding all of them, de-duplicated by id in first-seen
// order. Totals come from the first response and describe the site's single-block result set.
// With no blocks a single unfiltered page is returned.
func (c *Client) GetPalettes(ctx context.Context, q PaletteQuery) (PaletteList, error) {
	const op = "get palettes"

	q = q.normalized()
	if _, err := ParseSortOrder(string(q.Sort)); err != nil {
		return PaletteList{}, newError(KindInvalidInput, op, "", err)
	}

	if len(q.Blocks) == 0 {
		return c.fetchPaletteList(ctx, op, q, "")
	}

	var (
		out       PaletteList
		collected []Palette
	)
	for i, block := range q.Blocks {
		page, err := c.fetchPaletteList(ctx, op, q, block)
		if err != nil {
			return PaletteList{}, err
		}
		if i == 0 {
			out.TotalResults = page.TotalResults
			out.TotalPages = page.TotalPages
		}
		collected = append(collected, page.Palettes...)
	}

	out.Palettes = filterPalettes(collected, q.Blocks)
	c.log.DebugObj("blockpalettes multi-block filter applied", "palette_filter", map[string]any{
		"blocks":    q.Blocks,
		"collected": len(collected),
		"kept":      len(out.Palettes),
	})
	return out, nil
}

// filterPalettes keeps palettes containing all blocks, dropping repeated ids.
func filterPalettes(palettes []Palette, blocks []string) []Palette {
	out := make([]Palette, 0, len(palettes))
	seen := make(map[uint64]struct{}, len(palettes))
	for _, p := range palettes {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		if !p.ContainsAll(blocks...) {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

func (c *Client) fetchPaletteList(ctx context.Context, op string, q PaletteQuery, block string) (PaletteList, error) {
	params := url.Values{
		"sort":  {q.Sort.String()},
		"page":  {strconv.FormatUint(uint64(q.Page), 10)},
		"limit": {strconv.FormatUint(uint64(q.Limit), 10)},
	}
	if block != "" {
		params.Set("blocks", block)
	}
	u := c.endpoint(allPalettesPath, params)

	var resp struct {
		envelope
		TotalResults flexUint32 `json:"total_results"`
		TotalPages   flexUint32 `json:"total_pages"`
		Palettes     []Palette  `json:"palettes"`
	}
	if err := c.getJSON(ctx, op, u, &resp); err != nil {
		return PaletteList{}, err
	}
	// A block nothing is built from comes back as success=false with null palettes.
	if resp.Success != nil && !*resp.Success && resp.Palettes == nil {
		c.log.DebugObj("blockpalettes listing returned no palettes", "palette_listing_empty", map[string]any{
			"block": block,
			"url":   u,
		})
		return PaletteList{Palettes: []Palette{}}, nil
	}
	if err := resp.check(op, u, KindAPI); err != nil {
		return PaletteList{}, err
	}

	palettes := resp.Palettes
	if palettes == nil {
		palettes = []Palette{}
	}
	return PaletteList{
		Palettes:     palettes,
		TotalResults: resp.TotalResults.v,
		TotalPages:   resp.TotalPages.v,
	}, nil
}

// GetPalette fetches one palette with its author's username.
// An unknown id fails with KindNotFound.
func (c *Client) GetPalette(ctx context.Context, id uint64) (PaletteDetails, error) {
	const op = "get palette"

	if id == 0 {
		return PaletteDetails{}, newError(KindInvalidInput, op, "", errors.New("palette id must be positive"))
	}
	u := c.endpoint(singlePalettePath, url.Values{"id": {strconv.FormatUint(id, 10)}})

	var resp struct {
		envelope
		Palette *PaletteDetails `json:"palette"`
	}
	if err := c.getJSON(ctx, op, u, &resp); err != nil {
		return PaletteDetails{}, err
	}
	if err := resp.check(op, u, KindNotFound); err != nil {
		return PaletteDetails{}, err
	}
	if resp.Palette == nil {
		return PaletteDetails{}, newError(KindParse, op, u, errors.New("response is missing the palette field"))
	}
	return *resp.Palette, nil
}

// SimilarPalettes returns the palettes the site lists as similar to id.
func (c *Client) SimilarPalettes(ctx context.Context, id uint64) ([]Palette, error) {
	const op = "similar palettes"

	if id == 0 {
		return nil, newError(KindInvalidInput, op, "", errors.New("palette id must be positive"))
	}
	u := c.endpoint(similarPalettesPath, url.Values{"palette_id": {strconv.FormatUint(id, 10)}})

	var resp struct {
		envelope
		Palettes *[]Palette `json:"palettes"`
	}
	if err := c.getJSON(ctx, op, u, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(op, u, KindNotFound); err != nil {
		return nil, err
	}
	if resp.Palettes == nil {
		return nil, newError(KindParse, op, u, errors.New("response is missing the palettes field"))
	}
	return *resp.Palettes, nil
}
