package blockpalettes

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// SearchBlocks returns the blocks whose name contains query.
//
// The site matches case-insensitively on substrings of the block slug, treating spaces as
// underscores; results are checked against the same rule and anything else is dropped.
func (c *Client) SearchBlocks(ctx context.Context, query string) ([]Block, error) {
	const op = "search blocks"

	needle := normalizeBlockQuery(query)
	if needle == "" {
		return nil, newError(KindInvalidInput, op, "", errors.New("query is empty"))
	}

	u := c.endpoint(searchBlockPath, url.Values{"query": {strings.TrimSpace(query)}})

	var resp struct {
		envelope
		Blocks *[]string `json:"blocks"`
	}
	if err := c.getJSON(ctx, op, u, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(op, u, KindAPI); err != nil {
		return nil, err
	}
	if resp.Blocks == nil {
		return nil, newError(KindParse, op, u, errors.New("response is missing the blocks field"))
	}

	names := *resp.Blocks
	blocks := make([]Block, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	dropped := 0
	for _, name := range names {
		b := NewBlock(name)
		if b.Name == "" || !strings.Contains(normalizeBlockQuery(b.Name), needle) {
			dropped++
			continue
		}
		if _, dup := seen[b.Name]; dup {
			continue
		}
		seen[b.Name] = struct{}{}
		blocks = append(blocks, b)
	}

	if dropped > 0 {
		c.log.DebugObj("blockpalettes search dropped non-matching blocks", "search_filter", map[string]any{
			"query":   query,
			"dropped": dropped,
			"kept":    len(blocks),
		})
	}
	return blocks, nil
}

// PopularBlocks returns the site's popular block listing in the order it is published.
func (c *Client) PopularBlocks(ctx context.Context) ([]PopularBlock, error) {
	const op = "popular blocks"

	u := c.endpoint(popularBlocksPath, nil)

	var resp struct {
		envelope
		Blocks *[]PopularBlock `json:"blocks"`
	}
	if err := c.getJSON(ctx, op, u, &resp); err != nil {
		return nil, err
	}
	if err := resp.check(op, u, KindAPI); err != nil {
		return nil, err
	}
	if resp.Blocks == nil {
		return nil, newError(KindParse, op, u, errors.New("response is missing the blocks field"))
	}
	return *resp.Blocks, nil
}

func normalizeBlockQuery(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	return strings.Join(strings.Fields(q), "_")
}
