package blockpalettes

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateLayout is the format the site uses for palette creation dates.
const DateLayout = "2006-01-02 15:04:05"

// Block is a single game block as the site names it.
type Block struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
}

// NewBlock builds a Block from its slug, deriving a display label ("oak_log" -> "Oak Log").
func NewBlock(name string) Block {
	name = strings.TrimSpace(name)
	return Block{Name: name, Label: blockLabel(name)}
}

func blockLabel(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	if len(words) == 0 {
		return ""
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// PopularBlock is a block with the number of palettes it appears in.
type PopularBlock struct {
	Block `yaml:",inline"`
	Count uint32 `json:"count" yaml:"count"`
}

func (p *PopularBlock) UnmarshalJSON(data []byte) error {
	var wire struct {
		Block *string    `json:"block"`
		Count flexUint32 `json:"count"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Block == nil || strings.TrimSpace(*wire.Block) == "" {
		return errors.New("popular block: missing required field block")
	}
	if !wire.Count.set {
		return fmt.Errorf("popular block %q: missing required field count", *wire.Block)
	}
	*p = PopularBlock{Block: NewBlock(*wire.Block), Count: wire.Count.v}
	return nil
}

// SortOrder selects the ordering of palette listings.
type SortOrder string

const (
	SortRecent   SortOrder = "recent"
	SortPopular  SortOrder = "popular"
	SortOldest   SortOrder = "oldest"
	SortTrending SortOrder = "trending"
)

// SortOrders lists every order the site accepts.
var SortOrders = []SortOrder{SortRecent, SortPopular, SortOldest, SortTrending}

func (s SortOrder) String() string { return string(s) }

// ParseSortOrder parses a sort order case-insensitively.
func ParseSortOrder(raw string) (SortOrder, error) {
	want := SortOrder(strings.ToLower(strings.TrimSpace(raw)))
	for _, s := range SortOrders {
		if s == want {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown sort order %q (want one of recent, popular, oldest, trending)", raw)
}

// Palette is a published palette of six blocks.
type Palette struct {
	ID       uint64   `json:"id" yaml:"id"`
	UserID   uint64   `json:"user_id" yaml:"user_id"`
	Date     string   `json:"date" yaml:"date"`
	Likes    uint32   `json:"likes" yaml:"likes"`
	Blocks   []string `json:"blocks" yaml:"blocks"`
	Hidden   bool     `json:"hidden" yaml:"hidden"`
	Featured bool     `json:"featured" yaml:"featured"`
	Hash     string   `json:"hash,omitempty" yaml:"hash,omitempty"`
	TimeAgo  string   `json:"time_ago,omitempty" yaml:"time_ago,omitempty"`
}

// UnmarshalJSON accepts both the site's blockOne..blockSix layout and a plain blocks array.
// A palette without an id or without blocks is rejected.
func (p *Palette) UnmarshalJSON(data []byte) error {
	var wire paletteWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	out, err := wire.palette()
	if err != nil {
		return err
	}
	*p = out
	return nil
}

// ContainsAll reports whether every given block is in the palette. Matching is exact and case-sensitive.
func (p Palette) ContainsAll(blocks ...string) bool {
	have := make(map[string]struct{}, len(p.Blocks))
	for _, b := range p.Blocks {
		have[b] = struct{}{}
	}
	for _, b := range blocks {
		if _, ok := have[b]; !ok {
			return false
		}
	}
	return true
}

// ParseDate parses Date as UTC.
func (p Palette) ParseDate() (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, p.Date, time.UTC)
	if err != nil {
		return time.Time{}, newError(KindParse, "parse palette date", "", err)
	}
	return t, nil
}

// PaletteDetails is a palette together with its author's username.
type PaletteDetails struct {
	Palette  `yaml:",inline"`
	Username string `json:"username" yaml:"username"`
}

func (d *PaletteDetails) UnmarshalJSON(data []byte) error {
	var wire struct {
		paletteWire
		Username *string `json:"username"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	p, err := wire.palette()
	if err != nil {
		return err
	}
	if wire.Username == nil {
		return fmt.Errorf("palette %d: missing required field username", p.ID)
	}
	*d = PaletteDetails{Palette: p, Username: strings.TrimSpace(*wire.Username)}
	return nil
}

// PaletteList is one page of a palette listing.
type PaletteList struct {
	Palettes     []Palette `json:"palettes" yaml:"palettes"`
	TotalResults uint32    `json:"total_results" yaml:"total_results"`
	TotalPages   uint32    `json:"total_pages" yaml:"total_pages"`
}

// PalettePage holds what is scraped from a palette's HTML page.
type PalettePage struct {
	ID         uint64   `json:"id" yaml:"id"`
	Blocks     []string `json:"blocks" yaml:"blocks"`
	SimilarIDs []uint64 `json:"similar_ids" yaml:"similar_ids"`
}

// PaletteQuery filters a palette listing. Every block in Blocks must be present in a result.
type PaletteQuery struct {
	Blocks []string
	Sort   SortOrder
	Page   uint32
	Limit  uint32
}

const (
	defaultPage  = 1
	defaultLimit = 20
)

func (q PaletteQuery) normalized() PaletteQuery {
	blocks := make([]string, 0, len(q.Blocks))
	seen := make(map[string]struct{}, len(q.Blocks))
	for _, b := range q.Blocks {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		blocks = append(blocks, b)
	}
	q.Blocks = blocks
	if q.Sort == "" {
		q.Sort = SortRecent
	}
	if q.Page == 0 {
		q.Page = defaultPage
	}
	if q.Limit == 0 {
		q.Limit = defaultLimit
	}
	return q
}

type paletteWire struct {
	ID         flexUint   `json:"id"`
	UserID     flexUint   `json:"user_id"`
	Date       string     `json:"date"`
	Likes      flexUint32 `json:"likes"`
	BlockOne   string     `json:"blockOne"`
	BlockTwo   string     `json:"blockTwo"`
	BlockThree string     `json:"blockThree"`
	BlockFour  string     `json:"blockFour"`
	BlockFive  string     `json:"blockFive"`
	BlockSix   string     `json:"blockSix"`
	Blocks     []string   `json:"blocks"`
	Hidden     flexBool   `json:"hidden"`
	Featured   flexBool   `json:"featured"`
	Hash       *string    `json:"hash"`
	TimeAgo    string     `json:"time_ago"`
}

func (w paletteWire) palette() (Palette, error) {
	if !w.ID.set {
		return Palette{}, errors.New("palette: missing required field id")
	}

	blocks, err := w.blocks()
	if err != nil {
		return Palette{}, fmt.Errorf("palette %d: %w", w.ID.v, err)
	}

	p := Palette{
		ID:       w.ID.v,
		UserID:   w.UserID.v,
		Date:     strings.TrimSpace(w.Date),
		Likes:    w.Likes.v,
		Blocks:   blocks,
		Hidden:   w.Hidden.v,
		Featured: w.Featured.v,
		TimeAgo:  strings.TrimSpace(w.TimeAgo),
	}
	if w.Hash != nil {
		p.Hash = *w.Hash
	}
	return p, nil
}

func (w paletteWire) blocks() ([]string, error) {
	if len(w.Blocks) > 0 {
		out := make([]string, 0, len(w.Blocks))
		for i, b := range w.Blocks {
			b = strings.TrimSpace(b)
			if b == "" {
				return nil, fmt.Errorf("blocks[%d] is empty", i)
			}
			out = append(out, b)
		}
		return out, nil
	}

	named := []struct {
		field string
		value string
	}{
		{"blockOne", w.BlockOne},
		{"blockTwo", w.BlockTwo},
		{"blockThree", w.BlockThree},
		{"blockFour", w.BlockFour},
		{"blockFive", w.BlockFive},
		{"blockSix", w.BlockSix},
	}
	out := make([]string, 0, len(named))
	for _, n := range named {
		v := strings.TrimSpace(n.value)
		if v == "" {
			return nil, fmt.Errorf("missing required field %s", n.field)
		}
		out = append(out, v)
	}
	return out, nil
}

// flexUint decodes unsigned integers sent either as JSON numbers or numeric strings.
type flexUint struct {
	v   uint64
	set bool
}

func (f *flexUint) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	v, err := strconv.ParseUint(strings.Trim(raw, `"`), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid unsigned integer %s", raw)
	}
	f.v, f.set = v, true
	return nil
}

// flexUint32 is flexUint for fields the site stores as 32-bit counters; larger values are rejected.
type flexUint32 struct {
	v   uint32
	set bool
}

func (f *flexUint32) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	v, err := strconv.ParseUint(strings.Trim(raw, `"`), 10, 32)
	if err != nil {
		return fmt.Errorf("invalid 32-bit unsigned integer %s", raw)
	}
	f.v, f.set = uint32(v), true
	return nil
}

// flexBool decodes the site's 0/1 flags as well as JSON booleans.
type flexBool struct {
	v bool
}

func (f *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(strings.TrimSpace(string(data)), `"`) {
	case "null", "":
		return nil
	case "1", "true":
		f.v = true
	case "0", "false":
		f.v = false
	default:
		return fmt.Errorf("invalid flag %s", data)
	}
	return nil
}
