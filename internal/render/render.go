package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/blockpalettes/internal/collection"
	"github.com/samvad-hq/blockpalettes/pkg/blockpalettes"
)

// Renderer writes command results in one output format.
type Renderer struct {
	w      io.Writer
	format string
}

// New returns a renderer for format ("table", "json" or "yaml").
func New(w io.Writer, format string) (*Renderer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "table", "json", "yaml":
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return &Renderer{w: w, format: format}, nil
}

// encode handles the structured formats; it reports false for table output.
func (r *Renderer) encode(v any) (bool, error) {
	switch r.format {
	case "json":
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

func (r *Renderer) table(header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// Blocks renders a block search result.
func (r *Renderer) Blocks(blocks []blockpalettes.Block) error {
	if done, err := r.encode(blocks); done {
		return err
	}
	rows := make([]table.Row, 0, len(blocks))
	for _, b := range blocks {
		rows = append(rows, table.Row{b.Name, b.Label})
	}
	r.table(table.Row{"Block", "Label"}, rows)
	return nil
}

// PopularBlocks renders the popular block listing.
func (r *Renderer) PopularBlocks(blocks []blockpalettes.PopularBlock) error {
	if done, err := r.encode(blocks); done {
		return err
	}
	rows := make([]table.Row, 0, len(blocks))
	for i, b := range blocks {
		rows = append(rows, table.Row{i + 1, b.Name, b.Label, b.Count})
	}
	r.table(table.Row{"#", "Block", "Label", "Palettes"}, rows)
	return nil
}

// PaletteList renders one page of palettes.
func (r *Renderer) PaletteList(list blockpalettes.PaletteList) error {
	if done, err := r.encode(list); done {
		return err
	}
	r.palettesTable(list.Palettes)
	_, err := fmt.Fprintf(r.w, "%d palettes shown (site reports %d results over %d pages)\n",
		len(list.Palettes), list.TotalResults, list.TotalPages)
	return err
}

// Palettes renders a plain palette slice.
func (r *Renderer) Palettes(palettes []blockpalettes.Palette) error {
	if done, err := r.encode(palettes); done {
		return err
	}
	r.palettesTable(palettes)
	return nil
}

func (r *Renderer) palettesTable(palettes []blockpalettes.Palette) {
	rows := make([]table.Row, 0, len(palettes))
	for _, p := range palettes {
		rows = append(rows, table.Row{p.ID, p.Likes, strings.Join(p.Blocks, ", "), p.TimeAgo})
	}
	r.table(table.Row{"ID", "Likes", "Blocks", "Created"}, rows)
}

// PaletteDetails renders a single palette.
func (r *Renderer) PaletteDetails(p blockpalettes.PaletteDetails) error {
	if done, err := r.encode(p); done {
		return err
	}
	rows := []table.Row{
		{"ID", p.ID},
		{"Author", p.Username},
		{"Created", p.Date},
		{"Likes", p.Likes},
		{"Featured", p.Featured},
		{"Blocks", strings.Join(p.Blocks, ", ")},
	}
	r.table(table.Row{"Field", "Value"}, rows)
	return nil
}

// PalettePage renders a scraped palette page.
func (r *Renderer) PalettePage(page blockpalettes.PalettePage) error {
	if done, err := r.encode(page); done {
		return err
	}
	similar := make([]string, 0, len(page.SimilarIDs))
	for _, id := range page.SimilarIDs {
		similar = append(similar, strconv.FormatUint(id, 10))
	}
	rows := []table.Row{
		{"ID", page.ID},
		{"Blocks", strings.Join(page.Blocks, ", ")},
		{"Similar", strings.Join(similar, ", ")},
	}
	r.table(table.Row{"Field", "Value"}, rows)
	return nil
}

// IDs renders a list of palette ids.
func (r *Renderer) IDs(ids []uint64) error {
	if done, err := r.encode(ids); done {
		return err
	}
	rows := make([]table.Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, table.Row{id})
	}
	r.table(table.Row{"Palette ID"}, rows)
	return nil
}

// Collection renders saved palettes.
func (r *Renderer) Collection(entries []collection.Entry) error {
	if entries == nil {
		entries = []collection.Entry{}
	}
	if done, err := r.encode(entries); done {
		return err
	}
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			e.Palette.ID,
			e.Palette.Username,
			strings.Join(e.Palette.Blocks, ", "),
			e.SavedAt.Format("2006-01-02 15:04"),
		})
	}
	r.table(table.Row{"ID", "Author", "Blocks", "Saved"}, rows)
	return nil
}
