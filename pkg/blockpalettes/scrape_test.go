package blockpalettes

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

func TestParsePalettePageExtractsBlocksAndSimilarIDs(t *testing.T) {
	page, skipped, err := parsePalettePage(readFixture(t, "palette_page.html"))
	if err != nil {
		t.Fatalf("parsePalettePage: %v", err)
	}

	wantBlocks := []string{"oak_log", "stone", "dirt", "spruce_planks", "moss_block", "cobblestone"}
	if diff := cmp.Diff(wantBlocks, page.Blocks); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint64{981, 77, 4512}, page.SimilarIDs); diff != "" {
		t.Fatalf("similar ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/palette/featured"}, skipped); diff != "" {
		t.Fatalf("skipped hrefs mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePalettePageWithoutSimilarSection(t *testing.T) {
	page, _, err := parsePalettePage(readFixture(t, "palette_page_no_similar.html"))
	if err != nil {
		t.Fatalf("parsePalettePage: %v", err)
	}
	if page.SimilarIDs == nil || len(page.SimilarIDs) != 0 {
		t.Fatalf("expected empty similar ids, got %#v", page.SimilarIDs)
	}
	if len(page.Blocks) != 6 {
		t.Fatalf("expected 6 blocks, got %v", page.Blocks)
	}
}

func TestParsePalettePageRestructuredMarkup(t *testing.T) {
	if _, _, err := parsePalettePage(readFixture(t, "palette_page_restructured.html")); err == nil {
		t.Fatalf("expected error for restructured markup")
	}
}

func TestParsePalettePageEmptyBlockTile(t *testing.T) {
	html := []byte(`<div class="single-block"><img src="/x.png"></div>`)
	if _, _, err := parsePalettePage(html); err == nil {
		t.Fatalf("expected error for block tile without a name")
	}
}

func TestScrapePalettePage(t *testing.T) {
	client, fake := newTestClient(map[string]fakeResponse{
		testBaseURL + "/palette/1200": {body: readFixture(t, "palette_page.html"), statusCode: http.StatusOK},
	})

	page, err := client.ScrapePalettePage(context.Background(), 1200)
	if err != nil {
		t.Fatalf("ScrapePalettePage: %v", err)
	}
	if page.ID != 1200 {
		t.Fatalf("ID = %d", page.ID)
	}
	if len(fake.calls) != 1 || fake.calls[0] != testBaseURL+"/palette/1200" {
		t.Fatalf("unexpected calls %v", fake.calls)
	}

	ids, err := client.SimilarPaletteIDs(context.Background(), 1200)
	if err != nil {
		t.Fatalf("SimilarPaletteIDs: %v", err)
	}
	if diff := cmp.Diff([]uint64{981, 77, 4512}, ids); diff != "" {
		t.Fatalf("similar ids mismatch (-want +got):\n%s", diff)
	}
}

func TestScrapePalettePageErrorKinds(t *testing.T) {
	client, _ := newTestClient(map[string]fakeResponse{
		testBaseURL + "/palette/3": {body: readFixture(t, "palette_page_restructured.html"), statusCode: http.StatusOK},
		testBaseURL + "/palette/4": {body: readFixture(t, "palette_page_no_similar.html"), statusCode: http.StatusOK},
	})

	_, err := client.ScrapePalettePage(context.Background(), 3)
	requireKind(t, err, KindParse)

	ids, err := client.SimilarPaletteIDs(context.Background(), 4)
	if err != nil {
		t.Fatalf("SimilarPaletteIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no similar ids, got %v", ids)
	}

	_, err = client.ScrapePalettePage(context.Background(), 999999)
	requireKind(t, err, KindNotFound)
}

func TestPaletteIDFromHref(t *testing.T) {
	cases := map[string]struct {
		id uint64
		ok bool
	}{
		"/palette/12":                              {12, true},
		"https://www.blockpalettes.com/palette/9/": {9, true},
		"/palette/33#top":                          {33, true},
		"/palette/abc":                             {0, false},
		"/palette/0":                               {0, false},
		"":                                         {0, false},
	}
	for href, want := range cases {
		id, ok := paletteIDFromHref(href)
		if id != want.id || ok != want.ok {
			t.Errorf("paletteIDFromHref(%q) = %d,%v want %d,%v", href, id, ok, want.id, want.ok)
		}
	}
}
