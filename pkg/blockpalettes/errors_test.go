package blockpalettes

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestResponseSnippetKeepsRunesWhole(t *testing.T) {
	body := strings.Repeat("a", 511) + "é" + strings.Repeat("b", 100)

	got := responseSnippet([]byte(body))
	if !utf8.ValidString(got) {
		t.Fatalf("snippet is not valid utf-8: %q", got[len(got)-8:])
	}
	if want := strings.Repeat("a", 511) + "..."; got != want {
		t.Fatalf("unexpected snippet tail %q", got[len(got)-8:])
	}
}

func TestResponseSnippetShortAndEmpty(t *testing.T) {
	if got := responseSnippet([]byte("  oops \n")); got != "oops" {
		t.Fatalf("got %q", got)
	}
	if got := responseSnippet(nil); got != "<empty>" {
		t.Fatalf("got %q", got)
	}
}
