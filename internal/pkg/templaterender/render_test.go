package templaterender

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRenderHTMLEscapesAndFormats(t *testing.T) {
	t.Parallel()

	data := struct {
		Name   string
		Amount decimal.Decimal
		On     time.Time
	}{"<b>Ann</b>", decimal.RequireFromString("14.25"), time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)}

	got, err := RenderHTML("t", `<p>{{.Name}} {{money .Amount}} {{date .On}}</p>`, data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<p>&lt;b&gt;Ann&lt;/b&gt; 14.25 14 March 2024</p>`
	if got != want {
		t.Fatalf("RenderHTML = %q, want %q", got, want)
	}
}

func TestRenderHTMLEmptySource(t *testing.T) {
	t.Parallel()

	got, err := RenderHTML("t", "", nil)
	if err != nil || got != "" {
		t.Fatalf("expected empty output, got %q, %v", got, err)
	}
}

func TestRenderHTMLParseError(t *testing.T) {
	t.Parallel()

	if _, err := RenderHTML("t", "{{.Name", nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
