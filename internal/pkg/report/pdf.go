package report

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/strogmv/appdoc/internal/port"
)

const (
	bodySize      = 10.0
	lineHeight    = 5.0
	charsPerLine  = 95
	rowPadding    = 2.0
	headingHeight = 12.0
	maxRowLines   = 20
)

// Generator renders HTML markup into PDF documents.
type Generator struct{}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{}
}

type pdfDocument []byte

func (d pdfDocument) Bytes() []byte { return d }

// RenderFromHTML lays out the text blocks of markup as PDF rows.
func (g *Generator) RenderFromHTML(ctx context.Context, markup string, opts port.PdfOptions) (port.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	builder := config.NewBuilder()
	if opts.PageNumbers == port.PageNumbersNumeric {
		builder = builder.WithPageNumber(props.PageNumber{
			Pattern: "{current}",
			Place:   props.Bottom,
			Size:    8,
		})
	}
	m := maroto.New(builder.Build())

	header := rowsFor(ExtractBlocks(opts.Header.HTML))
	if len(header) > 0 {
		switch opts.Header.Repeat {
		case port.HeaderEveryPage:
			if err := m.RegisterHeader(header...); err != nil {
				return nil, fmt.Errorf("register header: %w", err)
			}
		default:
			m.AddRows(header...)
		}
	}
	m.AddRows(rowsFor(ExtractBlocks(markup))...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return pdfDocument(doc.GetBytes()), nil
}

func rowsFor(blocks []Block) []core.Row {
	rows := make([]core.Row, 0, len(blocks))
	for _, b := range blocks {
		if b.Heading > 0 {
			rows = append(rows, row.New(headingHeight).Add(
				col.New(12).Add(text.New(b.Text, props.Text{
					Size:  headingSize(b.Heading),
					Style: fontstyle.Bold,
					Align: align.Left,
					Top:   3,
				})),
			))
			continue
		}
		for _, chunk := range splitWords(b.Text, charsPerLine*maxRowLines) {
			rows = append(rows, row.New(bodyHeight(chunk)).Add(
				col.New(12).Add(text.New(chunk, props.Text{
					Size: bodySize,
					Top:  1,
				})),
			))
		}
	}
	return rows
}

// splitWords cuts s at word boundaries into pieces of at most limit runes
// so that no single row outgrows a page. Words longer than limit stay whole.
func splitWords(s string, limit int) []string {
	if utf8.RuneCountInString(s) <= limit {
		return []string{s}
	}
	var out []string
	var cur strings.Builder
	n := 0
	for _, w := range strings.Fields(s) {
		wl := utf8.RuneCountInString(w)
		if n > 0 && n+1+wl > limit {
			out = append(out, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(w)
		n += wl
	}
	if n > 0 {
		out = append(out, cur.String())
	}
	return out
}

func headingSize(level int) float64 {
	size := 20 - float64(level)*2
	if size < bodySize+1 {
		size = bodySize + 1
	}
	return size
}

func bodyHeight(s string) float64 {
	lines := math.Ceil(float64(utf8.RuneCountInString(s)) / charsPerLine)
	if lines < 1 {
		lines = 1
	}
	return lines*lineHeight + rowPadding
}
