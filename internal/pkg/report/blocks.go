package report

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Block is one paragraph-level run of text extracted from markup.
// Heading is 1-6 for h1-h6 and 0 for body text.
type Block struct {
	Text    string
	Heading int
}

var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Li: true, atom.Br: true, atom.Tr: true,
	atom.Ul: true, atom.Ol: true, atom.Table: true, atom.Section: true,
	atom.Header: true, atom.Footer: true, atom.Body: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
}

var headingLevels = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3, atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

var skippedAtoms = map[atom.Atom]bool{
	atom.Head: true, atom.Script: true, atom.Style: true, atom.Title: true,
}

// ExtractBlocks splits markup into text blocks at block-level elements.
// Whitespace inside a block is collapsed; list items are bulleted.
func ExtractBlocks(markup string) []Block {
	var (
		blocks  []Block
		buf     strings.Builder
		heading int
		bullet  bool
		skip    int
	)
	flush := func() {
		txt := strings.Join(strings.Fields(buf.String()), " ")
		buf.Reset()
		if txt != "" {
			if bullet && heading == 0 {
				txt = "• " + txt
			}
			blocks = append(blocks, Block{Text: txt, Heading: heading})
		}
		heading = 0
		bullet = false
	}

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			flush()
			return blocks
		case html.TextToken:
			if skip == 0 {
				buf.Write(z.Text())
				buf.WriteByte(' ')
			}
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			tt := z.Token()
			if skippedAtoms[tt.DataAtom] {
				if tt.Type == html.StartTagToken {
					skip++
				} else if tt.Type == html.EndTagToken && skip > 0 {
					skip--
				}
				continue
			}
			if !blockAtoms[tt.DataAtom] {
				continue
			}
			flush()
			if tt.Type == html.StartTagToken {
				heading = headingLevels[tt.DataAtom]
				bullet = tt.DataAtom == atom.Li
			}
		}
	}
}
