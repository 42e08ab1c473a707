package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/strogmv/appdoc/internal/domain"
)

// TemplatePathProvider resolves a template key to a path fragment.
type TemplatePathProvider interface {
	Get(key string) (string, error)
}

// ViewRenderer renders the template found at url with the given view model.
type ViewRenderer interface {
	Render(ctx context.Context, url string, vm domain.ViewModel) (string, error)
}

type PageNumbering int

const (
	PageNumbersNone PageNumbering = iota
	PageNumbersNumeric
)

type HeaderRepeat int

const (
	HeaderFirstPageOnly HeaderRepeat = iota
	HeaderEveryPage
)

type HeaderOptions struct {
	Repeat HeaderRepeat
	HTML   string
}

// PdfOptions controls page decoration of a rendered document.
type PdfOptions struct {
	PageNumbers PageNumbering
	Header      HeaderOptions
}

// Document is a rendered binary artifact.
type Document interface {
	Bytes() []byte
}

// DocumentRenderer converts markup into a binary document.
type DocumentRenderer interface {
	RenderFromHTML(ctx context.Context, markup string, opts PdfOptions) (Document, error)
}

// ApplicationDocumentGenerator renders the document for an application.
// A nil slice with a nil error means the application has no document.
type ApplicationDocumentGenerator interface {
	Generate(ctx context.Context, id uuid.UUID, baseURI string) ([]byte, error)
}
