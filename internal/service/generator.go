package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/strogmv/appdoc/internal/pkg/logger"
	"github.com/strogmv/appdoc/internal/port"
)

// HeaderHTML is printed at the top of the first page of every application document.
const HeaderHTML = `<h1>Application Summary</h1><p>Confidential</p>`

// DocumentGenerator produces the PDF for an application.
type DocumentGenerator struct {
	repo      port.ApplicationRepository
	assembler *DocumentAssembler
	renderer  port.DocumentRenderer
	log       *slog.Logger
}

func NewDocumentGenerator(repo port.ApplicationRepository, assembler *DocumentAssembler, renderer port.DocumentRenderer, log *slog.Logger) (*DocumentGenerator, error) {
	if repo == nil {
		return nil, fmt.Errorf("%w: application repository", ErrMissingDependency)
	}
	if assembler == nil {
		return nil, fmt.Errorf("%w: document assembler", ErrMissingDependency)
	}
	if renderer == nil {
		return nil, fmt.Errorf("%w: document renderer", ErrMissingDependency)
	}
	if log == nil {
		return nil, fmt.Errorf("%w: logger", ErrMissingDependency)
	}
	return &DocumentGenerator{repo: repo, assembler: assembler, renderer: renderer, log: log}, nil
}

// Generate returns the document bytes for the application with id.
// A nil slice with a nil error means there is no document: the id is unknown
// or the application's state has no template.
func (g *DocumentGenerator) Generate(ctx context.Context, id uuid.UUID, baseURI string) ([]byte, error) {
	app, err := g.repo.FindByID(ctx, id)
	if err != nil {
		documentsGenerated.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("find application %s: %w", id, err)
	}
	if app == nil {
		documentsGenerated.WithLabelValues("not_found").Inc()
		logger.From(ctx, g.log).Warn("no application found", slog.String("application_id", id.String()))
		return nil, nil
	}

	markup, ok, err := g.assembler.Assemble(ctx, app, NormalizeBaseURI(baseURI))
	if err != nil {
		documentsGenerated.WithLabelValues("error").Inc()
		return nil, err
	}
	if !ok {
		documentsGenerated.WithLabelValues("unsupported_state").Inc()
		return nil, nil
	}

	doc, err := g.renderer.RenderFromHTML(ctx, markup, port.PdfOptions{
		PageNumbers: port.PageNumbersNumeric,
		Header: port.HeaderOptions{
			Repeat: port.HeaderFirstPageOnly,
			HTML:   HeaderHTML,
		},
	})
	if err != nil {
		documentsGenerated.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("render document for application %s: %w", id, err)
	}
	documentsGenerated.WithLabelValues("rendered").Inc()
	return doc.Bytes(), nil
}

// NormalizeBaseURI drops a single trailing "/" from uri.
func NormalizeBaseURI(uri string) string {
	return strings.TrimSuffix(uri, "/")
}
