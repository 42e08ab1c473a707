package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/strogmv/appdoc/internal/domain"
	"github.com/strogmv/appdoc/internal/port"
)

type ApplicationRepositoryMock struct {
	FindByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	calls        int
}

func (m *ApplicationRepositoryMock) FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	m.calls++
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

type TemplatePathProviderMock struct {
	GetFunc func(key string) (string, error)
}

func (m *TemplatePathProviderMock) Get(key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(key)
	}
	return "/" + key + ".html", nil
}

type renderCall struct {
	URL string
	VM  domain.ViewModel
}

type ViewRendererMock struct {
	mu    sync.Mutex
	calls []renderCall
	Err   error
}

func (m *ViewRendererMock) Render(_ context.Context, url string, vm domain.ViewModel) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, renderCall{URL: url, VM: vm})
	if m.Err != nil {
		return "", m.Err
	}
	return "<p>" + url + "</p>", nil
}

type bytesDocument []byte

func (d bytesDocument) Bytes() []byte { return d }

type DocumentRendererMock struct {
	calls   int
	markup  string
	options port.PdfOptions
	Err     error
}

func (m *DocumentRendererMock) RenderFromHTML(_ context.Context, markup string, opts port.PdfOptions) (port.Document, error) {
	m.calls++
	m.markup = markup
	m.options = opts
	if m.Err != nil {
		return nil, m.Err
	}
	return bytesDocument("%PDF-" + markup), nil
}
