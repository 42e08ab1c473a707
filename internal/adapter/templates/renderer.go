// Package templates resolves and renders the HTML templates behind application documents.
package templates

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/strogmv/appdoc/internal/domain"
	"github.com/strogmv/appdoc/internal/pkg/templaterender"
)

const maxTemplateSize = 1 << 20

// Renderer loads a template by URL and executes it with a view model.
// http and https URLs are fetched; anything else is read from the local filesystem
// after removing the mount prefix from the URL path.
type Renderer struct {
	client *http.Client
	local  fs.FS
	mount  string
}

func NewRenderer(client *http.Client, local fs.FS, mount string) *Renderer {
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Renderer{client: client, local: local, mount: strings.Trim(mount, "/")}
}

func (r *Renderer) Render(ctx context.Context, rawURL string, vm domain.ViewModel) (string, error) {
	src, err := r.load(ctx, rawURL)
	if err != nil {
		return "", err
	}
	out, err := templaterender.RenderHTML(path.Base(rawURL), src, vm)
	if err != nil {
		return "", fmt.Errorf("execute template %s: %w", rawURL, err)
	}
	return out, nil
}

func (r *Renderer) load(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse template url %q: %w", rawURL, err)
	}
	switch u.Scheme {
	case "http", "https":
		return r.fetch(ctx, u.String())
	default:
		return r.read(u.Path)
	}
}

func (r *Renderer) fetch(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build template request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch template %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch template %s: status %d", u, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTemplateSize))
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", u, err)
	}
	return string(body), nil
}

func (r *Renderer) read(p string) (string, error) {
	if r.local == nil {
		return "", fmt.Errorf("template %s: no local template filesystem", p)
	}
	name := strings.TrimPrefix(p, "/")
	if r.mount != "" {
		name = strings.TrimPrefix(name, r.mount+"/")
	}
	data, err := fs.ReadFile(r.local, name)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", p, err)
	}
	return string(data), nil
}
