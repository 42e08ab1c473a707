package templates

import (
	"errors"
	"fmt"
)

// ErrUnknownTemplate is returned for template keys without a configured path.
var ErrUnknownTemplate = errors.New("unknown template")

// PathProvider resolves template keys from a fixed table.
type PathProvider struct {
	paths map[string]string
}

func NewPathProvider(paths map[string]string) *PathProvider {
	cp := make(map[string]string, len(paths))
	for k, v := range paths {
		cp[k] = v
	}
	return &PathProvider{paths: cp}
}

func (p *PathProvider) Get(key string) (string, error) {
	path, ok := p.paths[key]
	if !ok || path == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, key)
	}
	return path, nil
}
