package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/strogmv/appdoc/internal/domain"
	"github.com/strogmv/appdoc/internal/pkg/logger"
	"github.com/strogmv/appdoc/internal/port"
)

type stateRoute struct {
	templateKey string
	build       func(*ViewModelFactory, *domain.Application) domain.ViewModel
}

// stateRoutes lists every state that has a document. States missing here produce no view.
var stateRoutes = map[domain.ApplicationState]stateRoute{
	domain.StatePending: {
		templateKey: "PendingApplication",
		build: func(f *ViewModelFactory, app *domain.Application) domain.ViewModel {
			return f.Pending(app)
		},
	},
	domain.StateActivated: {
		templateKey: "ActivatedApplication",
		build: func(f *ViewModelFactory, app *domain.Application) domain.ViewModel {
			return f.Activated(app)
		},
	},
	domain.StateInReview: {
		templateKey: "InReviewApplication",
		build: func(f *ViewModelFactory, app *domain.Application) domain.ViewModel {
			return f.InReview(app)
		},
	},
}

// TemplateKey returns the template key used for state, if the state has a document.
func TemplateKey(state domain.ApplicationState) (string, bool) {
	route, ok := stateRoutes[state]
	return route.templateKey, ok
}

// DocumentAssembler turns an application into rendered markup for its state.
type DocumentAssembler struct {
	paths   port.TemplatePathProvider
	views   port.ViewRenderer
	factory *ViewModelFactory
	log     *slog.Logger
}

func NewDocumentAssembler(paths port.TemplatePathProvider, views port.ViewRenderer, factory *ViewModelFactory, log *slog.Logger) (*DocumentAssembler, error) {
	if paths == nil {
		return nil, fmt.Errorf("%w: template path provider", ErrMissingDependency)
	}
	if views == nil {
		return nil, fmt.Errorf("%w: view renderer", ErrMissingDependency)
	}
	if factory == nil {
		return nil, fmt.Errorf("%w: view model factory", ErrMissingDependency)
	}
	if log == nil {
		return nil, fmt.Errorf("%w: logger", ErrMissingDependency)
	}
	return &DocumentAssembler{paths: paths, views: views, factory: factory, log: log}, nil
}

// Assemble renders the markup for app. ok is false when the state has no document.
// baseURI is expected to be normalized already.
func (a *DocumentAssembler) Assemble(ctx context.Context, app *domain.Application, baseURI string) (markup string, ok bool, err error) {
	route, found := stateRoutes[app.State]
	if !found {
		logger.From(ctx, a.log).Warn("no valid document can be generated for application state",
			slog.String("application_id", app.ID.String()),
			slog.String("state", app.State.String()))
		return "", false, nil
	}

	path, err := a.paths.Get(route.templateKey)
	if err != nil {
		return "", false, fmt.Errorf("resolve template %s: %w", route.templateKey, err)
	}
	vm := route.build(a.factory, app)
	markup, err = a.views.Render(ctx, baseURI+path, vm)
	if err != nil {
		return "", false, fmt.Errorf("render template %s: %w", route.templateKey, err)
	}
	return markup, true, nil
}
