package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-barry/vista/helper"
	"go.uber.org/zap"
)

// Action turns the arguments captured by a route into a view.
type Action func(ctx context.Context, app *App, args []string) (*View, error)

// App ties the route table, actions, views and state together. It is
// passed explicitly to whatever owns the request lifecycle.
type App struct {
	Config  Config
	Routes  *RouteTable
	Views   *ViewRegistry
	Actions map[string]Action
	Fetcher *Fetcher
	State   *AppState
	Logger  *zap.Logger
}

func NewApp(config Config, logger *zap.Logger) *App {
	logger = loggerOrNop(logger)
	return &App{
		Config:  config,
		Routes:  DefaultRouteTable(),
		Views:   DefaultViewRegistry(),
		Actions: DefaultActions(),
		Fetcher: NewFetcher(config, logger),
		State:   NewAppState(),
		Logger:  logger,
	}
}

func DefaultActions() map[string]Action {
	return map[string]Action{
		"home":        homeAction,
		"about":       aboutAction,
		"transitAdd":  transitAddAction,
		"transitEdit": transitEditAction,
		"transitShow": transitShowAction,
	}
}

// Navigate resolves fragment to a view and makes it current. A navigation
// overtaken by a newer one still returns its view, together with ErrStale.
func (a *App) Navigate(ctx context.Context, fragment string) (*View, error) {
	route, args, ok := a.Routes.Match(fragment)
	if !ok {
		return nil, fmt.Errorf("no route for %q: %w", fragment, ErrNotFound)
	}

	action, ok := a.Actions[route.Handler]
	if !ok {
		return nil, fmt.Errorf("route %q has no action %q", route.Pattern, route.Handler)
	}

	nav := a.State.Begin(fragment)
	log := a.Logger.With(
		zap.String("navigation", nav.ID),
		zap.String("fragment", fragment),
		zap.String("handler", route.Handler),
	)

	view, err := action(ctx, a, args)
	if err != nil {
		log.Debug("navigation failed", zap.Error(err))
		return nil, err
	}

	if err := a.State.Apply(nav, view); err != nil {
		log.Debug("discarding superseded view", zap.String("view", view.Name))
		return view, err
	}

	log.Debug("view applied", zap.String("view", view.Name))
	return view, nil
}

func (a *App) fetchSource(ctx context.Context, source string) (any, error) {
	name := a.Config.Source(source)
	if name == "" {
		return nil, fmt.Errorf("no data source %q configured", source)
	}
	return a.Fetcher.Fetch(ctx, name).Await(ctx)
}

func homeAction(ctx context.Context, app *App, args []string) (*View, error) {
	params, err := MergeParams(app.Config.Defaults)
	if err != nil {
		return nil, err
	}
	return app.Views.New("HomeView", params)
}

func aboutAction(ctx context.Context, app *App, args []string) (*View, error) {
	data, err := app.fetchSource(ctx, "about")
	if err != nil {
		return nil, err
	}
	return app.Views.New("AboutView", map[string]any{"aboutData": data})
}

func transitAddAction(ctx context.Context, app *App, args []string) (*View, error) {
	var query helper.Params
	if len(args) > 0 {
		query = helper.ParseQueryString(args[len(args)-1])
	}

	data, err := app.fetchSource(ctx, "transit")
	if err != nil {
		return nil, err
	}

	params, err := MergeParams(app.Config.Defaults, query, data)
	if err != nil {
		return nil, err
	}
	return app.Views.New("TransitAddView", params)
}

func transitEditAction(ctx context.Context, app *App, args []string) (*View, error) {
	return transitModelView(app, "TransitAddView", args)
}

func transitShowAction(ctx context.Context, app *App, args []string) (*View, error) {
	return transitModelView(app, "TransitShowView", args)
}

// There is no persistence behind an id, so the model is always empty.
func transitModelView(app *App, name string, args []string) (*View, error) {
	if len(args) == 0 {
		return nil, errors.New("transit view requires an id")
	}
	return app.Views.New(name, map[string]any{"id": args[0], "model": nil})
}
