package main

import (
	"fmt"
	"os"

	"github.com/propdesk/propdesk/api"
	"github.com/propdesk/propdesk/gate"
	"github.com/propdesk/propdesk/internal/config"
	"github.com/propdesk/propdesk/session"
)

// app wires the session store, the API client, and the route gate together
// once per invocation.
type app struct {
	cfg    config.Config
	store  session.Store
	client *api.Client
	gate   *gate.Gate
}

func newApp() (*app, error) {
	cfg := config.New()

	store, err := session.NewFileStore(cfg.GetDataFolder())
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	boundary := api.BoundaryFunc(func() {
		fmt.Fprintln(os.Stderr, "Session expired. Please login again.")
	})

	client := api.New(cfg.GetAPIBaseURL(), store,
		api.WithBoundary(boundary),
		api.WithTimeout(cfg.GetRequestTimeout()),
	)

	return &app{
		cfg:    cfg,
		store:  store,
		client: client,
		gate:   gate.New(store, gate.Routes()),
	}, nil
}

// guard evaluates the route gate for a screen before its command runs,
// exactly as the browser evaluated it before mounting a protected view.
func (a *app) guard(route string) error {
	outcome := a.gate.Evaluate(route)
	switch outcome.Decision {
	case gate.Render:
		return nil
	case gate.RedirectLogin:
		return fmt.Errorf("not logged in (redirect to /login); run 'console login' first")
	case gate.RedirectUnauthorized:
		return fmt.Errorf("role %s is not permitted to view %s (redirect to /unauthorized)", outcome.Role, route)
	}
	return fmt.Errorf("unexpected gate decision for %s", route)
}
