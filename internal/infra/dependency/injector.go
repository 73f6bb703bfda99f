// Package dependency wires configuration into the client's component tree.
// The record store client is constructed here and passed down explicitly;
// nothing in the tree reaches for a package-level singleton.
package dependency

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/finpilot/client/config"
	"github.com/finpilot/client/internal/application/adapter"
	"github.com/finpilot/client/internal/application/usecase/rule"
	"github.com/finpilot/client/internal/application/usecase/table"
	"github.com/finpilot/client/internal/application/usecase/transaction"
	"github.com/finpilot/client/internal/domain/entity"
	"github.com/finpilot/client/internal/infra/fakestore"
	"github.com/finpilot/client/internal/integration/auth"
	"github.com/finpilot/client/internal/integration/recordstore"
)

// Injector holds the fully wired component tree.
type Injector struct {
	Config *config.Config
	Store  adapter.RecordStore

	List  *transaction.ListController
	Table *table.Controller
	Rules *rule.Controller

	demoServer *http.Server
}

// New builds the component tree. In demo mode an embedded fake record store
// is started on a loopback port and the client pointed at it.
func New(cfg *config.Config) (*Injector, error) {
	baseURL := cfg.API.BaseURL
	injector := &Injector{Config: cfg}

	if cfg.Demo.Enabled {
		demoURL, err := injector.startDemoStore(cfg.Demo.Seed)
		if err != nil {
			return nil, fmt.Errorf("failed to start demo store: %w", err)
		}
		baseURL = demoURL
		slog.Info("Demo record store started", "url", baseURL)
	}

	tokens := auth.NewStaticTokenSource(cfg.Auth.Token, cfg.Auth.ExpiryWarnAhead)
	injector.Store = recordstore.NewClient(baseURL, cfg.API.RequestTimeout, recordstore.WithTokenSource(tokens))

	injector.List = transaction.NewListController(injector.Store, nil)
	injector.Table = table.NewController(injector.Store, func(updated *entity.Transaction) {
		injector.List.Replace(updated)
	})
	injector.Rules = rule.NewController(injector.Store)
	return injector, nil
}

// Close shuts down the embedded demo store, if one was started.
func (i *Injector) Close() error {
	if i.demoServer != nil {
		return i.demoServer.Close()
	}
	return nil
}

func (i *Injector) startDemoStore(seed bool) (string, error) {
	server, err := fakestore.NewServer()
	if err != nil {
		return "", err
	}
	if seed {
		if err := server.Seed(); err != nil {
			return "", err
		}
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}

	i.demoServer = &http.Server{Handler: server.Handler()}
	go func() {
		if err := i.demoServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			slog.Error("Demo store stopped unexpectedly", "error", err)
		}
	}()

	return "http://" + listener.Addr().String() + "/api/v1", nil
}
