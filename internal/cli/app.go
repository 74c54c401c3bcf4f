package cli

import (
	"io"
	"log"

	"toolkeep/internal/backend"
	"toolkeep/internal/gitx"
	"toolkeep/internal/logx"
	"toolkeep/internal/netfetch"
	"toolkeep/internal/orch"
	"toolkeep/internal/paths"
	"toolkeep/internal/pkgmgr"
	"toolkeep/internal/registry"
	"toolkeep/internal/settings"
	"toolkeep/internal/tui"
)

// app bundles the wired components for one invocation. The install root is
// resolved at most once, up front, and passed by value from here on.
type app struct {
	paths       paths.StatePaths
	store       *registry.Store
	orch        *orch.Orchestrator
	installRoot string
	logger      *log.Logger
	logCloser   io.Closer
}

// newApp resolves state paths and wires the store and orchestrator. When
// needRoot is set the install root is resolved (prompting on first use when
// stdin is a terminal, failing fast otherwise); commands that only touch the
// registry file skip that.
func newApp(needRoot bool) (*app, error) {
	pp, err := paths.Resolve()
	if err != nil {
		return nil, err
	}
	if err := pp.EnsureRoot(); err != nil {
		return nil, err
	}

	logger, closer, err := logx.New(pp)
	if err != nil {
		return nil, err
	}

	installRoot := ""
	if needRoot {
		var prompter settings.Prompter
		if tui.StdinInteractive() {
			prompter = tui.Prompt{}
		}
		resolver := settings.NewResolver(pp.SettingsFile, prompter)
		installRoot, err = resolver.InstallRoot()
		if err != nil {
			closer.Close()
			return nil, err
		}
	}

	store := registry.NewStore(pp.RegistryFile, installRoot)

	client := netfetch.NewClient()
	backends := backend.NewSet(backend.Deps{
		Fetcher:  client,
		Releases: client,
		VCS:      gitx.Client{},
		Packages: pkgmgr.NewApt(),
	})

	return &app{
		paths:       pp,
		store:       store,
		orch:        orch.New(store, backends, installRoot, logger),
		installRoot: installRoot,
		logger:      logger,
		logCloser:   closer,
	}, nil
}

func (a *app) Close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}
