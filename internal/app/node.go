package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/catalog"  //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/detector" //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/report"   //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/watcher"  //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/dispatcher"
	"go.trai.ch/kiln/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			catalog.NodeID,
			detector.NodeID,
			resolver.NodeID,
			dispatcher.NodeID,
			fs.HasherNodeID,
			report.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.DescriptorLoader](ctx)
	if err != nil {
		return nil, err
	}

	recipes, err := graft.Dep[ports.RecipeCatalog](ctx)
	if err != nil {
		return nil, err
	}

	host, err := graft.Dep[ports.SettingsDetector](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	disp, err := graft.Dep[*dispatcher.Dispatcher](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	reporter, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, recipes, host, res, disp, hasher, reporter, w, log), nil
}
