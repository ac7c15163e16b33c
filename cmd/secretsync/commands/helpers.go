package commands

import (
	"fmt"

	"github.com/stackmill/secretsync/internal/config"
	"github.com/stackmill/secretsync/internal/state"
	"github.com/stackmill/secretsync/internal/store"
	"github.com/stackmill/secretsync/internal/syncer"
)

// newOrchestrator loads the configuration and wires the store, state record
// and orchestrator for one command invocation.
func newOrchestrator(cfg *config.Config) (*syncer.Orchestrator, syncer.Request, error) {
	if err := cfg.Load(); err != nil {
		return nil, syncer.Request{}, fmt.Errorf("failed to load config: %w", err)
	}

	def := cfg.Definition

	ssmStore, err := store.NewSSMStore(store.SSMConfig{
		Region:  def.Region,
		Profile: def.Profile,
	}, cfg.Logger)
	if err != nil {
		return nil, syncer.Request{}, err
	}

	states := state.NewFileStore(state.DefaultStateDir())
	orch := syncer.New(ssmStore, states, cfg.Logger)

	req := syncer.Request{
		Service:    def.Service,
		Stage:      cfg.EffectiveStage(),
		File:       def.Secrets.File,
		PathPrefix: def.Secrets.SSMPath,
	}

	return orch, req, nil
}
