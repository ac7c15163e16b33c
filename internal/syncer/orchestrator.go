package syncer

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	sserrors "github.com/stackmill/secretsync/internal/errors"
	"github.com/stackmill/secretsync/internal/logging"
	"github.com/stackmill/secretsync/internal/paths"
	"github.com/stackmill/secretsync/internal/secretsfile"
	"github.com/stackmill/secretsync/internal/state"
	"github.com/stackmill/secretsync/internal/store"
)

// Per-entry work runs concurrently; the cap keeps us clear of SSM throttling
const maxConcurrent = 8

// Outcome reports what happened to one entry during deploy or plan
type Outcome struct {
	Name   string
	Status Status
	Err    error
}

// Request carries the configuration resolved for one operation. It is built
// fresh per call; the orchestrator holds no ambient per-operation state.
type Request struct {
	Service    string
	Stage      string
	File       string // secrets file path, empty when not configured
	PathPrefix string // explicit namespace prefix override, usually empty
}

// Orchestrator drives deploy, remove, pull and plan against one store
type Orchestrator struct {
	store  store.ParameterStore
	state  state.Store
	logger *logging.Logger
}

// New creates an orchestrator
func New(st store.ParameterStore, states state.Store, logger *logging.Logger) *Orchestrator {
	return &Orchestrator{
		store:  st,
		state:  states,
		logger: logger,
	}
}

// Deploy syncs the local secrets file into the store, writing only entries
// whose value drifted. A missing secrets file is an empty document, not an
// error. Every entry is attempted; write failures are collected and returned
// as one aggregate error after the batch.
func (o *Orchestrator) Deploy(ctx context.Context, req Request) ([]Outcome, error) {
	doc, prefix, err := o.loadLocal(req)
	if err != nil {
		return nil, err
	}

	names := doc.Names()
	outcomes := make([]Outcome, len(names))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrent)

	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			outcomes[i] = o.deployEntry(ctx, doc, prefix, name)
		}(i, name)
	}

	wg.Wait()

	var failures []error
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", outcome.Name, outcome.Err))
		}
	}

	// Record the prefix even on partial failure: parameters were written
	// under it and remove must be able to find them.
	if err := o.state.RecordPrefix(req.Service, req.Stage, prefix); err != nil {
		o.logger.Warn("Failed to record deployed prefix: %v", err)
	}

	if len(failures) > 0 {
		if len(failures) == 1 {
			return outcomes, failures[0]
		}
		return outcomes, sserrors.UserError{
			Message:    fmt.Sprintf("Failed to write %d of %d secrets", len(failures), len(names)),
			Details:    fmt.Sprintf("%v", failures),
			Suggestion: "Fix the errors above and deploy again; unchanged entries will be skipped",
		}
	}

	return outcomes, nil
}

// deployEntry diffs one entry and writes it when changed
func (o *Orchestrator) deployEntry(ctx context.Context, doc *secretsfile.Document, prefix, name string) Outcome {
	value, _ := doc.Get(name)
	path := paths.Join(prefix, name)

	if !HasChanged(ctx, o.store, path, value) {
		o.logger.Info("Secret %s is unchanged", name)
		return Outcome{Name: name, Status: StatusUnchanged}
	}

	raw, err := secretsfile.EncodeValue(value)
	if err != nil {
		o.logger.Error("Secret %s could not be serialized: %v", name, err)
		return Outcome{Name: name, Status: StatusChanged, Err: err}
	}

	if err := o.store.Put(ctx, path, raw); err != nil {
		o.logger.Error("Secret %s failed to update: %v", name, err)
		return Outcome{Name: name, Status: StatusChanged, Err: err}
	}

	o.logger.Info("Secret %s has changed, updating %s", name, path)
	return Outcome{Name: name, Status: StatusChanged}
}

// Remove deletes every parameter under the prefix recorded by the last
// deploy. Without a recorded prefix there is nothing to remove and no remote
// call is made.
func (o *Orchestrator) Remove(ctx context.Context, req Request) (int, string, error) {
	prefix, ok, err := o.state.DeployedPrefix(req.Service, req.Stage)
	if err != nil {
		return 0, "", err
	}
	if !ok {
		o.logger.Info("No deployed secrets recorded for %s-%s, nothing to remove", req.Service, req.Stage)
		return 0, "", nil
	}

	parameters, err := o.store.ListByPath(ctx, prefix, false)
	if err != nil {
		return 0, prefix, err
	}

	if len(parameters) > 0 {
		pathList := make([]string, len(parameters))
		for i, p := range parameters {
			pathList[i] = p.Path
		}

		if err := o.store.Delete(ctx, pathList); err != nil {
			return 0, prefix, err
		}
	}

	if err := o.state.ClearPrefix(req.Service, req.Stage); err != nil {
		o.logger.Warn("Failed to clear deployed prefix record: %v", err)
	}

	o.logger.Info("Removed %d secrets under %s", len(parameters), prefix)
	return len(parameters), prefix, nil
}

// Pull fetches every parameter under the namespace prefix and overwrites the
// local secrets file with the assembled document.
func (o *Orchestrator) Pull(ctx context.Context, req Request) error {
	if req.File == "" {
		return missingFileError()
	}

	prefix := paths.Resolve(req.PathPrefix, req.Service, req.Stage)

	parameters, err := o.store.ListByPath(ctx, prefix, true)
	if err != nil {
		return err
	}

	// Sort by path so the written file is reproducible across pulls
	sort.Slice(parameters, func(i, j int) bool {
		return parameters[i].Path < parameters[j].Path
	})

	doc := secretsfile.NewDocument()
	for _, p := range parameters {
		name := paths.Name(prefix, p.Path)
		value, err := secretsfile.DecodeValue(p.Value)
		if err != nil {
			return sserrors.UserError{
				Message:    fmt.Sprintf("Failed to decode remote value for '%s'", name),
				Details:    err.Error(),
				Suggestion: "The stored value is not valid YAML; fix or remove the parameter and pull again",
				Err:        err,
			}
		}
		doc.Set(name, value)
	}

	content, err := secretsfile.Encode(doc)
	if err != nil {
		return err
	}

	if err := os.WriteFile(req.File, content, 0600); err != nil {
		return fmt.Errorf("failed to write secrets file: %w", err)
	}

	o.logger.Info("Pulled %d secrets from %s into %s", doc.Len(), prefix, req.File)
	return nil
}

// Plan classifies every entry without writing anything
func (o *Orchestrator) Plan(ctx context.Context, req Request) ([]Outcome, error) {
	doc, prefix, err := o.loadLocal(req)
	if err != nil {
		return nil, err
	}

	names := doc.Names()
	outcomes := make([]Outcome, len(names))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrent)

	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			value, _ := doc.Get(name)
			status := Classify(ctx, o.store, paths.Join(prefix, name), value)
			outcomes[i] = Outcome{Name: name, Status: status}
		}(i, name)
	}

	wg.Wait()
	return outcomes, nil
}

// loadLocal resolves the prefix and reads the secrets file for deploy and
// plan. A configured-but-missing file yields an empty document.
func (o *Orchestrator) loadLocal(req Request) (*secretsfile.Document, string, error) {
	if req.File == "" {
		return nil, "", missingFileError()
	}

	prefix := paths.Resolve(req.PathPrefix, req.Service, req.Stage)

	doc, err := secretsfile.Load(req.File)
	if err != nil {
		if os.IsNotExist(err) {
			o.logger.Warn("Secrets file %s does not exist, treating as empty", req.File)
			return secretsfile.NewDocument(), prefix, nil
		}
		return nil, "", err
	}

	return doc, prefix, nil
}

func missingFileError() error {
	return sserrors.ConfigError{
		Field:      "secrets.file",
		Message:    "no secrets file configured",
		Suggestion: "Set 'secrets.file: secrets.<stage>.yaml' in your secretsync.yaml",
	}
}
