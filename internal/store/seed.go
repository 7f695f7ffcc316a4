package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"contracting/internal/core"
)

//go:embed seed_default.json
var defaultSeed []byte

// Dataset is a fixture of records to load into an empty store. Ids in the
// fixture only link records to each other; the store assigns its own.
type Dataset struct {
	Clients    []core.Client    `json:"clients"`
	Projects   []core.Project   `json:"projects"`
	Statements []core.Statement `json:"statements"`
	Suppliers  []core.Supplier  `json:"suppliers"`
	Employees  []core.Employee  `json:"employees"`
	Equipment  []core.Equipment `json:"equipment"`
	Payments   []core.Payment   `json:"payments"`
}

// DefaultDataset returns the demo records shipped with the binary.
func DefaultDataset() Dataset {
	var ds Dataset
	if err := json.Unmarshal(defaultSeed, &ds); err != nil {
		panic(fmt.Sprintf("embedded seed is invalid: %v", err))
	}
	return ds
}

// LoadDataset reads a fixture from path, falling back to the default
// dataset when path is empty.
func LoadDataset(path string) (Dataset, error) {
	if path == "" {
		return DefaultDataset(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read seed file: %w", err)
	}
	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return ds, nil
}

// Seed inserts every record of ds into s, remapping clientId and projectId
// references onto the ids s assigns.
func Seed(ctx context.Context, s Store, ds Dataset) error {
	clientIDs := make(map[int64]int64, len(ds.Clients))
	for _, c := range ds.Clients {
		saved, err := s.Clients().Insert(ctx, c)
		if err != nil {
			return fmt.Errorf("seed client %q: %w", c.Name, err)
		}
		clientIDs[c.ID] = saved.ID
	}

	projectIDs := make(map[int64]int64, len(ds.Projects))
	for _, p := range ds.Projects {
		id, ok := clientIDs[p.ClientID]
		if !ok {
			return fmt.Errorf("seed project %q: unknown client %d", p.Code, p.ClientID)
		}
		p.ClientID = id
		saved, err := s.Projects().Insert(ctx, p)
		if err != nil {
			return fmt.Errorf("seed project %q: %w", p.Code, err)
		}
		projectIDs[p.ID] = saved.ID
	}

	for _, st := range ds.Statements {
		id, ok := projectIDs[st.ProjectID]
		if !ok {
			return fmt.Errorf("seed statement %q: unknown project %d", st.Number, st.ProjectID)
		}
		st.ProjectID = id
		if _, err := s.Statements().Insert(ctx, st); err != nil {
			return fmt.Errorf("seed statement %q: %w", st.Number, err)
		}
	}

	if err := insertAll(ctx, s.Suppliers(), ds.Suppliers); err != nil {
		return fmt.Errorf("seed suppliers: %w", err)
	}
	if err := insertAll(ctx, s.Employees(), ds.Employees); err != nil {
		return fmt.Errorf("seed employees: %w", err)
	}
	if err := insertAll(ctx, s.Equipment(), ds.Equipment); err != nil {
		return fmt.Errorf("seed equipment: %w", err)
	}
	if err := insertAll(ctx, s.Payments(), ds.Payments); err != nil {
		return fmt.Errorf("seed payments: %w", err)
	}
	return nil
}

func insertAll[T any](ctx context.Context, c Collection[T], recs []T) error {
	for _, r := range recs {
		if _, err := c.Insert(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
