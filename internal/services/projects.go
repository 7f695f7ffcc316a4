package services

import (
	"context"
	"errors"
	"fmt"

	"contracting/internal/amqp"
	"contracting/internal/core"
	applog "contracting/internal/log"
)

// ListProjects returns every project joined with its client.
func (s *Service) ListProjects(ctx context.Context) ([]core.ProjectView, error) {
	projects, err := s.store.Projects().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	clients, err := s.store.Clients().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	byID := make(map[int64]core.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}
	views := make([]core.ProjectView, len(projects))
	for i, p := range projects {
		views[i] = core.ProjectView{Project: p}
		if c, ok := byID[p.ClientID]; ok {
			views[i].Client = &c
		}
	}
	return views, nil
}

func (s *Service) GetProject(ctx context.Context, id int64) (core.ProjectView, error) {
	p, err := s.store.Projects().Find(ctx, id)
	if err != nil {
		return core.ProjectView{}, storeErr(err, core.MsgProjectMissing, "get project")
	}
	view := core.ProjectView{Project: p}
	c, err := s.store.Clients().Find(ctx, p.ClientID)
	switch {
	case err == nil:
		view.Client = &c
	case !errors.Is(err, core.ErrNotFound):
		return core.ProjectView{}, fmt.Errorf("get project client: %w", err)
	}
	return view, nil
}

// CreateProject validates required fields, then the client reference, then
// code uniqueness.
func (s *Service) CreateProject(ctx context.Context, in core.ProjectInput) (core.Project, error) {
	code, okCode := core.Text(in.Code)
	name, okName := core.Text(in.Name)
	if !okCode || !okName || !in.ClientID.Ok() || in.ClientID.Value == 0 {
		return core.Project{}, core.Validation(core.MsgProjectRequired)
	}
	status, err := enumOrDefault(in.Status, core.ProjectPlanned, core.ProjectStatus.Valid)
	if err != nil {
		return core.Project{}, err
	}

	p := core.Project{
		Code:     code,
		Name:     name,
		ClientID: in.ClientID.Value,
		Status:   status,
		Location: optionalText(in.Location),
	}
	if in.Progress.Ok() {
		p.Progress = core.ClampProgress(in.Progress.Value)
	}
	if in.Budget.Ok() {
		budget := in.Budget.Value
		p.Budget = &budget
	}

	s.refMu.Lock()
	defer s.refMu.Unlock()

	if err := s.requireClient(ctx, p.ClientID); err != nil {
		return core.Project{}, err
	}
	if err := s.requireUniqueCode(ctx, code, 0); err != nil {
		return core.Project{}, err
	}
	return insert(ctx, s, s.store.Projects(), EntityProject, p, func(p core.Project) int64 { return p.ID })
}

// UpdateProject applies the fields present in in.
func (s *Service) UpdateProject(ctx context.Context, id int64, in core.ProjectInput) (core.Project, error) {
	s.refMu.Lock()
	defer s.refMu.Unlock()

	if _, err := s.store.Projects().Find(ctx, id); err != nil {
		return core.Project{}, storeErr(err, core.MsgProjectMissing, "update project")
	}

	if in.ClientID.Present {
		if !in.ClientID.Ok() {
			return core.Project{}, core.Reference(core.MsgClientNotFound)
		}
		if err := s.requireClient(ctx, in.ClientID.Value); err != nil {
			return core.Project{}, err
		}
	}
	if code, ok := core.Text(in.Code); ok {
		if err := s.requireUniqueCode(ctx, code, id); err != nil {
			return core.Project{}, err
		}
	}

	return update(ctx, s, s.store.Projects(), EntityProject, core.MsgProjectMissing, id, func(p *core.Project) error {
		if !setText(in.Code, &p.Code) || !setText(in.Name, &p.Name) {
			return core.Validation(core.MsgProjectRequired)
		}
		if err := setEnum(in.Status, &p.Status, core.ProjectStatus.Valid); err != nil {
			return err
		}
		if in.ClientID.Ok() {
			p.ClientID = in.ClientID.Value
		}
		if in.Progress.Ok() {
			p.Progress = core.ClampProgress(in.Progress.Value)
		}
		switch {
		case in.Budget.Ok():
			budget := in.Budget.Value
			p.Budget = &budget
		case in.Budget.Present && in.Budget.Null:
			p.Budget = nil
		}
		in.Location.Assign(&p.Location)
		return nil
	})
}

// DeleteProject removes the project and every statement referencing it.
func (s *Service) DeleteProject(ctx context.Context, id int64) (core.Project, error) {
	s.refMu.Lock()
	p, removed, err := s.store.RemoveProject(ctx, id)
	s.refMu.Unlock()
	if err != nil {
		return core.Project{}, storeErr(err, core.MsgProjectMissing, "delete project")
	}

	var cascaded []int64
	for _, st := range removed {
		cascaded = append(cascaded, st.ID)
	}
	s.changed(ctx, EntityProject, amqp.ActionDeleted, id, cascaded)
	for range removed {
		s.metrics.RecordMutation(EntityStatement, applog.OpDelete)
	}
	return p, nil
}

func (s *Service) requireClient(ctx context.Context, id int64) error {
	_, err := s.store.Clients().Find(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, core.ErrNotFound):
		return core.Reference(core.MsgClientNotFound)
	default:
		return fmt.Errorf("find client: %w", err)
	}
}

// requireUniqueCode rejects code when another project than self uses it.
func (s *Service) requireUniqueCode(ctx context.Context, code string, self int64) error {
	projects, err := s.store.Projects().List(ctx)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	for _, p := range projects {
		if p.Code == code && p.ID != self {
			return core.Conflict(core.MsgDuplicateCode)
		}
	}
	return nil
}
