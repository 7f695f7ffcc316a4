package services

import (
	"context"
	"errors"
	"fmt"

	"contracting/internal/core"
)

// ListStatements returns every statement joined with its project.
func (s *Service) ListStatements(ctx context.Context) ([]core.StatementView, error) {
	statements, err := s.store.Statements().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list statements: %w", err)
	}
	projects, err := s.store.Projects().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	byID := make(map[int64]core.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}
	views := make([]core.StatementView, len(statements))
	for i, st := range statements {
		views[i] = core.StatementView{Statement: st}
		if p, ok := byID[st.ProjectID]; ok {
			views[i].Project = &p
		}
	}
	return views, nil
}

func (s *Service) CreateStatement(ctx context.Context, in core.StatementInput) (core.Statement, error) {
	number, okNumber := core.Text(in.Number)
	date, okDate := core.Text(in.Date)
	if !in.ProjectID.Ok() || in.ProjectID.Value == 0 || !okNumber || !in.Amount.Ok() || !okDate {
		return core.Statement{}, core.Validation(core.MsgStatementRequired)
	}
	status, err := enumOrDefault(in.Status, core.StatementReview, core.StatementStatus.Valid)
	if err != nil {
		return core.Statement{}, err
	}

	s.refMu.Lock()
	defer s.refMu.Unlock()

	if err := s.requireProject(ctx, in.ProjectID.Value); err != nil {
		return core.Statement{}, err
	}
	return insert(ctx, s, s.store.Statements(), EntityStatement, core.Statement{
		ProjectID:   in.ProjectID.Value,
		Number:      number,
		Amount:      in.Amount.Value,
		Date:        date,
		Description: optionalText(in.Description),
		Status:      status,
	}, func(st core.Statement) int64 { return st.ID })
}

func (s *Service) UpdateStatement(ctx context.Context, id int64, in core.StatementInput) (core.Statement, error) {
	s.refMu.Lock()
	defer s.refMu.Unlock()

	if _, err := s.store.Statements().Find(ctx, id); err != nil {
		return core.Statement{}, storeErr(err, core.MsgStatementMissing, "update statement")
	}
	if in.ProjectID.Present {
		if !in.ProjectID.Ok() {
			return core.Statement{}, core.Reference(core.MsgStatementProject)
		}
		if err := s.requireProject(ctx, in.ProjectID.Value); err != nil {
			return core.Statement{}, err
		}
	}

	return update(ctx, s, s.store.Statements(), EntityStatement, core.MsgStatementMissing, id, func(st *core.Statement) error {
		if !setText(in.Number, &st.Number) || !setText(in.Date, &st.Date) {
			return core.Validation(core.MsgStatementRequired)
		}
		if err := setEnum(in.Status, &st.Status, core.StatementStatus.Valid); err != nil {
			return err
		}
		if in.ProjectID.Ok() {
			st.ProjectID = in.ProjectID.Value
		}
		setNumber(in.Amount, &st.Amount)
		in.Description.Assign(&st.Description)
		return nil
	})
}

func (s *Service) DeleteStatement(ctx context.Context, id int64) (core.Statement, error) {
	return remove(ctx, s, s.store.Statements(), EntityStatement, core.MsgStatementMissing, id)
}

func (s *Service) requireProject(ctx context.Context, id int64) error {
	_, err := s.store.Projects().Find(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, core.ErrNotFound):
		return core.Reference(core.MsgStatementProject)
	default:
		return fmt.Errorf("find project: %w", err)
	}
}
