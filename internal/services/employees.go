package services

import (
	"context"
	"fmt"

	"contracting/internal/core"
)

func (s *Service) ListEmployees(ctx context.Context) ([]core.Employee, error) {
	employees, err := s.store.Employees().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (s *Service) CreateEmployee(ctx context.Context, in core.EmployeeInput) (core.Employee, error) {
	name, okName := core.Text(in.Name)
	job, okJob := core.Text(in.JobTitle)
	specialization, okSpec := core.Text(in.Specialization)
	if !okName || !okJob || !okSpec || !in.DailyWage.Ok() {
		return core.Employee{}, core.Validation(core.MsgEmployeeRequired)
	}
	status, err := enumOrDefault(in.Status, core.EmployeeActive, core.EmployeeStatus.Valid)
	if err != nil {
		return core.Employee{}, err
	}
	return insert(ctx, s, s.store.Employees(), EntityEmployee, core.Employee{
		Name:           name,
		JobTitle:       job,
		Specialization: specialization,
		DailyWage:      in.DailyWage.Value,
		Phone:          optionalText(in.Phone),
		ProjectName:    optionalText(in.ProjectName),
		Status:         status,
	}, func(e core.Employee) int64 { return e.ID })
}

func (s *Service) UpdateEmployee(ctx context.Context, id int64, in core.EmployeeInput) (core.Employee, error) {
	return update(ctx, s, s.store.Employees(), EntityEmployee, core.MsgEmployeeMissing, id, func(e *core.Employee) error {
		if !setText(in.Name, &e.Name) || !setText(in.JobTitle, &e.JobTitle) || !setText(in.Specialization, &e.Specialization) {
			return core.Validation(core.MsgEmployeeRequired)
		}
		if err := setEnum(in.Status, &e.Status, core.EmployeeStatus.Valid); err != nil {
			return err
		}
		setNumber(in.DailyWage, &e.DailyWage)
		in.Phone.Assign(&e.Phone)
		in.ProjectName.Assign(&e.ProjectName)
		return nil
	})
}

func (s *Service) DeleteEmployee(ctx context.Context, id int64) (core.Employee, error) {
	return remove(ctx, s, s.store.Employees(), EntityEmployee, core.MsgEmployeeMissing, id)
}
