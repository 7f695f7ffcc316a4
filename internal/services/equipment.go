package services

import (
	"context"
	"fmt"

	"contracting/internal/core"
)

func (s *Service) ListEquipment(ctx context.Context) ([]core.Equipment, error) {
	equipment, err := s.store.Equipment().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return equipment, nil
}

func (s *Service) CreateEquipment(ctx context.Context, in core.EquipmentInput) (core.Equipment, error) {
	name, okName := core.Text(in.Name)
	kind, okType := core.Text(in.Type)
	if !okName || !okType || !in.DailyCost.Ok() {
		return core.Equipment{}, core.Validation(core.MsgEquipmentRequired)
	}
	status, err := enumOrDefault(in.Status, core.EquipmentAvailable, core.EquipmentStatus.Valid)
	if err != nil {
		return core.Equipment{}, err
	}
	return insert(ctx, s, s.store.Equipment(), EntityEquipment, core.Equipment{
		Name:            name,
		Type:            kind,
		DailyCost:       in.DailyCost.Value,
		MaintenanceDate: optionalText(in.MaintenanceDate),
		ProjectName:     optionalText(in.ProjectName),
		Status:          status,
	}, func(e core.Equipment) int64 { return e.ID })
}

func (s *Service) UpdateEquipment(ctx context.Context, id int64, in core.EquipmentInput) (core.Equipment, error) {
	return update(ctx, s, s.store.Equipment(), EntityEquipment, core.MsgEquipmentMissing, id, func(e *core.Equipment) error {
		if !setText(in.Name, &e.Name) || !setText(in.Type, &e.Type) {
			return core.Validation(core.MsgEquipmentRequired)
		}
		if err := setEnum(in.Status, &e.Status, core.EquipmentStatus.Valid); err != nil {
			return err
		}
		setNumber(in.DailyCost, &e.DailyCost)
		in.MaintenanceDate.Assign(&e.MaintenanceDate)
		in.ProjectName.Assign(&e.ProjectName)
		return nil
	})
}

func (s *Service) DeleteEquipment(ctx context.Context, id int64) (core.Equipment, error) {
	return remove(ctx, s, s.store.Equipment(), EntityEquipment, core.MsgEquipmentMissing, id)
}
