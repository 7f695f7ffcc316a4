package services

import (
	"context"
	"fmt"

	"contracting/internal/core"
)

func (s *Service) ListClients(ctx context.Context) ([]core.Client, error) {
	clients, err := s.store.Clients().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// CreateClient stores a client. Only the name is required.
func (s *Service) CreateClient(ctx context.Context, in core.ClientInput) (core.Client, error) {
	name, ok := core.Text(in.Name)
	if !ok {
		return core.Client{}, core.Validation(core.MsgClientRequired)
	}
	return insert(ctx, s, s.store.Clients(), EntityClient, core.Client{
		Name:          name,
		ContactPerson: optionalText(in.ContactPerson),
		Phone:         optionalText(in.Phone),
		Email:         optionalText(in.Email),
		Address:       optionalText(in.Address),
	}, func(c core.Client) int64 { return c.ID })
}
