package services

import (
	"context"
	"fmt"

	"contracting/internal/core"
)

func (s *Service) ListPayments(ctx context.Context) ([]core.Payment, error) {
	payments, err := s.store.Payments().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// CreatePayment requires type, amount, date, method and status. The enums
// are checked for membership after presence.
func (s *Service) CreatePayment(ctx context.Context, in core.PaymentInput) (core.Payment, error) {
	date, okDate := core.Text(in.Date)
	if !in.Type.Ok() || in.Type.Value == "" || !in.Amount.Ok() || !okDate ||
		!in.PaymentMethod.Ok() || in.PaymentMethod.Value == "" ||
		!in.Status.Ok() || in.Status.Value == "" {
		return core.Payment{}, core.Validation(core.MsgPaymentRequired)
	}
	if !in.Type.Value.Valid() || !in.PaymentMethod.Value.Valid() || !in.Status.Value.Valid() {
		return core.Payment{}, core.Validation(core.MsgInvalidStatus)
	}
	return insert(ctx, s, s.store.Payments(), EntityPayment, core.Payment{
		Type:          in.Type.Value,
		Amount:        in.Amount.Value,
		Date:          date,
		DueDate:       optionalText(in.DueDate),
		Description:   optionalText(in.Description),
		PaymentMethod: in.PaymentMethod.Value,
		Status:        in.Status.Value,
		RelatedParty:  optionalText(in.RelatedParty),
	}, func(p core.Payment) int64 { return p.ID })
}

func (s *Service) UpdatePayment(ctx context.Context, id int64, in core.PaymentInput) (core.Payment, error) {
	return update(ctx, s, s.store.Payments(), EntityPayment, core.MsgPaymentMissing, id, func(p *core.Payment) error {
		if !setText(in.Date, &p.Date) {
			return core.Validation(core.MsgPaymentRequired)
		}
		if err := setEnum(in.Type, &p.Type, core.PaymentType.Valid); err != nil {
			return err
		}
		if err := setEnum(in.PaymentMethod, &p.PaymentMethod, core.PaymentMethod.Valid); err != nil {
			return err
		}
		if err := setEnum(in.Status, &p.Status, core.PaymentStatus.Valid); err != nil {
			return err
		}
		setNumber(in.Amount, &p.Amount)
		in.DueDate.Assign(&p.DueDate)
		in.Description.Assign(&p.Description)
		in.RelatedParty.Assign(&p.RelatedParty)
		return nil
	})
}

func (s *Service) DeletePayment(ctx context.Context, id int64) (core.Payment, error) {
	return remove(ctx, s, s.store.Payments(), EntityPayment, core.MsgPaymentMissing, id)
}
