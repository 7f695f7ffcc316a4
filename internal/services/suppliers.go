package services

import (
	"context"
	"fmt"

	"contracting/internal/core"
)

func (s *Service) ListSuppliers(ctx context.Context) ([]core.Supplier, error) {
	suppliers, err := s.store.Suppliers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

// CreateSupplier stores a supplier with a zero balance unless one is given.
func (s *Service) CreateSupplier(ctx context.Context, in core.SupplierInput) (core.Supplier, error) {
	company, ok := core.Text(in.CompanyName)
	if !ok {
		return core.Supplier{}, core.Validation(core.MsgSupplierRequired)
	}
	sup := core.Supplier{
		CompanyName:   company,
		ContactPerson: optionalText(in.ContactPerson),
		Phone:         optionalText(in.Phone),
		Email:         optionalText(in.Email),
		Materials:     optionalText(in.Materials),
		PaymentTerms:  optionalText(in.PaymentTerms),
	}
	setNumber(in.Balance, &sup.Balance)
	return insert(ctx, s, s.store.Suppliers(), EntitySupplier, sup, func(sup core.Supplier) int64 { return sup.ID })
}

func (s *Service) UpdateSupplier(ctx context.Context, id int64, in core.SupplierInput) (core.Supplier, error) {
	return update(ctx, s, s.store.Suppliers(), EntitySupplier, core.MsgSupplierMissing, id, func(sup *core.Supplier) error {
		if !setText(in.CompanyName, &sup.CompanyName) {
			return core.Validation(core.MsgSupplierRequired)
		}
		in.ContactPerson.Assign(&sup.ContactPerson)
		in.Phone.Assign(&sup.Phone)
		in.Email.Assign(&sup.Email)
		in.Materials.Assign(&sup.Materials)
		in.PaymentTerms.Assign(&sup.PaymentTerms)
		setNumber(in.Balance, &sup.Balance)
		return nil
	})
}

func (s *Service) DeleteSupplier(ctx context.Context, id int64) (core.Supplier, error) {
	return remove(ctx, s, s.store.Suppliers(), EntitySupplier, core.MsgSupplierMissing, id)
}
