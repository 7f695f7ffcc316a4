package http

import (
	"context"
	"errors"
	"net/http"

	"contracting/internal/core"
	applog "contracting/internal/log"
	"contracting/internal/services"
)

func (s *Server) resourceRoutes(mux *http.ServeMux) {
	res := s.resources

	mux.HandleFunc("GET /api/clients", list(s, services.EntityClient, res.ListClients))
	mux.HandleFunc("POST /api/clients", create(s, services.EntityClient, res.CreateClient))

	mux.HandleFunc("GET /api/projects", list(s, services.EntityProject, res.ListProjects))
	mux.HandleFunc("GET /api/projects/{id}", get(s, services.EntityProject, core.MsgProjectMissing, res.GetProject))
	mux.HandleFunc("POST /api/projects", create(s, services.EntityProject, res.CreateProject))
	mux.HandleFunc("PATCH /api/projects/{id}", update(s, services.EntityProject, core.MsgProjectMissing, res.UpdateProject))
	mux.HandleFunc("DELETE /api/projects/{id}", remove(s, services.EntityProject, core.MsgProjectMissing, res.DeleteProject))

	mux.HandleFunc("GET /api/statements", list(s, services.EntityStatement, res.ListStatements))
	mux.HandleFunc("POST /api/statements", create(s, services.EntityStatement, res.CreateStatement))
	mux.HandleFunc("PATCH /api/statements/{id}", update(s, services.EntityStatement, core.MsgStatementMissing, res.UpdateStatement))
	mux.HandleFunc("DELETE /api/statements/{id}", remove(s, services.EntityStatement, core.MsgStatementMissing, res.DeleteStatement))

	mux.HandleFunc("GET /api/suppliers", list(s, services.EntitySupplier, res.ListSuppliers))
	mux.HandleFunc("POST /api/suppliers", create(s, services.EntitySupplier, res.CreateSupplier))
	mux.HandleFunc("PATCH /api/suppliers/{id}", update(s, services.EntitySupplier, core.MsgSupplierMissing, res.UpdateSupplier))
	mux.HandleFunc("DELETE /api/suppliers/{id}", remove(s, services.EntitySupplier, core.MsgSupplierMissing, res.DeleteSupplier))

	mux.HandleFunc("GET /api/employees", list(s, services.EntityEmployee, res.ListEmployees))
	mux.HandleFunc("POST /api/employees", create(s, services.EntityEmployee, res.CreateEmployee))
	mux.HandleFunc("PATCH /api/employees/{id}", update(s, services.EntityEmployee, core.MsgEmployeeMissing, res.UpdateEmployee))
	mux.HandleFunc("DELETE /api/employees/{id}", remove(s, services.EntityEmployee, core.MsgEmployeeMissing, res.DeleteEmployee))

	mux.HandleFunc("GET /api/equipment", list(s, services.EntityEquipment, res.ListEquipment))
	mux.HandleFunc("POST /api/equipment", create(s, services.EntityEquipment, res.CreateEquipment))
	mux.HandleFunc("PATCH /api/equipment/{id}", update(s, services.EntityEquipment, core.MsgEquipmentMissing, res.UpdateEquipment))
	mux.HandleFunc("DELETE /api/equipment/{id}", remove(s, services.EntityEquipment, core.MsgEquipmentMissing, res.DeleteEquipment))

	mux.HandleFunc("GET /api/payments", list(s, services.EntityPayment, res.ListPayments))
	mux.HandleFunc("POST /api/payments", create(s, services.EntityPayment, res.CreatePayment))
	mux.HandleFunc("PATCH /api/payments/{id}", update(s, services.EntityPayment, core.MsgPaymentMissing, res.UpdatePayment))
	mux.HandleFunc("DELETE /api/payments/{id}", remove(s, services.EntityPayment, core.MsgPaymentMissing, res.DeletePayment))
}

func list[T any](s *Server, entity string, fn func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := fn(r.Context())
		if err != nil {
			s.fail(w, r, err, entity, applog.OpList)
			return
		}
		if items == nil {
			items = []T{}
		}
		OK(items).Write(w)
	}
}

func get[T any](s *Server, entity, missing string, fn func(context.Context, int64) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := ParseID(r)
		if !ok {
			NotFoundError(missing).Write(w)
			return
		}
		rec, err := fn(r.Context(), id)
		if err != nil {
			s.fail(w, r, err, entity, applog.OpRead)
			return
		}
		OK(rec).Write(w)
	}
}

func create[In, Out any](s *Server, entity string, fn func(context.Context, In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := DecodeBody(w, r, &in); err != nil {
			writeBodyError(w, err)
			return
		}
		rec, err := fn(r.Context(), in)
		if err != nil {
			s.fail(w, r, err, entity, applog.OpCreate)
			return
		}
		Created(rec).Write(w)
	}
}

func update[In, Out any](s *Server, entity, missing string, fn func(context.Context, int64, In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := ParseID(r)
		if !ok {
			NotFoundError(missing).Write(w)
			return
		}
		var in In
		if err := DecodeBody(w, r, &in); err != nil {
			writeBodyError(w, err)
			return
		}
		rec, err := fn(r.Context(), id, in)
		if err != nil {
			s.fail(w, r, err, entity, applog.OpUpdate)
			return
		}
		OK(rec).Write(w)
	}
}

func remove[Out any](s *Server, entity, missing string, fn func(context.Context, int64) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := ParseID(r)
		if !ok {
			NotFoundError(missing).Write(w)
			return
		}
		rec, err := fn(r.Context(), id)
		if err != nil {
			s.fail(w, r, err, entity, applog.OpDelete)
			return
		}
		OK(rec).Write(w)
	}
}

func writeBodyError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		ErrorResponse(http.StatusRequestEntityTooLarge, core.MsgInvalidBody).Write(w)
		return
	}
	BadRequestError(core.MsgInvalidBody).Write(w)
}
