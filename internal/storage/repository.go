// Package storage is the SQLite entity store backend.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"contracting/internal/core"
	"contracting/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB

	clients    *table[core.Client]
	projects   *table[core.Project]
	statements *table[core.Statement]
	suppliers  *table[core.Supplier]
	employees  *table[core.Employee]
	equipment  *table[core.Equipment]
	payments   *table[core.Payment]
}

var _ store.Store = (*SQLiteRepository)(nil)

// NewSQLiteRepository opens dsn and migrates it. ":memory:" gives a
// throwaway database.
func NewSQLiteRepository(dsn string) (*SQLiteRepository, error) {
	if isFilePath(dsn) {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection: an in-memory database exists per connection, and it
	// serializes writers without SQLITE_BUSY retries.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return newRepository(db), nil
}

func isFilePath(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

func newRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{
		db: db,
		clients: &table[core.Client]{
			db:      db,
			name:    "clients",
			columns: []string{"name", "contact_person", "phone", "email", "address"},
			idOf:    func(c *core.Client) *int64 { return &c.ID },
			fields: func(c *core.Client) []any {
				return []any{&c.Name, &c.ContactPerson, &c.Phone, &c.Email, &c.Address}
			},
		},
		projects: &table[core.Project]{
			db:      db,
			name:    "projects",
			columns: []string{"code", "name", "client_id", "status", "progress", "budget", "location"},
			idOf:    func(p *core.Project) *int64 { return &p.ID },
			fields: func(p *core.Project) []any {
				return []any{&p.Code, &p.Name, &p.ClientID, &p.Status, &p.Progress, &p.Budget, &p.Location}
			},
		},
		statements: &table[core.Statement]{
			db:      db,
			name:    "statements",
			columns: []string{"project_id", "number", "amount", "date", "description", "status"},
			idOf:    func(s *core.Statement) *int64 { return &s.ID },
			fields: func(s *core.Statement) []any {
				return []any{&s.ProjectID, &s.Number, &s.Amount, &s.Date, &s.Description, &s.Status}
			},
		},
		suppliers: &table[core.Supplier]{
			db:      db,
			name:    "suppliers",
			columns: []string{"company_name", "contact_person", "phone", "email", "materials", "payment_terms", "balance"},
			idOf:    func(s *core.Supplier) *int64 { return &s.ID },
			fields: func(s *core.Supplier) []any {
				return []any{&s.CompanyName, &s.ContactPerson, &s.Phone, &s.Email, &s.Materials, &s.PaymentTerms, &s.Balance}
			},
		},
		employees: &table[core.Employee]{
			db:      db,
			name:    "employees",
			columns: []string{"name", "job_title", "specialization", "daily_wage", "phone", "project_name", "status"},
			idOf:    func(e *core.Employee) *int64 { return &e.ID },
			fields: func(e *core.Employee) []any {
				return []any{&e.Name, &e.JobTitle, &e.Specialization, &e.DailyWage, &e.Phone, &e.ProjectName, &e.Status}
			},
		},
		equipment: &table[core.Equipment]{
			db:      db,
			name:    "equipment",
			columns: []string{"name", "type", "daily_cost", "maintenance_date", "project_name", "status"},
			idOf:    func(e *core.Equipment) *int64 { return &e.ID },
			fields: func(e *core.Equipment) []any {
				return []any{&e.Name, &e.Type, &e.DailyCost, &e.MaintenanceDate, &e.ProjectName, &e.Status}
			},
		},
		payments: &table[core.Payment]{
			db:      db,
			name:    "payments",
			columns: []string{"type", "amount", "date", "due_date", "description", "payment_method", "status", "related_party"},
			idOf:    func(p *core.Payment) *int64 { return &p.ID },
			fields: func(p *core.Payment) []any {
				return []any{&p.Type, &p.Amount, &p.Date, &p.DueDate, &p.Description, &p.PaymentMethod, &p.Status, &p.RelatedParty}
			},
		},
	}
}

func (r *SQLiteRepository) Clients() store.Collection[core.Client]       { return r.clients }
func (r *SQLiteRepository) Projects() store.Collection[core.Project]     { return r.projects }
func (r *SQLiteRepository) Statements() store.Collection[core.Statement] { return r.statements }
func (r *SQLiteRepository) Suppliers() store.Collection[core.Supplier]   { return r.suppliers }
func (r *SQLiteRepository) Employees() store.Collection[core.Employee]   { return r.employees }
func (r *SQLiteRepository) Equipment() store.Collection[core.Equipment]  { return r.equipment }
func (r *SQLiteRepository) Payments() store.Collection[core.Payment]     { return r.payments }

// RemoveProject deletes a project and its statements in one transaction.
func (r *SQLiteRepository) RemoveProject(ctx context.Context, id int64) (core.Project, []core.Statement, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Project{}, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	project, err := r.projects.find(ctx, tx, id)
	if err != nil {
		return core.Project{}, nil, err
	}

	statements, err := r.statements.query(ctx, tx, "WHERE project_id = ?", id)
	if err != nil {
		return core.Project{}, nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM statements WHERE project_id = ?", id); err != nil {
		return core.Project{}, nil, fmt.Errorf("delete statements of project %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
		return core.Project{}, nil, fmt.Errorf("delete project %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return core.Project{}, nil, fmt.Errorf("commit: %w", err)
	}
	return project, statements, nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// table maps one entity type onto one SQL table. fields returns pointers to
// every persisted field except the id, in columns order.
type table[T any] struct {
	db      *sql.DB
	name    string
	columns []string
	idOf    func(*T) *int64
	fields  func(*T) []any
}

func (t *table[T]) selectSQL() string {
	return "SELECT id, " + strings.Join(t.columns, ", ") + " FROM " + t.name
}

func (t *table[T]) values(rec *T) []any {
	ptrs := t.fields(rec)
	out := make([]any, len(ptrs))
	for i, p := range ptrs {
		out[i] = deref(p)
	}
	return out
}

func (t *table[T]) query(ctx context.Context, q querier, where string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, t.selectSQL()+" "+where+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.name, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var rec T
		dest := append([]any{t.idOf(&rec)}, t.fields(&rec)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", t.name, err)
	}
	return out, nil
}

func (t *table[T]) find(ctx context.Context, q querier, id int64) (T, error) {
	recs, err := t.query(ctx, q, "WHERE id = ?", id)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(recs) == 0 {
		var zero T
		return zero, core.ErrNotFound
	}
	return recs[0], nil
}

func (t *table[T]) List(ctx context.Context) ([]T, error) {
	return t.query(ctx, t.db, "")
}

func (t *table[T]) Find(ctx context.Context, id int64) (T, error) {
	return t.find(ctx, t.db, id)
}

func (t *table[T]) Insert(ctx context.Context, rec T) (T, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.columns)), ", ")
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.name, strings.Join(t.columns, ", "), placeholders)

	res, err := t.db.ExecContext(ctx, stmt, t.values(&rec)...)
	if err != nil {
		return rec, fmt.Errorf("insert into %s: %w", t.name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return rec, fmt.Errorf("last insert id for %s: %w", t.name, err)
	}
	*t.idOf(&rec) = id
	return rec, nil
}

func (t *table[T]) Update(ctx context.Context, id int64, apply func(*T) error) (T, error) {
	var zero T
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rec, err := t.find(ctx, tx, id)
	if err != nil {
		return zero, err
	}
	if err := apply(&rec); err != nil {
		return zero, err
	}
	*t.idOf(&rec) = id

	sets := make([]string, len(t.columns))
	for i, c := range t.columns {
		sets[i] = c + " = ?"
	}
	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.name, strings.Join(sets, ", "))
	if _, err := tx.ExecContext(ctx, stmt, append(t.values(&rec), id)...); err != nil {
		return zero, fmt.Errorf("update %s %d: %w", t.name, id, err)
	}

	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("commit: %w", err)
	}
	return rec, nil
}

func (t *table[T]) Remove(ctx context.Context, id int64) (T, error) {
	var zero T
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rec, err := t.find(ctx, tx, id)
	if err != nil {
		return zero, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE id = ?", id); err != nil {
		return zero, fmt.Errorf("delete %s %d: %w", t.name, id, err)
	}
	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("commit: %w", err)
	}
	return rec, nil
}

// deref turns a field pointer into a driver argument. Named string types
// are passed as plain strings.
func deref(p any) any {
	switch v := p.(type) {
	case *string:
		return *v
	case *int64:
		return *v
	case *int:
		return int64(*v)
	case *float64:
		return *v
	case **float64:
		if *v == nil {
			return nil
		}
		return **v
	case *core.ProjectStatus:
		return string(*v)
	case *core.EmployeeStatus:
		return string(*v)
	case *core.EquipmentStatus:
		return string(*v)
	case *core.StatementStatus:
		return string(*v)
	case *core.PaymentType:
		return string(*v)
	case *core.PaymentMethod:
		return string(*v)
	case *core.PaymentStatus:
		return string(*v)
	default:
		panic(fmt.Sprintf("storage: unsupported field type %T", p))
	}
}
