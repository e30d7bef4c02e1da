package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"invite-builder/internal/builder/models"
)

var ErrNotFound = errors.New("project not found")

//go:embed migrations/*.sql
var migrations embed.FS

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет встроенные миграции по порядку имён файлов.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// Ping reports whether the database answers.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) Create(ctx context.Context, p *models.Project) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO projects (id, owner_id, name, slug, status, format, document, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, p.ID, p.OwnerID, p.Name, p.Slug, p.Status, string(p.Format), string(p.Document), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, owner_id, name, slug, status, format, document, created_at, updated_at
        FROM projects
        WHERE id = ?
    `, id)

	var (
		p        models.Project
		format   string
		document string
	)
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Slug, &p.Status, &format, &document, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Format = models.DocumentFormat(format)
	p.Document = []byte(document)
	return &p, nil
}

// List returns project headers (no document), newest first. An empty owner
// lists every project.
func (r *Repository) List(ctx context.Context, ownerID string) ([]models.Project, error) {
	query := `
        SELECT id, owner_id, name, slug, status, format, created_at, updated_at
        FROM projects`
	var args []any
	if ownerID != "" {
		query += ` WHERE owner_id = ?`
		args = append(args, ownerID)
	}
	query += ` ORDER BY updated_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var (
			p      models.Project
			format string
		)
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Slug, &p.Status, &format, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Format = models.DocumentFormat(format)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Update overwrites the mutable columns of p.
func (r *Repository) Update(ctx context.Context, p *models.Project) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE projects
        SET name = ?, slug = ?, status = ?, format = ?, document = ?, updated_at = ?
        WHERE id = ?
    `, p.Name, p.Slug, p.Status, string(p.Format), string(p.Document), p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return expectOne(res)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
