// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface: hand-written SQL executed through sqlx on
// top of the mattn/go-sqlite3 driver.
//
// The blank import below registers the "sqlite3" driver with
// database/sql. We never call anything from it directly.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/students-web/internal/storage"
	"github.com/aanand-mishra/students-web/internal/types"
)

// Schema is idempotent and runs on every startup. It is the only schema
// management the application does.
const Schema = `
	CREATE TABLE IF NOT EXISTS students (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT    NOT NULL,
		last_name  TEXT    NOT NULL,
		email      TEXT    NOT NULL,
		phone      TEXT    NOT NULL
	)`

const selectColumns = "SELECT id, first_name, last_name, email, phone FROM students"

// SQLite is the concrete implementation of storage.Storage.
// *sqlx.DB wraps the database/sql pool and is safe for concurrent use.
type SQLite struct {
	Db *sqlx.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at storagePath, creates the students
// table if it does not already exist, and returns a ready-to-use *SQLite.
func New(storagePath string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// SQLite has a single writer. One pooled connection keeps writes from
	// racing into SQLITE_BUSY and gives ":memory:" a single shared database.
	db.SetMaxOpenConns(1)

	s, err := NewWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an already opened pool and ensures the schema exists.
func NewWithDB(db *sqlx.DB) (*SQLite, error) {
	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}
	return &SQLite{Db: db}, nil
}

func (s *SQLite) CreateStudent(ctx context.Context, firstName, lastName, email, phone string) (types.Student, error) {
	result, err := s.Db.ExecContext(ctx,
		"INSERT INTO students (first_name, last_name, email, phone) VALUES (?, ?, ?, ?)",
		firstName, lastName, email, phone,
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	return types.Student{
		ID:        lastID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
	}, nil
}

func (s *SQLite) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	return getStudent(ctx, s.Db, id)
}

// getStudent runs against the pool or an open transaction.
func getStudent(ctx context.Context, q sqlx.QueryerContext, id int64) (types.Student, error) {
	var student types.Student

	err := sqlx.GetContext(ctx, q, &student, selectColumns+" WHERE id = ? LIMIT 1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, fmt.Errorf("GetStudentByID: id %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: query: %w", err)
	}

	return student, nil
}

func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	students := make([]types.Student, 0)

	if err := s.Db.SelectContext(ctx, &students, selectColumns+" ORDER BY id"); err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}

	return students, nil
}

// UpdateStudentByID writes and re-reads inside one transaction, so the
// caller sees exactly what was committed and a failure leaves no trace.
func (s *SQLite) UpdateStudentByID(ctx context.Context, id int64, student types.Student) (types.Student, error) {
	tx, err := s.Db.BeginTxx(ctx, nil)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	result, err := tx.ExecContext(ctx,
		"UPDATE students SET first_name = ?, last_name = ?, email = ?, phone = ? WHERE id = ?",
		student.FirstName, student.LastName, student.Email, student.Phone, id,
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: rows affected: %w", err)
	}
	if n == 0 {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: id %d: %w", id, storage.ErrNotFound)
	}

	updated, err := getStudent(ctx, tx, id)
	if err != nil {
		return types.Student{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: commit: %w", err)
	}

	return updated, nil
}

func (s *SQLite) DeleteStudentByID(ctx context.Context, id int64) error {
	result, err := s.Db.ExecContext(ctx, "DELETE FROM students WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("DeleteStudentByID: id %d: %w", id, storage.ErrNotFound)
	}

	return nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.Db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.Db.Close()
}
