// Package storage defines the Storage interface, the contract every
// database backend must satisfy to serve the student pages.
//
// Handlers depend only on this interface, never on a concrete backend:
//
//   - sqlite  — hand-written SQL through sqlx over mattn/go-sqlite3
//   - gormdb  — the same table driven through the GORM ORM
//   - memory  — a map, for local development and handler tests
//
// Which one runs is decided once at startup from config.StorageDriver.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/students-web/internal/types"
)

// ErrNotFound is returned (possibly wrapped) by every backend when an
// operation targets an id that has no row. Check it with errors.Is.
var ErrNotFound = errors.New("student not found")

// Storage is the database contract.
type Storage interface {
	// CreateStudent inserts a new row and returns it with the id the
	// database assigned.
	CreateStudent(ctx context.Context, firstName, lastName, email, phone string) (types.Student, error)

	// GetStudentByID fetches one student. Returns ErrNotFound if absent.
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)

	// GetStudents returns every student ordered by id.
	// Returns an empty slice (not nil) if there are no students.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// UpdateStudentByID overwrites all four text fields of an existing
	// student and returns the stored result. The id in student is
	// ignored. Returns ErrNotFound, with nothing written, if absent.
	UpdateStudentByID(ctx context.Context, id int64, student types.Student) (types.Student, error)

	// DeleteStudentByID removes a student permanently.
	// Returns ErrNotFound if absent, including on a repeated delete.
	DeleteStudentByID(ctx context.Context, id int64) error

	// Ping reports whether the backend can still serve queries.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close() error
}
