// Package gormdb implements storage.Storage with the GORM object-relational
// mapper over SQLite. It maps types.Student onto the same students table
// the sqlite package writes by hand, so either backend can open a file
// created by the other.
package gormdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aanand-mishra/students-web/internal/storage"
	"github.com/aanand-mishra/students-web/internal/types"
)

// Store is the GORM-backed storage.Storage.
type Store struct {
	db *gorm.DB
}

var _ storage.Storage = (*Store)(nil)

// New opens (creating if needed) the SQLite database at storagePath and
// auto-migrates the students table. SQL statements are logged to log at
// debug level when debug is set; otherwise only ORM errors are.
func New(storagePath string, log *slog.Logger, debug bool) (*Store, error) {
	level := logger.Error
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(storagePath), &gorm.Config{
		Logger: logger.New(slogWriter{log: log}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("gormdb.New: open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gormdb.New: pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&types.Student{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("gormdb.New: migrate: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) CreateStudent(ctx context.Context, firstName, lastName, email, phone string) (types.Student, error) {
	student := types.Student{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
	}

	if err := s.db.WithContext(ctx).Create(&student).Error; err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: %w", err)
	}

	return student, nil
}

func (s *Store) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	return first(s.db.WithContext(ctx), id)
}

func first(db *gorm.DB, id int64) (types.Student, error) {
	var student types.Student

	err := db.First(&student, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.Student{}, fmt.Errorf("GetStudentByID: id %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: %w", err)
	}

	return student, nil
}

func (s *Store) GetStudents(ctx context.Context) ([]types.Student, error) {
	students := make([]types.Student, 0)

	if err := s.db.WithContext(ctx).Order("id").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("GetStudents: %w", err)
	}
	if students == nil {
		students = make([]types.Student, 0)
	}

	return students, nil
}

func (s *Store) UpdateStudentByID(ctx context.Context, id int64, student types.Student) (types.Student, error) {
	var updated types.Student

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A map, not a struct: GORM skips zero-valued struct fields.
		result := tx.Model(&types.Student{}).Where("id = ?", id).Updates(map[string]any{
			"first_name": student.FirstName,
			"last_name":  student.LastName,
			"email":      student.Email,
			"phone":      student.Phone,
		})
		if result.Error != nil {
			return fmt.Errorf("UpdateStudentByID: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("UpdateStudentByID: id %d: %w", id, storage.ErrNotFound)
		}

		var err error
		updated, err = first(tx, id)
		return err
	})
	if err != nil {
		return types.Student{}, err
	}

	return updated, nil
}

func (s *Store) DeleteStudentByID(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&types.Student{}, id)
	if result.Error != nil {
		return fmt.Errorf("DeleteStudentByID: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("DeleteStudentByID: id %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// slogWriter feeds GORM's printf-style logger into slog.
type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	w.log.Debug(fmt.Sprintf(format, args...), slog.String("component", "gorm"))
}
