// Package memory is a map-backed storage.Storage. Nothing survives a
// restart; it exists for local development without a database file and
// for handler tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aanand-mishra/students-web/internal/storage"
	"github.com/aanand-mishra/students-web/internal/types"
)

type Store struct {
	mu       sync.RWMutex
	students map[int64]types.Student
	nextID   int64
}

var _ storage.Storage = (*Store)(nil)

func New() *Store {
	return &Store{
		students: make(map[int64]types.Student),
		nextID:   1,
	}
}

func (s *Store) CreateStudent(_ context.Context, firstName, lastName, email, phone string) (types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student := types.Student{
		ID:        s.nextID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
	}
	s.students[student.ID] = student
	s.nextID++

	return student, nil
}

func (s *Store) GetStudentByID(_ context.Context, id int64) (types.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	student, ok := s.students[id]
	if !ok {
		return types.Student{}, fmt.Errorf("GetStudentByID: id %d: %w", id, storage.ErrNotFound)
	}
	return student, nil
}

func (s *Store) GetStudents(_ context.Context) ([]types.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	students := make([]types.Student, 0, len(s.students))
	for _, student := range s.students {
		students = append(students, student)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })

	return students, nil
}

func (s *Store) UpdateStudentByID(_ context.Context, id int64, student types.Student) (types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[id]; !ok {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: id %d: %w", id, storage.ErrNotFound)
	}

	student.ID = id
	s.students[id] = student
	return student, nil
}

func (s *Store) DeleteStudentByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[id]; !ok {
		return fmt.Errorf("DeleteStudentByID: id %d: %w", id, storage.ErrNotFound)
	}
	delete(s.students, id)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
