// Package storagetest is a behavioural suite shared by every
// storage.Storage implementation. Each backend's tests call Run with a
// constructor returning a fresh, empty store.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-web/internal/storage"
	"github.com/aanand-mishra/students-web/internal/types"
)

// Run exercises newStore against the Storage contract. newStore is
// called once per subtest and must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) storage.Storage) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Storage)
	}{
		{"CreateGrowsList", testCreateGrowsList},
		{"RoundTrip", testRoundTrip},
		{"ListEmptyIsNotNil", testListEmptyIsNotNil},
		{"ListOrderedByID", testListOrderedByID},
		{"UpdateKeepsID", testUpdateKeepsID},
		{"DeleteRemoves", testDeleteRemoves},
		{"DeleteTwiceIsNotFound", testDeleteTwiceIsNotFound},
		{"UnknownIDIsNotFound", testUnknownIDIsNotFound},
		{"Scenario", testScenario},
		{"Ping", testPing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

func testCreateGrowsList(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	first, err := s.CreateStudent(ctx, "Ada", "Byron", "ada@x.com", "555-0001")
	require.NoError(t, err)

	before, err := s.GetStudents(ctx)
	require.NoError(t, err)

	second, err := s.CreateStudent(ctx, "Alan", "Turing", "alan@x.com", "555-0002")
	require.NoError(t, err)

	after, err := s.GetStudents(ctx)
	require.NoError(t, err)

	assert.Len(t, after, len(before)+1)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Contains(t, after, types.Student{
		ID: second.ID, FirstName: "Alan", LastName: "Turing", Email: "alan@x.com", Phone: "555-0002",
	})
}

func testRoundTrip(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	created, err := s.CreateStudent(ctx, "Grace", "Hopper", "grace@x.com", "+1 555 0100")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := s.GetStudentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, "Grace", got.FirstName)
	assert.Equal(t, "Hopper", got.LastName)
	assert.Equal(t, "grace@x.com", got.Email)
	assert.Equal(t, "+1 555 0100", got.Phone)
}

func testListEmptyIsNotNil(t *testing.T, s storage.Storage) {
	students, err := s.GetStudents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func testListOrderedByID(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	for _, name := range []string{"c", "a", "b"} {
		_, err := s.CreateStudent(ctx, name, name, name, name)
		require.NoError(t, err)
	}

	students, err := s.GetStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 3)
	assert.Less(t, students[0].ID, students[1].ID)
	assert.Less(t, students[1].ID, students[2].ID)
	assert.Equal(t, "c", students[0].FirstName)
}

func testUpdateKeepsID(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	created, err := s.CreateStudent(ctx, "Ann", "Lee", "ann@x.com", "555-0100")
	require.NoError(t, err)

	updated, err := s.UpdateStudentByID(ctx, created.ID, types.Student{
		ID: created.ID + 1000, FirstName: "Anne", LastName: "Li", Email: "anne@x.com", Phone: "555-0199",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err := s.GetStudentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, types.Student{
		ID: created.ID, FirstName: "Anne", LastName: "Li", Email: "anne@x.com", Phone: "555-0199",
	}, got)

	// Writing identical values is still a match, not a miss.
	_, err = s.UpdateStudentByID(ctx, created.ID, got)
	require.NoError(t, err)
}

func testDeleteRemoves(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	keep, err := s.CreateStudent(ctx, "Keep", "Me", "k@x.com", "1")
	require.NoError(t, err)
	gone, err := s.CreateStudent(ctx, "Drop", "Me", "d@x.com", "2")
	require.NoError(t, err)

	require.NoError(t, s.DeleteStudentByID(ctx, gone.ID))

	_, err = s.GetStudentByID(ctx, gone.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	students, err := s.GetStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Student{keep}, students)
}

func testDeleteTwiceIsNotFound(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	created, err := s.CreateStudent(ctx, "Once", "Only", "o@x.com", "3")
	require.NoError(t, err)

	require.NoError(t, s.DeleteStudentByID(ctx, created.ID))
	assert.ErrorIs(t, s.DeleteStudentByID(ctx, created.ID), storage.ErrNotFound)
}

func testUnknownIDIsNotFound(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	const never = int64(424242)

	_, err := s.GetStudentByID(ctx, never)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.UpdateStudentByID(ctx, never, types.Student{
		FirstName: "No", LastName: "Body", Email: "n@x.com", Phone: "0",
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, s.DeleteStudentByID(ctx, never), storage.ErrNotFound)

	students, err := s.GetStudents(ctx)
	require.NoError(t, err)
	assert.Empty(t, students, "failed update must not create a row")
}

func testScenario(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	ann, err := s.CreateStudent(ctx, "Ann", "Lee", "ann@x.com", "555-0100")
	require.NoError(t, err)

	students, err := s.GetStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, ann, students[0])

	_, err = s.UpdateStudentByID(ctx, ann.ID, types.Student{
		FirstName: "Ann", LastName: "Lee", Email: "annlee@x.com", Phone: "555-0101",
	})
	require.NoError(t, err)

	got, err := s.GetStudentByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "annlee@x.com", got.Email)
	assert.Equal(t, "555-0101", got.Phone)
	assert.Equal(t, "Ann", got.FirstName)
	assert.Equal(t, "Lee", got.LastName)

	require.NoError(t, s.DeleteStudentByID(ctx, ann.ID))
	_, err = s.GetStudentByID(ctx, ann.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testPing(t *testing.T, s storage.Storage) {
	assert.NoError(t, s.Ping(context.Background()))
}
