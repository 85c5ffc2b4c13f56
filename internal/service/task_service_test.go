package service

import (
	"context"
	"sort"
	"testing"
	"time"

	dom "github.com/erprakash26/karyamate/internal/domain"
	"github.com/erprakash26/karyamate/internal/repo"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTaskRepo is an in-memory TaskRepo with the same ownership scoping as
// the Postgres implementation: lookups by (userID, id) miss with pgx.ErrNoRows
// when the row belongs to someone else.
type fakeTaskRepo struct {
	tasks  map[int64]dom.Task
	nextID int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[int64]dom.Task{}, nextID: 1}
}

func (r *fakeTaskRepo) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	now := time.Now().UTC()
	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = now
	t.UpdatedAt = now
	r.tasks[t.ID] = t
	return t, nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, userID, id int64) (dom.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return dom.Task{}, pgx.ErrNoRows
	}
	return t, nil
}

func (r *fakeTaskRepo) List(_ context.Context, userID int64, status repo.StatusFilter) ([]dom.Task, error) {
	var list []dom.Task
	for _, t := range r.tasks {
		if t.UserID != userID {
			continue
		}
		if status == repo.StatusOpen && t.Completed {
			continue
		}
		if status == repo.StatusCompleted && !t.Completed {
			continue
		}
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, userID, id int64, patch dom.Task) (dom.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return dom.Task{}, pgx.ErrNoRows
	}
	patch.ID = t.ID
	patch.UserID = t.UserID
	patch.CreatedAt = t.CreatedAt
	patch.UpdatedAt = time.Now().UTC()
	r.tasks[id] = patch
	return patch, nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, userID, id int64) error {
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(r.tasks, id)
	return nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestTaskService_CreateDefaults(t *testing.T) {
	t.Parallel()
	svc := NewTaskService(newFakeTaskRepo(), nil)

	created, err := svc.Create(context.Background(), 1, TaskFields{Title: strPtr("Buy milk")})
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, "", created.Description)
	assert.False(t, created.Completed)
	assert.Equal(t, dom.PriorityMedium, created.Priority)
	assert.Nil(t, created.DueDate)
	assert.Equal(t, int64(1), created.UserID)
}

func TestTaskService_CreateNormalizes(t *testing.T) {
	t.Parallel()
	svc := NewTaskService(newFakeTaskRepo(), nil)
	due := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)

	created, err := svc.Create(context.Background(), 1, TaskFields{
		Title:       strPtr("  Ship release  "),
		Description: strPtr("  final pass  "),
		Completed:   boolPtr(true),
		Priority:    strPtr("hIgH"),
		DueDate:     &due,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ship release", created.Title)
	assert.Equal(t, "final pass", created.Description)
	assert.True(t, created.Completed)
	assert.Equal(t, dom.PriorityHigh, created.Priority)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, due, *created.DueDate)
}

func TestTaskService_CreateRejectsEmptyTitle(t *testing.T) {
	t.Parallel()
	r := newFakeTaskRepo()
	svc := NewTaskService(r, nil)
	ctx := context.Background()

	for _, title := range []*string{nil, strPtr(""), strPtr("   ")} {
		_, err := svc.Create(ctx, 1, TaskFields{Title: title})
		assert.ErrorIs(t, err, ErrEmptyTitle)
	}
	// Failed validation must leave no side effects.
	assert.Empty(t, r.tasks)
}

func TestTaskService_CreateUnknownPriorityFallsBack(t *testing.T) {
	t.Parallel()
	svc := NewTaskService(newFakeTaskRepo(), nil)

	created, err := svc.Create(context.Background(), 1, TaskFields{
		Title:    strPtr("x"),
		Priority: strPtr("urgent!!!"),
	})
	require.NoError(t, err)
	assert.Equal(t, dom.PriorityMedium, created.Priority)
}

func TestTaskService_GetScopedByOwner(t *testing.T) {
	t.Parallel()
	svc := NewTaskService(newFakeTaskRepo(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, TaskFields{Title: strPtr("mine")})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Another user sees not-found, never forbidden.
	_, err = svc.GetByID(ctx, 2, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskService_ListFilters(t *testing.T) {
	t.Parallel()
	svc := NewTaskService(newFakeTaskRepo(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, TaskFields{Title: strPtr("open one")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, TaskFields{Title: strPtr("done one"), Completed: boolPtr(true)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, TaskFields{Title: strPtr("other user")})
	require.NoError(t, err)

	open, err := svc.List(ctx, 1, "open")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "open one", open[0].Title)

	completed, err := svc.List(ctx, 1, "completed")
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "done one", completed[0].Title)

	// Absent or unrecognized filter returns everything owned by the user.
	for _, status := range []string{"", "bogus", "ALL"} {
		all, err := svc.List(ctx, 1, status)
		require.NoError(t, err)
		assert.Len(t, all, 2, "status %q", status)
	}
}

func TestTaskService_UpdatePartial(t *testing.T) {
	t.Parallel()
	svc := NewTaskService(newFakeTaskRepo(), nil)
	ctx := context.Background()

	due := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, 1, TaskFields{
		Title:       strPtr("original"),
		Description: strPtr("keep me"),
		Priority:    strPtr("High"),
		DueDate:     &due,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, created.ID, TaskFields{Completed: boolPtr(true)})
	require.NoError(t, err)

	assert.Equal(t, "original", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.Equal(t, dom.PriorityHigh, updated.Priority)
	require.NotNil(t, updated.DueDate)
	assert.Equal(t, due, *updated.DueDate)
	assert.True(t, updated.Completed)
}

func TestTaskService_UpdateClearsDueDateWhenSet(t *testing.T) {
	t.Parallel()
	svc := NewTaskService(newFakeTaskRepo(), nil)
	ctx := context.Background()

	due := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, 1, TaskFields{Title: strPtr("x"), DueDate: &due})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, created.ID, TaskFields{DueDateSet: true, DueDate: nil})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
}

func TestTaskService_UpdateEmptyTitleLeavesTaskUnchanged(t *testing.T) {
	t.Parallel()
	svc := NewTaskService(newFakeTaskRepo(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, TaskFields{Title: strPtr("original")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 1, created.ID, TaskFields{Title: strPtr("   ")})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	got, err := svc.GetByID(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)
	assert.Equal(t, created.UpdatedAt, got.UpdatedAt)
}

func TestTaskService_UpdateForeignTaskIsNotFound(t *testing.T) {
	t.Parallel()
	svc := NewTaskService(newFakeTaskRepo(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, TaskFields{Title: strPtr("mine")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 2, created.ID, TaskFields{Title: strPtr("stolen")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskService_DeleteThenGet(t *testing.T) {
	t.Parallel()
	svc := NewTaskService(newFakeTaskRepo(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, TaskFields{Title: strPtr("goner")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1, created.ID))

	_, err = svc.GetByID(ctx, 1, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is not-found as well.
	assert.ErrorIs(t, svc.Delete(ctx, 1, created.ID), ErrNotFound)
}

func TestTaskService_DeleteForeignTaskIsNotFound(t *testing.T) {
	t.Parallel()
	svc := NewTaskService(newFakeTaskRepo(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, TaskFields{Title: strPtr("mine")})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, 2, created.ID), ErrNotFound)

	// Still there for the owner.
	_, err = svc.GetByID(ctx, 1, created.ID)
	require.NoError(t, err)
}
