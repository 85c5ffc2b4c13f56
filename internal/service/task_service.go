package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/erprakash26/karyamate/internal/cache"
	dom "github.com/erprakash26/karyamate/internal/domain"
	"github.com/erprakash26/karyamate/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound   = errors.New("task not found")
	ErrEmptyTitle = errors.New("title cannot be empty")
)

// TaskFields carries normalized-or-absent input for Create and Update.
// A nil pointer means the caller did not send the field at all.
type TaskFields struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	DueDate     *time.Time
	// DueDateSet distinguishes "due_date absent" from "due_date: null/bad"
	// on update; both clear to nil, absent leaves the stored value alone.
	DueDateSet bool
}

// TaskService implements the task lifecycle under per-user ownership.
// Every operation takes the authenticated user's ID and scopes the store
// query by it, so a foreign task always reads as not found.
type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.TaskCache
	sf    singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache) *TaskService {
	return &TaskService{repo: r, cache: c}
}

// Create validates title and applies field defaults: description "",
// completed false, priority Medium, due_date null.
func (s *TaskService) Create(ctx context.Context, userID int64, f TaskFields) (dom.Task, error) {
	title := ""
	if f.Title != nil {
		title = strings.TrimSpace(*f.Title)
	}
	if title == "" {
		return dom.Task{}, ErrEmptyTitle
	}

	t := dom.Task{
		UserID:   userID,
		Title:    title,
		Priority: dom.DefaultPriority,
		DueDate:  f.DueDate,
	}
	if f.Description != nil {
		t.Description = strings.TrimSpace(*f.Description)
	}
	if f.Completed != nil {
		t.Completed = *f.Completed
	}
	if f.Priority != nil {
		t.Priority = dom.ParsePriority(*f.Priority)
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, userID)
	return created, nil
}

// List returns the user's tasks, newest first, optionally filtered by
// completion state. Unrecognized filters fall back to all.
func (s *TaskService) List(ctx context.Context, userID int64, status string) ([]dom.Task, error) {
	filter := parseStatus(status)
	if s.cache == nil {
		return s.repo.List(ctx, userID, filter)
	}
	key := "list:" + strconv.FormatInt(userID, 10) + ":" + string(filter)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx, userID, string(filter)); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.List(ctx, userID, filter)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetList(ctx, userID, string(filter), list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Task), nil
}

// GetByID returns the task if it exists and belongs to userID.
func (s *TaskService) GetByID(ctx context.Context, userID, id int64) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	return t, nil
}

// Update applies only the fields present in f; absent fields keep their
// stored values. An explicit title that trims to empty fails before any
// write, leaving the task unchanged.
func (s *TaskService) Update(ctx context.Context, userID, id int64, f TaskFields) (dom.Task, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}

	patch := existing
	if f.Title != nil {
		title := strings.TrimSpace(*f.Title)
		if title == "" {
			return dom.Task{}, ErrEmptyTitle
		}
		patch.Title = title
	}
	if f.Description != nil {
		patch.Description = strings.TrimSpace(*f.Description)
	}
	if f.Completed != nil {
		patch.Completed = *f.Completed
	}
	if f.Priority != nil {
		patch.Priority = dom.ParsePriority(*f.Priority)
	}
	if f.DueDateSet {
		patch.DueDate = f.DueDate
	}

	t, err := s.repo.Update(ctx, userID, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

// Delete removes the task permanently. No soft delete, no undo.
func (s *TaskService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateCache(ctx, userID)
	return nil
}

func (s *TaskService) invalidateCache(ctx context.Context, userID int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userID)
	}
}

func parseStatus(s string) repo.StatusFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return repo.StatusOpen
	case "completed":
		return repo.StatusCompleted
	default:
		return repo.StatusAll
	}
}
