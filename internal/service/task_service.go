package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"planner/internal/model"
	"planner/internal/repository"

	"github.com/google/uuid"
)

type TaskService struct {
	tasks repository.TaskRepositoryInterface
}

func NewTaskService(tasks repository.TaskRepositoryInterface) *TaskService {
	return &TaskService{tasks: tasks}
}

// CreateTaskInput carries the calendar create payload. End and Complete are
// pointers so an omitted field can be told apart from an explicit zero.
type CreateTaskInput struct {
	Content     string
	Description string
	Start       string
	End         *string
	Complete    *int
}

// EditTaskInput is a partial update: nil fields keep their prior value.
type EditTaskInput struct {
	Content     *string
	Description *string
	Start       *string
	End         *string
	Complete    *int
}

// List returns all tasks owned by the user, ordered by start ascending.
func (s *TaskService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	return s.tasks.GetByOwner(ctx, ownerID)
}

// Get returns a single task after verifying ownership.
func (s *TaskService) Get(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error) {
	return s.getOwned(ctx, ownerID, taskID)
}

// Create stores a new task for the user. End defaults to start + 1 hour when
// omitted.
func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, in CreateTaskInput) (*model.Task, error) {
	if in.Content == "" || in.Start == "" {
		return nil, fmt.Errorf("%w: missing content or start", ErrValidation)
	}

	start, err := parseTimestamp(in.Start)
	if err != nil {
		return nil, err
	}

	var end time.Time
	if in.End != nil && *in.End != "" {
		end, err = parseTimestamp(*in.End)
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, fmt.Errorf("%w: end before start", ErrValidation)
		}
	} else {
		end = start.Add(time.Hour)
	}

	complete := 0
	if in.Complete != nil {
		complete = *in.Complete
	}

	task := &model.Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Content:     in.Content,
		Description: in.Description,
		Complete:    complete,
		Start:       start,
		End:         &end,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return task, nil
}

// CreateQuick stores a task from the dashboard form: start is now, end one
// hour later.
func (s *TaskService) CreateQuick(ctx context.Context, ownerID uuid.UUID, content, description string) (*model.Task, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: missing content", ErrValidation)
	}

	start := time.Now()
	end := start.Add(time.Hour)
	task := &model.Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Content:     content,
		Description: description,
		Start:       start,
		End:         &end,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return task, nil
}

// Edit applies a partial update to an owned task.
func (s *TaskService) Edit(ctx context.Context, ownerID, taskID uuid.UUID, in EditTaskInput) (*model.Task, error) {
	task, err := s.getOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if in.Content != nil {
		task.Content = *in.Content
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Complete != nil {
		task.Complete = *in.Complete
	}

	startSet := in.Start != nil && *in.Start != ""
	endSet := in.End != nil && *in.End != ""
	if startSet {
		start, err := parseTimestamp(*in.Start)
		if err != nil {
			return nil, err
		}
		task.Start = start
	}
	if endSet {
		end, err := parseTimestamp(*in.End)
		if err != nil {
			return nil, err
		}
		task.End = &end
	}
	if startSet && endSet && task.End.Before(task.Start) {
		return nil, fmt.Errorf("%w: end before start", ErrValidation)
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return task, nil
}

// Move updates the start of an owned task after a calendar drag. End is
// touched only when the client sends one; omission leaves it unchanged.
func (s *TaskService) Move(ctx context.Context, ownerID, taskID uuid.UUID, start string, end *string) (*model.Task, error) {
	if start == "" {
		return nil, fmt.Errorf("%w: missing start", ErrValidation)
	}
	return s.Resize(ctx, ownerID, taskID, &start, end)
}

// Resize updates either bound of an owned task independently.
func (s *TaskService) Resize(ctx context.Context, ownerID, taskID uuid.UUID, start, end *string) (*model.Task, error) {
	task, err := s.getOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	startSet := start != nil && *start != ""
	endSet := end != nil && *end != ""
	if startSet {
		t, err := parseTimestamp(*start)
		if err != nil {
			return nil, err
		}
		task.Start = t
	}
	if endSet {
		t, err := parseTimestamp(*end)
		if err != nil {
			return nil, err
		}
		task.End = &t
	}
	if startSet && endSet && task.End.Before(task.Start) {
		return nil, fmt.Errorf("%w: end before start", ErrValidation)
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return task, nil
}

// Duplicate copies an owned task into a new row with a fresh id. Content,
// description, span and completion flag are carried over verbatim.
func (s *TaskService) Duplicate(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.getOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	copied := &model.Task{
		ID:          uuid.New(),
		OwnerID:     task.OwnerID,
		Content:     task.Content,
		Description: task.Description,
		Complete:    task.Complete,
		Start:       task.Start,
	}
	if task.End != nil {
		end := *task.End
		copied.End = &end
	}

	if err := s.tasks.Create(ctx, copied); err != nil {
		return nil, fmt.Errorf("duplicating task: %w", err)
	}
	return copied, nil
}

// Delete removes an owned task permanently.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if _, err := s.getOwned(ctx, ownerID, taskID); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func (s *TaskService) getOwned(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading task: %w", err)
	}
	if task.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return task, nil
}
