package portal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Famanien/University-Hub/internal/store"
)

// TodoService manages the shared to-do list on the tools page.
type TodoService struct {
	mu          sync.Mutex
	kv          store.KV
	idGenerator func() string
	logger      *slog.Logger
}

// NewTodoService wires dependencies for the to-do service.
func NewTodoService(kv store.KV, idGenerator func() string, logger *slog.Logger) *TodoService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &TodoService{kv: kv, idGenerator: idGenerator, logger: defaultLogger(logger)}
}

func (s *TodoService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "TodoService", operation, attrs...)
}

// Add appends a task. Blank text is rejected; new tasks start incomplete.
func (s *TodoService) Add(ctx context.Context, text string) (task Task, err error) {
	if s == nil || s.kv == nil {
		err = fmt.Errorf("TodoService not configured")
		return
	}

	logger := s.loggerWith(ctx, "Add")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "add task failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("task_id", task.ID).InfoContext(ctx, "task added")
	}()

	text = strings.TrimSpace(text)
	if text == "" {
		validation := &ValidationError{}
		validation.add("text", "task text is required")
		err = validation
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := store.LoadCollection[Task](ctx, s.kv, store.KeyTasks)
	if err != nil {
		return Task{}, err
	}

	task = Task{ID: s.idGenerator(), Text: text}
	if err = store.SaveCollection(ctx, s.kv, store.KeyTasks, append(tasks, task)); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Toggle flips the completion flag of the task with the given ID and returns
// the updated record.
func (s *TodoService) Toggle(ctx context.Context, taskID string) (task Task, err error) {
	if s == nil || s.kv == nil {
		err = fmt.Errorf("TodoService not configured")
		return
	}

	logger := s.loggerWith(ctx, "Toggle", "task_id", taskID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "toggle task failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("completed", task.Completed).InfoContext(ctx, "task toggled")
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := store.LoadCollection[Task](ctx, s.kv, store.KeyTasks)
	if err != nil {
		return Task{}, err
	}

	for i := range tasks {
		if tasks[i].ID == taskID {
			tasks[i].Completed = !tasks[i].Completed
			if err = store.SaveCollection(ctx, s.kv, store.KeyTasks, tasks); err != nil {
				return Task{}, err
			}
			return tasks[i], nil
		}
	}
	err = ErrNotFound
	return
}

// Remove deletes the task with the given ID.
func (s *TodoService) Remove(ctx context.Context, taskID string) (err error) {
	if s == nil || s.kv == nil {
		return fmt.Errorf("TodoService not configured")
	}

	logger := s.loggerWith(ctx, "Remove", "task_id", taskID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "remove task failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "task removed")
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := store.LoadCollection[Task](ctx, s.kv, store.KeyTasks)
	if err != nil {
		return err
	}

	remaining := make([]Task, 0, len(tasks))
	found := false
	for _, task := range tasks {
		if task.ID == taskID {
			found = true
			continue
		}
		remaining = append(remaining, task)
	}
	if !found {
		return ErrNotFound
	}
	return store.SaveCollection(ctx, s.kv, store.KeyTasks, remaining)
}

// List returns all tasks in insertion order.
func (s *TodoService) List(ctx context.Context) ([]Task, error) {
	if s == nil || s.kv == nil {
		return nil, fmt.Errorf("TodoService not configured")
	}
	return store.LoadCollection[Task](ctx, s.kv, store.KeyTasks)
}
