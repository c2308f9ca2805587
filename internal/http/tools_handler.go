package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Famanien/University-Hub/internal/portal"
)

type gpaService interface {
	AddCourse(ctx context.Context, input portal.CourseInput) (portal.Course, error)
	RemoveCourse(ctx context.Context, courseID string) error
	Summary(ctx context.Context) (portal.GPASummary, error)
	Reset(ctx context.Context, confirm bool) error
}

type todoService interface {
	Add(ctx context.Context, text string) (portal.Task, error)
	Toggle(ctx context.Context, taskID string) (portal.Task, error)
	Remove(ctx context.Context, taskID string) error
	List(ctx context.Context) ([]portal.Task, error)
}

// ToolsHandler serves the tools page features: the GPA calculator and the
// to-do list.
type ToolsHandler struct {
	gpa       gpaService
	todos     todoService
	responder responder
	logger    *slog.Logger
}

func NewToolsHandler(gpa gpaService, todos todoService, logger *slog.Logger) *ToolsHandler {
	base := defaultLogger(logger)
	return &ToolsHandler{gpa: gpa, todos: todos, responder: newResponder(base), logger: base}
}

func (h *ToolsHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ToolsHandler", operation, attrs...)
}

// GPASummary returns the stored courses and the computed GPA.
func (h *ToolsHandler) GPASummary(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.gpa == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "GPASummary")

	summary, err := h.gpa.Summary(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "gpa summary failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, summary)
}

// AddCourse appends a course and returns the refreshed summary.
func (h *ToolsHandler) AddCourse(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.gpa == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "AddCourse", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode course request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "AddCourse", "course_name", req.Name)

	course, err := h.gpa.AddCourse(r.Context(), portal.CourseInput{
		Name:    strings.TrimSpace(req.Name),
		Credits: req.Credits,
		Grade:   req.Grade,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "add course failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("course_id", course.ID).InfoContext(r.Context(), "course added")

	summary, err := h.gpa.Summary(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, summary)
}

// RemoveCourse deletes the course in the request path and returns the
// refreshed summary.
func (h *ToolsHandler) RemoveCourse(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.gpa == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	courseID, ok := RecordIDFromContext(r.Context())
	if !ok || strings.TrimSpace(courseID) == "" {
		h.log(r.Context(), "RemoveCourse", "error_kind", "bad_request").ErrorContext(r.Context(), "missing course id for removal")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, nil)
		return
	}

	logger := h.log(r.Context(), "RemoveCourse", "course_id", courseID)

	if err := h.gpa.RemoveCourse(r.Context(), courseID); err != nil {
		logger.ErrorContext(r.Context(), "remove course failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "course removed")

	summary, err := h.gpa.Summary(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, summary)
}

// ResetGPA clears all courses. The confirm flag must be set.
func (h *ToolsHandler) ResetGPA(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.gpa == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "ResetGPA", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode reset request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "ResetGPA")

	if err := h.gpa.Reset(r.Context(), req.Confirm); err != nil {
		logger.ErrorContext(r.Context(), "gpa reset failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "gpa courses cleared")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// ListTasks returns all to-do tasks in insertion order.
func (h *ToolsHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.todos == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "ListTasks")

	tasks, err := h.todos.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "task list failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listTasksResponse{Tasks: tasks})
}

// AddTask appends a task.
func (h *ToolsHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.todos == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "AddTask", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode task request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "AddTask")

	task, err := h.todos.Add(r.Context(), req.Text)
	if err != nil {
		logger.ErrorContext(r.Context(), "add task failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("task_id", task.ID).InfoContext(r.Context(), "task added")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, taskResponse{Task: task})
}

// ToggleTask flips the completion flag of the task in the request path.
func (h *ToolsHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.todos == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	taskID, ok := RecordIDFromContext(r.Context())
	if !ok || strings.TrimSpace(taskID) == "" {
		h.log(r.Context(), "ToggleTask", "error_kind", "bad_request").ErrorContext(r.Context(), "missing task id for toggle")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, nil)
		return
	}

	logger := h.log(r.Context(), "ToggleTask", "task_id", taskID)

	task, err := h.todos.Toggle(r.Context(), taskID)
	if err != nil {
		logger.ErrorContext(r.Context(), "toggle task failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("completed", task.Completed).InfoContext(r.Context(), "task toggled")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, taskResponse{Task: task})
}

// RemoveTask deletes the task in the request path.
func (h *ToolsHandler) RemoveTask(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.todos == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	taskID, ok := RecordIDFromContext(r.Context())
	if !ok || strings.TrimSpace(taskID) == "" {
		h.log(r.Context(), "RemoveTask", "error_kind", "bad_request").ErrorContext(r.Context(), "missing task id for removal")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, nil)
		return
	}

	logger := h.log(r.Context(), "RemoveTask", "task_id", taskID)

	if err := h.todos.Remove(r.Context(), taskID); err != nil {
		logger.ErrorContext(r.Context(), "remove task failed", "error", err, "error_kind", portal.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "task removed")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type courseRequest struct {
	Name    string  `json:"name"`
	Credits float64 `json:"credits"`
	Grade   float64 `json:"grade"`
}

type confirmRequest struct {
	Confirm bool `json:"confirm"`
}

type taskRequest struct {
	Text string `json:"text"`
}

type taskResponse struct {
	Task portal.Task `json:"task"`
}

type listTasksResponse struct {
	Tasks []portal.Task `json:"tasks"`
}
