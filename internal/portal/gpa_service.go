package portal

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/Famanien/University-Hub/internal/store"
)

// GPAService manages the course list backing the GPA calculator. Courses are
// shared per deployment rather than per user, matching the tools page where
// the calculator is a scratch pad.
type GPAService struct {
	mu          sync.Mutex
	kv          store.KV
	idGenerator func() string
	logger      *slog.Logger
}

// NewGPAService wires dependencies for the GPA service.
func NewGPAService(kv store.KV, idGenerator func() string, logger *slog.Logger) *GPAService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &GPAService{kv: kv, idGenerator: idGenerator, logger: defaultLogger(logger)}
}

func (s *GPAService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "GPAService", operation, attrs...)
}

// AddCourse validates and appends a course, then returns the stored record.
func (s *GPAService) AddCourse(ctx context.Context, input CourseInput) (course Course, err error) {
	if s == nil || s.kv == nil {
		err = fmt.Errorf("GPAService not configured")
		return
	}

	logger := s.loggerWith(ctx, "AddCourse", "course_name", input.Name)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "add course failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("course_id", course.ID).InfoContext(ctx, "course added")
	}()

	name := strings.TrimSpace(input.Name)
	validation := &ValidationError{}
	if name == "" {
		validation.add("name", "course name is required")
	}
	if input.Credits <= 0 {
		validation.add("credits", "credits must be a positive number")
	}
	if input.Grade < 0 {
		validation.add("grade", "grade must not be negative")
	}
	if validation.HasErrors() {
		err = validation
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	courses, err := store.LoadCollection[Course](ctx, s.kv, store.KeyCourses)
	if err != nil {
		return Course{}, err
	}

	course = Course{
		ID:      s.idGenerator(),
		Name:    name,
		Credits: input.Credits,
		Grade:   input.Grade,
	}

	if err = store.SaveCollection(ctx, s.kv, store.KeyCourses, append(courses, course)); err != nil {
		return Course{}, err
	}
	return course, nil
}

// RemoveCourse deletes the course with the given ID.
func (s *GPAService) RemoveCourse(ctx context.Context, courseID string) (err error) {
	if s == nil || s.kv == nil {
		return fmt.Errorf("GPAService not configured")
	}

	logger := s.loggerWith(ctx, "RemoveCourse", "course_id", courseID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "remove course failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "course removed")
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	courses, err := store.LoadCollection[Course](ctx, s.kv, store.KeyCourses)
	if err != nil {
		return err
	}

	remaining := make([]Course, 0, len(courses))
	found := false
	for _, course := range courses {
		if course.ID == courseID {
			found = true
			continue
		}
		remaining = append(remaining, course)
	}
	if !found {
		return ErrNotFound
	}
	return store.SaveCollection(ctx, s.kv, store.KeyCourses, remaining)
}

// Summary computes the credit-weighted GPA over the stored courses. The GPA
// is rendered with two decimal places; an empty course list yields "0.00".
func (s *GPAService) Summary(ctx context.Context) (GPASummary, error) {
	if s == nil || s.kv == nil {
		return GPASummary{}, fmt.Errorf("GPAService not configured")
	}

	courses, err := store.LoadCollection[Course](ctx, s.kv, store.KeyCourses)
	if err != nil {
		return GPASummary{}, err
	}

	var totalCredits, totalPoints float64
	for _, course := range courses {
		totalCredits += course.Credits
		totalPoints += course.Credits * course.Grade
	}

	value := 0.0
	if totalCredits > 0 {
		value = totalPoints / totalCredits
	}

	return GPASummary{
		Courses:      courses,
		GPA:          strconv.FormatFloat(value, 'f', 2, 64),
		TotalCredits: totalCredits,
		Tier:         gpaTier(value),
	}, nil
}

// Reset clears all stored courses. The confirm flag mirrors the confirmation
// prompt shown before the calculator wipes its table.
func (s *GPAService) Reset(ctx context.Context, confirm bool) (err error) {
	if s == nil || s.kv == nil {
		return fmt.Errorf("GPAService not configured")
	}

	logger := s.loggerWith(ctx, "Reset")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "gpa reset failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "gpa courses cleared")
	}()

	if !confirm {
		return ErrConfirmationRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return store.SaveCollection(ctx, s.kv, store.KeyCourses, []Course{})
}

// Count returns the number of stored courses.
func (s *GPAService) Count(ctx context.Context) (int, error) {
	if s == nil || s.kv == nil {
		return 0, fmt.Errorf("GPAService not configured")
	}
	courses, err := store.LoadCollection[Course](ctx, s.kv, store.KeyCourses)
	if err != nil {
		return 0, err
	}
	return len(courses), nil
}

func gpaTier(value float64) GPATier {
	switch {
	case value >= 3.0:
		return GPATierHigh
	case value >= 2.0:
		return GPATierMid
	default:
		return GPATierLow
	}
}
