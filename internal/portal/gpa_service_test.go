package portal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Famanien/University-Hub/internal/portal"
	"github.com/Famanien/University-Hub/internal/testfixtures"
)

func TestGPAService_Summary(t *testing.T) {
	t.Parallel()

	t.Run("weights grades by credits", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.GPA()
		ctx := context.Background()

		if _, err := svc.AddCourse(ctx, portal.CourseInput{Name: "Algorithms", Credits: 3, Grade: 4.0}); err != nil {
			t.Fatalf("AddCourse failed: %v", err)
		}
		if _, err := svc.AddCourse(ctx, portal.CourseInput{Name: "Statistics", Credits: 2, Grade: 3.0}); err != nil {
			t.Fatalf("AddCourse failed: %v", err)
		}

		summary, err := svc.Summary(ctx)
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}
		if summary.GPA != "3.60" {
			t.Fatalf("expected GPA 3.60, got %q", summary.GPA)
		}
		if summary.TotalCredits != 5 {
			t.Fatalf("expected 5 total credits, got %g", summary.TotalCredits)
		}
		if summary.Tier != portal.GPATierHigh {
			t.Fatalf("expected high tier, got %s", summary.Tier)
		}
	})

	t.Run("empty course list reads 0.00", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.GPA()

		summary, err := svc.Summary(context.Background())
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}
		if summary.GPA != "0.00" {
			t.Fatalf("expected GPA 0.00, got %q", summary.GPA)
		}
		if summary.Tier != portal.GPATierLow {
			t.Fatalf("expected low tier, got %s", summary.Tier)
		}
		if len(summary.Courses) != 0 {
			t.Fatalf("expected no courses, got %d", len(summary.Courses))
		}
	})

	t.Run("tier boundaries", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.GPA()
		ctx := context.Background()

		if _, err := svc.AddCourse(ctx, portal.CourseInput{Name: "Chemistry", Credits: 4, Grade: 2.5}); err != nil {
			t.Fatalf("AddCourse failed: %v", err)
		}

		summary, err := svc.Summary(ctx)
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}
		if summary.Tier != portal.GPATierMid {
			t.Fatalf("expected mid tier for 2.50, got %s", summary.Tier)
		}
	})
}

func TestGPAService_AddCourse(t *testing.T) {
	t.Parallel()

	t.Run("validates the course fields", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.GPA()

		_, err := svc.AddCourse(context.Background(), portal.CourseInput{Name: "  ", Credits: 0, Grade: -1})
		var vErr *portal.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"name", "credits", "grade"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s field error, got %#v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("trims the course name", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.GPA()

		course, err := svc.AddCourse(context.Background(), portal.CourseInput{Name: "  Linear Algebra  ", Credits: 3, Grade: 3.7})
		if err != nil {
			t.Fatalf("AddCourse failed: %v", err)
		}
		if course.Name != "Linear Algebra" {
			t.Fatalf("expected trimmed name, got %q", course.Name)
		}
	})
}

func TestGPAService_RemoveCourse(t *testing.T) {
	t.Parallel()

	t.Run("removes only the named course", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.GPA()
		ctx := context.Background()

		first, err := svc.AddCourse(ctx, portal.CourseInput{Name: "Databases", Credits: 3, Grade: 3.3})
		if err != nil {
			t.Fatalf("AddCourse failed: %v", err)
		}
		second, err := svc.AddCourse(ctx, portal.CourseInput{Name: "Networks", Credits: 3, Grade: 3.0})
		if err != nil {
			t.Fatalf("AddCourse failed: %v", err)
		}

		if err := svc.RemoveCourse(ctx, first.ID); err != nil {
			t.Fatalf("RemoveCourse failed: %v", err)
		}

		summary, err := svc.Summary(ctx)
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}
		if len(summary.Courses) != 1 || summary.Courses[0].ID != second.ID {
			t.Fatalf("expected only %s to remain, got %#v", second.ID, summary.Courses)
		}
	})

	t.Run("unknown ids are not found", func(t *testing.T) {
		t.Parallel()

		factory := testfixtures.NewServiceFactory(t)
		svc := factory.GPA()

		if err := svc.RemoveCourse(context.Background(), "missing"); !errors.Is(err, portal.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestGPAService_Reset(t *testing.T) {
	t.Parallel()

	factory := testfixtures.NewServiceFactory(t)
	svc := factory.GPA()
	ctx := context.Background()

	if _, err := svc.AddCourse(ctx, portal.CourseInput{Name: "Compilers", Credits: 4, Grade: 3.9}); err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}

	if err := svc.Reset(ctx, false); !errors.Is(err, portal.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if count, err := svc.Count(ctx); err != nil || count != 1 {
		t.Fatalf("unconfirmed reset must not clear courses: count=%d err=%v", count, err)
	}

	if err := svc.Reset(ctx, true); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if count, err := svc.Count(ctx); err != nil || count != 0 {
		t.Fatalf("expected empty course list after reset: count=%d err=%v", count, err)
	}
}
