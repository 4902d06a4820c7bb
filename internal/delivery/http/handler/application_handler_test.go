package handler

import (
	"errors"
	"strings"
	"testing"

	"job-board/internal/delivery/http/middleware"
	"job-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func asAppError(t *testing.T, err error) *middleware.AppError {
	t.Helper()
	var appErr *middleware.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *middleware.AppError, got %T", err)
	}
	return appErr
}

func TestMapApplicationError_InvalidResume(t *testing.T) {
	appErr := asAppError(t, mapApplicationError(usecase.ErrInvalidResume))
	if appErr.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", appErr.StatusCode)
	}
	if appErr.Message != "Resume must be a PDF file" {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
}

func TestMapApplicationError_InvalidInputNotAboutResume(t *testing.T) {
	appErr := asAppError(t, mapApplicationError(usecase.ErrInvalidInput))
	if appErr.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", appErr.StatusCode)
	}
	if strings.Contains(strings.ToLower(appErr.Message), "resume") {
		t.Fatalf("bad status value must not be reported as a resume problem: %q", appErr.Message)
	}
}

func TestMapApplicationError_Statuses(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{usecase.ErrForbidden, fiber.StatusForbidden},
		{usecase.ErrJobNotFound, fiber.StatusNotFound},
		{usecase.ErrApplicationNotFound, fiber.StatusNotFound},
		{usecase.ErrJobEnded, fiber.StatusBadRequest},
		{usecase.ErrApplicationClosed, fiber.StatusBadRequest},
		{usecase.ErrAlreadyApplied, fiber.StatusConflict},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		appErr := asAppError(t, mapApplicationError(tc.err))
		if appErr.StatusCode != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, appErr.StatusCode)
		}
	}
}
