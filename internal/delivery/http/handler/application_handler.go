package handler

import (
	"errors"
	"io"
	"time"

	"job-board/internal/delivery/http/dto"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/pkg/response"
	"job-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// maxResumeBytes caps how much of an uploaded resume is read into memory.
const maxResumeBytes = 10 << 20

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type updateApplicationRequest struct {
	Status           string     `json:"status"`
	InterviewMessage *string    `json:"interviewMessage"`
	InterviewDate    *time.Time `json:"interviewDate"`
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "A resume file is required", nil, err)
	}
	if fileHeader.Size > maxResumeBytes {
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume file too large", nil, nil)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Could not read resume file", nil, err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxResumeBytes))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Could not read resume file", nil, err)
	}

	app, err := h.uc.Apply(c.Context(), actor, jobID, usecase.ApplyInput{
		Message: c.FormValue("message"),
		Resume: usecase.ResumeFile{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Content:     content,
		},
	})
	if err != nil {
		return mapApplicationError(err)
	}

	data := map[string]any{"application": dto.FromApplication(app)}
	return response.Success(c, fiber.StatusOK, "Application submitted successfully", data)
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	appID, err := uuid.Parse(c.Params("appId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	var req updateApplicationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	app, err := h.uc.UpdateStatus(c.Context(), actor, appID, usecase.UpdateApplicationInput{
		Status:           req.Status,
		InterviewMessage: req.InterviewMessage,
		InterviewDate:    req.InterviewDate,
	})
	if err != nil {
		return mapApplicationError(err)
	}

	data := map[string]any{"application": dto.FromApplication(app)}
	return response.Success(c, fiber.StatusOK, "Application status updated", data)
}

func (h *ApplicationHandler) MyApplications(c fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	result, err := h.uc.ListForCandidate(c.Context(), actor)
	if err != nil {
		return mapApplicationError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCandidateApplications(result))
}

func mapApplicationError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidResume):
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume must be a PDF file", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application data", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrJobEnded):
		return middleware.NewAppError(fiber.StatusBadRequest, "Job has ended", nil, err)
	case errors.Is(err, usecase.ErrApplicationClosed):
		return middleware.NewAppError(fiber.StatusBadRequest, "Application is already closed", nil, err)
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied to this job", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
