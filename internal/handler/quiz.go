package handler

import (
	"mime/multipart"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a document
// @Description Uploads a .txt, .docx or .pdf document and returns up to num_questions cloze and multiple-choice items each. Sparse documents yield fewer items.
// @Tags quiz
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Source document (.txt, .docx, .pdf)"
// @Param num_questions formData int false "Questions per format (1-20)" default(5)
// @Param seed formData int false "Seed for a reproducible quiz"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 415 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/quizzes [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	fileHeader, ok := c.Locals(middleware.LocalFile).(*multipart.FileHeader)
	if !ok || fileHeader == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}
	numQuestions, _ := c.Locals(middleware.LocalNumQuestions).(int)
	seed, _ := c.Locals(middleware.LocalSeed).(*int64)

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("failed to open uploaded file", err)
	}
	defer file.Close()

	req := &dto.GenerateQuizRequest{
		Filename:     fileHeader.Filename,
		NumQuestions: numQuestions,
		Seed:         seed,
	}
	quiz, err := h.service.GenerateFromUpload(c.UserContext(), req, file)
	if err != nil {
		return err // handled by ErrorHandler middleware
	}

	logger.Get().Debug("Quiz generated via API",
		zap.String("id", quiz.ID),
		zap.Int64("size", fileHeader.Size),
	)
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// GetQuiz godoc
// @Summary Get a generated quiz
// @Description Returns a quiz generated earlier, while it is still cached
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID (ULID)"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	id, _ := c.Locals(middleware.LocalQuizID).(string)
	if id == "" {
		id = c.Params("id")
	}

	quiz, err := h.service.GetQuiz(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// Health godoc
// @Summary Health check
// @Description Reports service status and cache connectivity
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status: "ok",
		Cache:  h.service.CacheStatus(c.UserContext()),
	})
}
