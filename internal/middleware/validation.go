package middleware

import (
	"strconv"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Keys under which validated request values are stored in fiber locals.
const (
	LocalFile         = "validated_file"
	LocalNumQuestions = "validated_num_questions"
	LocalSeed         = "validated_seed"
	LocalQuizID       = "validated_quiz_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator           *validation.Validator
	defaultNumQuestions int
}

// NewValidationMiddleware creates a validation middleware. defaultNumQuestions
// applies when the form omits num_questions.
func NewValidationMiddleware(validator *validation.Validator, defaultNumQuestions int) *ValidationMiddleware {
	return &ValidationMiddleware{
		validator:           validator,
		defaultNumQuestions: defaultNumQuestions,
	}
}

// ValidateGenerateParams validates the multipart upload of POST /api/quizzes.
func (vm *ValidationMiddleware) ValidateGenerateParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var errs domain.ValidationErrors

		filename := ""
		fileHeader, err := c.FormFile("file")
		if err == nil {
			filename = fileHeader.Filename
		}

		numQuestions := vm.defaultNumQuestions
		if raw := strings.TrimSpace(c.FormValue("num_questions")); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				errs = append(errs, domain.NewInvalidFormatError("num_questions", raw))
			} else {
				numQuestions = parsed
			}
		}

		var seed *int64
		if raw := strings.TrimSpace(c.FormValue("seed")); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				errs = append(errs, domain.NewInvalidFormatError("seed", raw))
			} else {
				seed = &parsed
			}
		}

		for _, e := range vm.validator.ValidateGenerateRequest(filename, numQuestions) {
			// A malformed count was already reported above.
			if e.Field == "num_questions" && hasField(errs, "num_questions") {
				continue
			}
			errs = append(errs, e)
		}
		if len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}

		c.Locals(LocalFile, fileHeader)
		c.Locals(LocalNumQuestions, numQuestions)
		c.Locals(LocalSeed, seed)
		return c.Next()
	}
}

// ValidateQuizID validates the :id path parameter.
func (vm *ValidationMiddleware) ValidateQuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errs := vm.validator.ValidateQuizID(id); len(errs) > 0 {
			return errs
		}
		c.Locals(LocalQuizID, id)
		return c.Next()
	}
}

func hasField(errs domain.ValidationErrors, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
