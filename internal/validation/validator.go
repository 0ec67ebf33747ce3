package validation

import (
	"path/filepath"
	"regexp"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/extractor"
)

var quizIDPattern = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

const maxFilenameLength = 255

// Validator provides request validation functionality
type Validator struct {
	maxQuestions int
}

// NewValidator creates a validator that accepts up to maxQuestions per format.
func NewValidator(maxQuestions int) *Validator {
	if maxQuestions < 1 {
		maxQuestions = 1
	}
	return &Validator{maxQuestions: maxQuestions}
}

// MaxQuestions is the upper bound for num_questions.
func (v *Validator) MaxQuestions() int {
	return v.maxQuestions
}

// ValidateGenerateRequest checks an upload's filename and question count.
// Unsupported extensions are not reported here; they map to a distinct
// UNSUPPORTED_FORMAT error further down.
func (v *Validator) ValidateGenerateRequest(filename string, numQuestions int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	name := strings.TrimSpace(filename)
	switch {
	case name == "":
		errors = append(errors, domain.NewMissingFieldError("file"))
	case len(name) > maxFilenameLength:
		errors = append(errors, domain.NewOutOfRangeError("file", len(name), 1, maxFilenameLength))
	case filepath.Ext(name) == "":
		errors = append(errors, domain.NewInvalidFormatError("file", name))
	}

	if numQuestions < 1 || numQuestions > v.maxQuestions {
		errors = append(errors, domain.NewOutOfRangeError("num_questions", numQuestions, 1, v.maxQuestions))
	}

	return errors
}

// ValidateQuizID validates the id path parameter of a stored quiz.
func (v *Validator) ValidateQuizID(id string) domain.ValidationErrors {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("id")}
	}
	if !quizIDPattern.MatchString(id) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("id", id)}
	}
	return nil
}

// IsSupportedUpload reports whether the filename has an extension the
// extractor can read.
func IsSupportedUpload(filename string) bool {
	return extractor.IsSupported(filename)
}
