package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmptyQuiz(t *testing.T) {
	quiz := NewEmptyQuiz()
	assert.True(t, quiz.IsEmpty())

	raw, err := json.Marshal(quiz)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cloze":[],"mcq":[]}`, string(raw))
}

func TestMCQItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    MCQItem
		wantErr bool
	}{
		{
			name: "valid",
			item: MCQItem{Question: "The _____ stores DNA.", Answer: "nucleus", Options: []string{"ribosome", "nucleus", "membrane"}},
		},
		{
			name:    "missing question",
			item:    MCQItem{Answer: "nucleus", Options: []string{"ribosome", "nucleus"}},
			wantErr: true,
		},
		{
			name:    "single option",
			item:    MCQItem{Question: "q", Answer: "nucleus", Options: []string{"nucleus"}},
			wantErr: true,
		},
		{
			name:    "case-insensitive duplicate",
			item:    MCQItem{Question: "q", Answer: "nucleus", Options: []string{"Nucleus", "nucleus"}},
			wantErr: true,
		},
		{
			name:    "answer not among options",
			item:    MCQItem{Question: "q", Answer: "cell", Options: []string{"ribosome", "nucleus"}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClozeItem_Validate(t *testing.T) {
	assert.NoError(t, ClozeItem{Question: "The _____ stores DNA.", Answer: "nucleus"}.Validate())
	assert.Error(t, ClozeItem{Question: "The _____ stores DNA.", Answer: ""}.Validate())
	assert.Error(t, ClozeItem{Question: "The nucleus stores DNA.", Answer: "nucleus"}.Validate())
	assert.Error(t, ClozeItem{Question: "_____ and _____", Answer: "x"}.Validate())
}

func TestDomainError_Is(t *testing.T) {
	err := NewUnsupportedFormatError("rtf")
	assert.ErrorIs(t, err, &DomainError{Code: CodeUnsupportedFormat})
	assert.NotErrorIs(t, err, &DomainError{Code: CodeExtractionFailed})
	assert.Equal(t, "rtf", err.Context["extension"])

	raw, jerr := json.Marshal(err)
	require.NoError(t, jerr)
	assert.JSONEq(t, `{"code":"UNSUPPORTED_FORMAT","message":"unsupported document format: \"rtf\""}`, string(raw))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{NewMissingFieldError("file"), NewOutOfRangeError("num_questions", 0, 1, 20)}
	assert.Equal(t, "validation failed: file: field is required; num_questions: value must be between 1 and 20", errs.Error())
}
