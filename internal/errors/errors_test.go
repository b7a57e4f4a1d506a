package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError(t *testing.T) {
	err := New(FileSystemErrorCode, "boom").
		WithLocation(SourceLocation{File: "model.yaml", Line: 3}).
		WithContext("path", "src").
		WithSuggestion("try again")

	assert.Equal(t, "model.yaml:3: boom", err.Error())
	assert.Equal(t, FileSystemErrorCode, err.ErrorCode())
	assert.Equal(t, "src", err.Context()["path"])
	assert.Equal(t, []string{"try again"}, err.Suggestions())
}

func TestWrapKeepsCause(t *testing.T) {
	err := WrapFileSystemError("write", "src/app.module.ts", os.ErrPermission)

	assert.True(t, stderrors.Is(err, os.ErrPermission))
	assert.Contains(t, err.Error(), "failed to write 'src/app.module.ts'")
	assert.Equal(t, FileSystemErrorCode, CodeOf(fmt.Errorf("outer: %w", err)))
}

func TestMultipleErrors(t *testing.T) {
	var errs *MultipleErrors
	assert.NoError(t, errs.ErrorOrNil())

	AddValidationError(&errs, "name", "1blog", "must be an identifier")
	AddValidationError(&errs, "seedCount", 0, "must be positive")

	require.Error(t, errs.ErrorOrNil())
	assert.Equal(t, 2, errs.Count())
	assert.True(t, errs.HasCode(ValidationErrorCode))
	assert.Contains(t, errs.Error(), "multiple errors (2 total)")
	assert.Contains(t, errs.Error(), `invalid name "1blog"`)
}

func TestUsageError(t *testing.T) {
	err := NewUsageError("model name is required")

	assert.True(t, IsUsage(err))
	assert.False(t, IsUsage(os.ErrNotExist))
	assert.Equal(t, "UsageError", err.ErrorCode().String())
}
