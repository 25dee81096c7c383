package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleGitOperationReturnsZeroOnError(t *testing.T) {
	result := HandleGitOperation("fetch churn", func() (int, error) {
		return 0, errors.New("git exited 128")
	})
	assert.Equal(t, 0, result)
}

func TestHandleGitOperationReturnsResultOnSuccess(t *testing.T) {
	result := HandleGitOperation("fetch churn", func() (int, error) {
		return 42, nil
	})
	assert.Equal(t, 42, result)
}

func TestHandleReportGenerationReturnsZeroOnError(t *testing.T) {
	result := HandleReportGeneration("hotspot report", func() (string, error) {
		return "", errors.New("render failed")
	})
	assert.Equal(t, "", result)
}

func TestHandleReportGenerationReturnsResultOnSuccess(t *testing.T) {
	result := HandleReportGeneration("hotspot report", func() (string, error) {
		return "ok", nil
	})
	assert.Equal(t, "ok", result)
}
