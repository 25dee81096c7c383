package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateShortStringUnchanged(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 30))
}

func TestTruncateLongStringAddsEllipsis(t *testing.T) {
	result := truncate("this-is-a-very-long-repository-name", 10)

	assert.Len(t, result, 10)
	assert.True(t, len(result) >= 3 && result[len(result)-3:] == "...")
}

func TestGradeColorFuncCoversEveryGrade(t *testing.T) {
	for _, grade := range []string{"A", "B", "C", "D", "F"} {
		assert.NotNil(t, gradeColorFunc(grade))
	}
}

func TestScoreColorFuncCoversFullRange(t *testing.T) {
	for _, score := range []float64{95, 80, 65, 45, 10} {
		assert.NotNil(t, scoreColorFunc(score))
	}
}

func TestConcernColorFuncKnownSeverities(t *testing.T) {
	for _, severity := range []string{"critical", "warning", "info"} {
		assert.NotNil(t, concernColorFunc(severity))
	}
}
