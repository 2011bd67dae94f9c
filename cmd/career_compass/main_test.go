package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-compass/internal/config"
)

func TestLoadRuntime_RejectsOversizedThinkingBudget(t *testing.T) {
	t.Setenv("CAREER_COMPASS_THINKING_BUDGET", "5000000000")

	rt, err := loadRuntime(config.New(), "")
	require.Error(t, err)
	assert.Nil(t, rt)
	assert.Contains(t, err.Error(), "'thinking_budget' must be at most")
}

func TestLoadRuntime_ZeroThinkingBudgetUsesDefault(t *testing.T) {
	t.Setenv("CAREER_COMPASS_THINKING_BUDGET", "0")
	t.Setenv("CAREER_COMPASS_LOG_LEVEL", "info")
	t.Setenv("CAREER_COMPASS_LOG_FORMAT", "console")
	t.Setenv("LOG_LEVEL", "info")

	rt, err := loadRuntime(config.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, rt.cfg.ThinkingBudget)
	assert.NotNil(t, rt.requester(nil))
}
