package main

import (
	"testing"
	"time"

	"github.com/Afrawles/taskdash/internal/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("Should default to the current month", func(t *testing.T) {
		got, err := parseMonth("", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("Should parse YYYY-MM", func(t *testing.T) {
		got, err := parseMonth("2023-12", now)
		require.NoError(t, err)
		assert.Equal(t, time.December, got.Month())
		assert.Equal(t, 2023, got.Year())
	})

	t.Run("Should reject other layouts", func(t *testing.T) {
		_, err := parseMonth("12/2023", now)
		assert.Error(t, err)
	})
}

func TestParseFilter(t *testing.T) {
	t.Run("Should accept known fields case-insensitively", func(t *testing.T) {
		f, err := parseFilter("Assignee", " bob ")
		require.NoError(t, err)
		assert.Equal(t, tasks.Filter{Field: tasks.FilterAssignee, Value: "bob"}, f)
	})

	t.Run("Should default the field to name", func(t *testing.T) {
		f, err := parseFilter("", "report")
		require.NoError(t, err)
		assert.Equal(t, tasks.FilterName, f.Field)
	})

	t.Run("Should return the zero filter when nothing is set", func(t *testing.T) {
		f, err := parseFilter("", "")
		require.NoError(t, err)
		assert.False(t, f.Active())
	})

	t.Run("Should reject unknown fields", func(t *testing.T) {
		_, err := parseFilter("colour", "red")
		assert.ErrorContains(t, err, "name, priority, deadline, assignee")
	})
}

func TestParseOpen(t *testing.T) {
	s, ok, err := parseOpen("in progress")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, tasks.StatusInProgress, s)

	_, ok, err = parseOpen("")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = parseOpen("archived")
	assert.Error(t, err)
}
