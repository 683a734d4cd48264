package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	team      map[string][]RawTask
	teamErr   error
	user      []RawTask
	userErr   error
	userCalls int
	teamCalls int
}

func (s *stubSource) FetchUserTasks(context.Context, Session) ([]RawTask, error) {
	s.userCalls++
	return s.user, s.userErr
}

func (s *stubSource) FetchTeamTasks(context.Context, Session) (map[string][]RawTask, error) {
	s.teamCalls++
	return s.team, s.teamErr
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoader_Load(t *testing.T) {
	session := Session{UserID: "42", Token: "t"}

	t.Run("Should return team tasks as a grouped snapshot", func(t *testing.T) {
		src := &stubSource{team: sampleGrouped()}
		snap, err := NewLoader(src, quietLogger()).Load(context.Background(), session)

		require.NoError(t, err)
		assert.Equal(t, OriginTeam, snap.Origin)
		assert.True(t, snap.Input.IsGrouped())
		assert.Equal(t, 0, src.userCalls)
	})

	t.Run("Should fall back to personal tasks when the user has no team", func(t *testing.T) {
		src := &stubSource{
			teamErr: fmt.Errorf("fetch team: %w", ErrNotInTeam),
			user:    []RawTask{{ID: "1", Title: "mine", Status: "CREATED", DueDate: "2024-06-14"}},
		}
		snap, err := NewLoader(src, quietLogger()).Load(context.Background(), session)

		require.NoError(t, err)
		assert.True(t, snap.Fallback())
		assert.False(t, snap.Input.IsGrouped())
		assert.Equal(t, 1, src.userCalls)

		agg := Aggregate(snap.Input, Filter{})
		assert.Len(t, agg.ByStatus[StatusCreated], 1)
	})

	t.Run("Should surface other team errors without falling back", func(t *testing.T) {
		src := &stubSource{teamErr: &ServerError{Op: "team", Status: 500, Message: "Internal Server Error"}}
		_, err := NewLoader(src, quietLogger()).Load(context.Background(), session)

		require.Error(t, err)
		var se *ServerError
		assert.True(t, errors.As(err, &se))
		assert.Equal(t, 0, src.userCalls)
	})

	t.Run("Should surface a failing fallback fetch", func(t *testing.T) {
		src := &stubSource{teamErr: ErrNotInTeam, userErr: &AuthError{Op: "user"}}
		_, err := NewLoader(src, quietLogger()).Load(context.Background(), session)

		require.Error(t, err)
		assert.True(t, IsAuth(err))
	})
}

func TestErrors(t *testing.T) {
	t.Run("Should match not-in-team by message", func(t *testing.T) {
		assert.True(t, IsNotInTeam(&DomainError{Message: NotInTeamMessage}))
		assert.False(t, IsNotInTeam(&DomainError{Message: "other"}))
	})

	t.Run("Should unwrap network errors", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &NetworkError{Op: "user", Err: io.ErrUnexpectedEOF})
		assert.True(t, IsNetwork(err))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}
