package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Session identifies the signed-in user. It is read-only for the pipeline.
type Session struct {
	UserID string
	Token  string
}

// Source fetches raw tasks from the backend.
type Source interface {
	FetchUserTasks(ctx context.Context, s Session) ([]RawTask, error)
	FetchTeamTasks(ctx context.Context, s Session) (map[string][]RawTask, error)
}

type Origin string

const (
	OriginTeam             Origin = "team"
	OriginPersonal         Origin = "personal"
	OriginPersonalFallback Origin = "personal_fallback"
)

// Snapshot is the result of one fetch cycle.
type Snapshot struct {
	Input     Input
	Origin    Origin
	FetchedAt time.Time
}

// Fallback reports whether the tasks are shown because the user has no team.
func (s Snapshot) Fallback() bool {
	return s.Origin == OriginPersonalFallback
}

type Loader struct {
	Source Source
	Logger *slog.Logger
	Now    func() time.Time
}

func NewLoader(src Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{Source: src, Logger: logger, Now: time.Now}
}

// Load fetches the team tasks. When the backend reports the user is not in
// a team it fetches the personal tasks instead and returns them without an
// error. Any other failure is returned and the caller keeps its old state.
func (l *Loader) Load(ctx context.Context, s Session) (Snapshot, error) {
	groups, err := l.Source.FetchTeamTasks(ctx, s)
	if err == nil {
		l.Logger.Debug("team tasks fetched", "user", s.UserID, "buckets", len(groups))
		return Snapshot{Input: Grouped(groups), Origin: OriginTeam, FetchedAt: l.Now()}, nil
	}

	if !IsNotInTeam(err) {
		l.Logger.Error("failed to get tasks for team", "user", s.UserID, "error", err)
		return Snapshot{}, fmt.Errorf("getting tasks for team failed: %w", err)
	}

	l.Logger.Info("user is not part of any team, falling back to personal tasks", "user", s.UserID)
	snap, err := l.LoadPersonal(ctx, s)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Origin = OriginPersonalFallback
	return snap, nil
}

// LoadPersonal fetches only the tasks assigned to the user.
func (l *Loader) LoadPersonal(ctx context.Context, s Session) (Snapshot, error) {
	list, err := l.Source.FetchUserTasks(ctx, s)
	if err != nil {
		l.Logger.Error("failed to get tasks for user", "user", s.UserID, "error", err)
		return Snapshot{}, fmt.Errorf("getting tasks for user failed: %w", err)
	}
	l.Logger.Debug("user tasks fetched", "user", s.UserID, "count", len(list))
	return Snapshot{Input: Flat(list), Origin: OriginPersonal, FetchedAt: l.Now()}, nil
}
