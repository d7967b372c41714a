package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hammamikhairi/souschef/internal/db"
	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Compile-time interface check.
var _ domain.SessionStore = (*SQLiteStore)(nil)

const timeLayout = time.RFC3339Nano

// sessionRowID is the primary key of the only session row.
const sessionRowID = 1

// SQLiteStore persists the session in SQLite so it survives restarts.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger
	now func() time.Time
}

// NewSQLiteStore creates a store on an open, migrated database.
func NewSQLiteStore(database *sql.DB, log *logger.Logger) *SQLiteStore {
	return &SQLiteStore{db: database, log: log, now: time.Now}
}

// Save replaces the stored session, its completed steps and its timers in
// one transaction.
func (s *SQLiteStore) Save(ctx context.Context, state domain.SessionState) error {
	s.log.Debug("saving session (recipe=%q, step=%d, timers=%d)", state.ActiveRecipeID, state.StepIndex, len(state.Timers))

	return db.WithinTx(ctx, s.db, func(ctx context.Context, tx db.DBTX) error {
		if err := clearSession(ctx, tx); err != nil {
			return err
		}

		p := state.Preferences
		_, err := tx.ExecContext(ctx, `INSERT INTO session_state (
				id, active_recipe_id, step_index, scale_factor, is_paused,
				keep_screen_on, voice_enabled, voice_speed, auto_advance, haptics, timer_sound,
				last_action_at, session_started_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sessionRowID,
			state.ActiveRecipeID,
			state.StepIndex,
			state.ScaleFactor,
			boolToInt(state.IsPaused),
			boolToInt(p.KeepScreenOn),
			boolToInt(p.VoiceEnabled),
			p.VoiceSpeed,
			boolToInt(p.AutoAdvance),
			boolToInt(p.Haptics),
			p.TimerSound,
			timeToValue(state.LastActionAt),
			timeToValue(state.SessionStartedAt),
			s.now().UTC().Format(timeLayout),
		)
		if err != nil {
			return fmt.Errorf("inserting session: %w", err)
		}

		for _, step := range state.CompletedSteps {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO session_completed_steps (session_id, step) VALUES (?, ?)`,
				sessionRowID, step); err != nil {
				return fmt.Errorf("inserting completed step %d: %w", step, err)
			}
		}

		for i, t := range state.Timers {
			_, err := tx.ExecContext(ctx, `INSERT INTO session_timers (
					id, session_id, position, label, duration_ns, remaining_ns,
					associated_step, started_at, paused_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				t.ID,
				sessionRowID,
				i,
				t.Label,
				int64(t.Duration),
				int64(t.Remaining),
				nullableIntToValue(t.AssociatedStep),
				timeToValue(t.StartedAt),
				timeToValue(t.PausedAt),
			)
			if err != nil {
				return fmt.Errorf("inserting timer %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

// Load reads the stored session. An empty database yields a fresh state.
func (s *SQLiteStore) Load(ctx context.Context) (domain.SessionState, error) {
	var (
		state                domain.SessionState
		isPaused             int
		screenOn, voiceOn    int
		autoAdvance, haptics int
		lastAction, started  sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `SELECT
			active_recipe_id, step_index, scale_factor, is_paused,
			keep_screen_on, voice_enabled, voice_speed, auto_advance, haptics, timer_sound,
			last_action_at, session_started_at
		FROM session_state WHERE id = ?`, sessionRowID).Scan(
		&state.ActiveRecipeID,
		&state.StepIndex,
		&state.ScaleFactor,
		&isPaused,
		&screenOn,
		&voiceOn,
		&state.Preferences.VoiceSpeed,
		&autoAdvance,
		&haptics,
		&state.Preferences.TimerSound,
		&lastAction,
		&started,
	)
	if err == sql.ErrNoRows {
		s.log.Debug("no saved session, returning a fresh one")
		return domain.NewSessionState(), nil
	}
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("loading session: %w", err)
	}

	state.IsPaused = intToBool(isPaused)
	state.Preferences.KeepScreenOn = intToBool(screenOn)
	state.Preferences.VoiceEnabled = intToBool(voiceOn)
	state.Preferences.AutoAdvance = intToBool(autoAdvance)
	state.Preferences.Haptics = intToBool(haptics)
	if state.LastActionAt, err = parseNullableTime(lastAction); err != nil {
		return domain.SessionState{}, fmt.Errorf("parsing last_action_at: %w", err)
	}
	if state.SessionStartedAt, err = parseNullableTime(started); err != nil {
		return domain.SessionState{}, fmt.Errorf("parsing session_started_at: %w", err)
	}

	if state.CompletedSteps, err = s.loadCompletedSteps(ctx); err != nil {
		return domain.SessionState{}, err
	}
	if state.Timers, err = s.loadTimers(ctx); err != nil {
		return domain.SessionState{}, err
	}
	return state, nil
}

func (s *SQLiteStore) loadCompletedSteps(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT step FROM session_completed_steps WHERE session_id = ? ORDER BY step`, sessionRowID)
	if err != nil {
		return nil, fmt.Errorf("listing completed steps: %w", err)
	}
	defer rows.Close()

	var steps []int
	for rows.Next() {
		var step int
		if err := rows.Scan(&step); err != nil {
			return nil, fmt.Errorf("scanning completed step: %w", err)
		}
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating completed steps: %w", err)
	}
	return steps, nil
}

func (s *SQLiteStore) loadTimers(ctx context.Context) ([]domain.Timer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
			id, label, duration_ns, remaining_ns, associated_step, started_at, paused_at
		FROM session_timers WHERE session_id = ? ORDER BY position`, sessionRowID)
	if err != nil {
		return nil, fmt.Errorf("listing timers: %w", err)
	}
	defer rows.Close()

	var timers []domain.Timer
	for rows.Next() {
		var (
			t                 domain.Timer
			duration, remain  int64
			step              sql.NullInt64
			startedAt, paused sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Label, &duration, &remain, &step, &startedAt, &paused); err != nil {
			return nil, fmt.Errorf("scanning timer: %w", err)
		}
		t.Duration = time.Duration(duration)
		t.Remaining = time.Duration(remain)
		if step.Valid {
			v := int(step.Int64)
			t.AssociatedStep = &v
		}
		if t.StartedAt, err = parseNullableTime(startedAt); err != nil {
			return nil, fmt.Errorf("parsing timer %s started_at: %w", t.ID, err)
		}
		if t.PausedAt, err = parseNullableTime(paused); err != nil {
			return nil, fmt.Errorf("parsing timer %s paused_at: %w", t.ID, err)
		}
		timers = append(timers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timers: %w", err)
	}
	return timers, nil
}

// Clear deletes the stored session with its timers and completed steps.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	err := db.WithinTx(ctx, s.db, func(ctx context.Context, tx db.DBTX) error {
		return clearSession(ctx, tx)
	})
	if err != nil {
		return err
	}
	s.log.Debug("cleared saved session")
	return nil
}

// clearSession deletes child rows explicitly: foreign_keys is a
// per-connection pragma, so ON DELETE CASCADE cannot be relied on for
// pooled connections.
func clearSession(ctx context.Context, tx db.DBTX) error {
	for _, stmt := range []string{
		`DELETE FROM session_timers WHERE session_id = ?`,
		`DELETE FROM session_completed_steps WHERE session_id = ?`,
		`DELETE FROM session_state WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, sessionRowID); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
	}
	return nil
}

// timeToValue stores zero times as NULL.
func timeToValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

func parseNullableTime(s sql.NullString) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeLayout, s.String)
}

func nullableIntToValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}
