package state

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	settingMode    = "mode"
	settingVersion = "version"
)

// Modes is the persisted selector state.
type Modes struct {
	Mode    string
	Version string
}

// DisplayEntry is one payload that reached the display.
type DisplayEntry struct {
	ID          string    `db:"id"`
	Reference   string    `db:"reference"`
	Label       string    `db:"label"`
	Mode        string    `db:"mode"`
	Version     string    `db:"version"`
	Placeholder bool      `db:"placeholder"`
	Fingerprint string    `db:"fingerprint"`
	DisplayedAt time.Time `db:"displayed_at"`
}

type Repository interface {
	LoadModes(ctx context.Context) (Modes, bool, error)
	SaveModes(ctx context.Context, modes Modes) error
	RecordDisplay(ctx context.Context, entry *DisplayEntry) error
	RecentDisplays(ctx context.Context, limit int) ([]DisplayEntry, error)
	PruneDisplays(ctx context.Context, keep int) (int64, error)
}

type DBRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{
		db:  db,
		now: time.Now,
	}
}

type setting struct {
	Name  string `db:"name"`
	Value string `db:"value"`
}

// LoadModes returns the saved modes. The bool is false when nothing was
// saved yet.
func (r *DBRepository) LoadModes(ctx context.Context) (Modes, bool, error) {
	var settings []setting
	if err := r.db.SelectContext(ctx, &settings,
		"SELECT name, value FROM settings WHERE name IN (?, ?)",
		settingMode, settingVersion); err != nil {
		return Modes{}, false, fmt.Errorf("db.SelectContext(settings) > %w", err)
	}

	var modes Modes
	for _, s := range settings {
		switch s.Name {
		case settingMode:
			modes.Mode = s.Value
		case settingVersion:
			modes.Version = s.Value
		}
	}
	return modes, len(settings) > 0, nil
}

// SaveModes replaces both settings in one transaction.
func (r *DBRepository) SaveModes(ctx context.Context, modes Modes) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM settings WHERE name IN (?, ?)",
		settingMode, settingVersion); err != nil {
		return fmt.Errorf("tx.ExecContext(delete settings) > %w", err)
	}
	now := r.now().UTC()
	for _, s := range []setting{
		{Name: settingMode, Value: modes.Mode},
		{Name: settingVersion, Value: modes.Version},
	} {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO settings (name, value, updated_at) VALUES (?, ?, ?)",
			s.Name, s.Value, now); err != nil {
			return fmt.Errorf("tx.ExecContext(insert setting %s) > %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

// RecordDisplay inserts an entry, assigning an ID and a time when unset.
func (r *DBRepository) RecordDisplay(ctx context.Context, entry *DisplayEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.DisplayedAt.IsZero() {
		entry.DisplayedAt = r.now()
	}
	entry.DisplayedAt = entry.DisplayedAt.UTC()

	if _, err := r.db.NamedExecContext(ctx,
		`INSERT INTO display_history (id, reference, label, mode, version, placeholder, fingerprint, displayed_at)
		VALUES (:id, :reference, :label, :mode, :version, :placeholder, :fingerprint, :displayed_at)`,
		entry); err != nil {
		return fmt.Errorf("db.NamedExecContext(insert display_history) > %w", err)
	}
	return nil
}

// RecentDisplays returns the newest entries first.
func (r *DBRepository) RecentDisplays(ctx context.Context, limit int) ([]DisplayEntry, error) {
	var entries []DisplayEntry
	if err := r.db.SelectContext(ctx, &entries,
		`SELECT id, reference, label, mode, version, placeholder, fingerprint, displayed_at
		FROM display_history ORDER BY displayed_at DESC LIMIT ?`,
		limit); err != nil {
		return nil, fmt.Errorf("db.SelectContext(display_history) > %w", err)
	}
	return entries, nil
}

// PruneDisplays deletes all but the newest keep entries.
func (r *DBRepository) PruneDisplays(ctx context.Context, keep int) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM display_history WHERE id NOT IN (
		SELECT id FROM (SELECT id FROM display_history ORDER BY displayed_at DESC LIMIT ?) AS recent
	)`, keep)
	if err != nil {
		return 0, fmt.Errorf("db.ExecContext(prune display_history) > %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return deleted, nil
}
