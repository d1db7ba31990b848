// Package preset stores named handwriting settings in a SQLite database.
package preset

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-handscript"

	_ "modernc.org/sqlite"
)

// DefaultFileName is the database file created in the user config directory.
const DefaultFileName = "presets.db"

// MaxNameLength bounds preset names.
const MaxNameLength = 64

var (
	ErrPresetNotFound    = errors.New("preset not found")
	ErrInvalidPresetName = errors.New("invalid preset name")
)

// Preset is a named set of handwriting settings.
type Preset struct {
	Name       string
	Style      int
	Bias       float64
	Processing handscript.ProcessingConfig
	Chunking   handscript.ChunkConfig
	Render     handscript.RenderSettings
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the name and every setting.
func (p Preset) Validate() error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if err := p.Processing.Validate(); err != nil {
		return err
	}
	if err := p.Chunking.Validate(); err != nil {
		return err
	}
	if err := p.Render.Validate(); err != nil {
		return err
	}
	return handscript.ValidateHandwriting(p.Style, p.Bias)
}

// ValidateName accepts 1-64 letters, digits, '-', '_' or '.', not starting with '.'.
func ValidateName(name string) error {
	if name == "" || len(name) > MaxNameLength {
		return fmt.Errorf("%w: %q (must be 1-%d characters)", ErrInvalidPresetName, name, MaxNameLength)
	}
	if name[0] == '.' {
		return fmt.Errorf("%w: %q (must not start with '.')", ErrInvalidPresetName, name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return fmt.Errorf("%w: %q (invalid character %q)", ErrInvalidPresetName, name, r)
		}
	}
	return nil
}

// Store persists presets. Safe for concurrent use.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens or creates the preset database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating preset directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening preset database: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing preset schema: %w", err)
	}

	return &Store{db: db, path: path, now: time.Now}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save creates or replaces a preset. CreatedAt is kept on replace.
func (s *Store) Save(ctx context.Context, p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}

	processing, err := json.Marshal(p.Processing)
	if err != nil {
		return fmt.Errorf("encoding processing: %w", err)
	}
	chunking, err := json.Marshal(p.Chunking)
	if err != nil {
		return fmt.Errorf("encoding chunking: %w", err)
	}
	render, err := json.Marshal(p.Render)
	if err != nil {
		return fmt.Errorf("encoding render: %w", err)
	}

	now := formatTime(s.now())
	_, err = s.db.ExecContext(ctx, upsertPreset,
		p.Name, p.Style, p.Bias, string(processing), string(chunking), string(render), now, now)
	if err != nil {
		return fmt.Errorf("saving preset %q: %w", p.Name, err)
	}
	return nil
}

// Get returns the named preset or ErrPresetNotFound.
func (s *Store) Get(ctx context.Context, name string) (*Preset, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE name = ?`, name)
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading preset %q: %w", name, err)
	}
	return p, nil
}

// List returns all presets ordered by name.
func (s *Store) List(ctx context.Context) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing presets: %w", err)
	}
	defer rows.Close()

	var presets []Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("listing presets: %w", err)
		}
		presets = append(presets, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing presets: %w", err)
	}
	return presets, nil
}

// Delete removes the named preset or returns ErrPresetNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting preset %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting preset %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (*Preset, error) {
	var (
		p                            Preset
		processing, chunking, render string
		createdAt, updatedAt         string
	)
	if err := row.Scan(&p.Name, &p.Style, &p.Bias, &processing, &chunking, &render, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(processing), &p.Processing); err != nil {
		return nil, fmt.Errorf("decoding processing: %w", err)
	}
	if err := json.Unmarshal([]byte(chunking), &p.Chunking); err != nil {
		return nil, fmt.Errorf("decoding chunking: %w", err)
	}
	if err := json.Unmarshal([]byte(render), &p.Render); err != nil {
		return nil, fmt.Errorf("decoding render: %w", err)
	}

	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("decoding created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("decoding updated_at: %w", err)
	}
	return &p, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
