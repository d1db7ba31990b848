package preset

const schema = `
CREATE TABLE IF NOT EXISTS presets (
	name       TEXT PRIMARY KEY,
	style      INTEGER NOT NULL,
	bias       REAL    NOT NULL,
	processing TEXT    NOT NULL,
	chunking   TEXT    NOT NULL,
	render     TEXT    NOT NULL,
	created_at TEXT    NOT NULL,
	updated_at TEXT    NOT NULL
);
`

const upsertPreset = `
INSERT INTO presets (name, style, bias, processing, chunking, render, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	style      = excluded.style,
	bias       = excluded.bias,
	processing = excluded.processing,
	chunking   = excluded.chunking,
	render     = excluded.render,
	updated_at = excluded.updated_at
`

const selectColumns = `SELECT name, style, bias, processing, chunking, render, created_at, updated_at FROM presets`
