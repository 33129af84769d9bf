package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS medications (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	dosage     TEXT NOT NULL,
	time       TEXT NOT NULL,
	frequency  TEXT NOT NULL DEFAULT 'daily',
	notes      TEXT NOT NULL DEFAULT '',
	is_active  INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0, 1)),
	last_taken DATETIME,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_medications_is_active ON medications(is_active);
CREATE INDEX IF NOT EXISTS idx_medications_time ON medications(time);
CREATE INDEX IF NOT EXISTS idx_medications_frequency ON medications(frequency);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS dose_events (
	id             TEXT PRIMARY KEY,
	medication_id  INTEGER NOT NULL REFERENCES medications(id),
	taken_at       DATETIME NOT NULL,
	scheduled_time TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_dose_events_medication_id ON dose_events(medication_id);
CREATE INDEX IF NOT EXISTS idx_dose_events_taken_at ON dose_events(taken_at);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
