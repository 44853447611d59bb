package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS records (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	imported_at INTEGER NOT NULL,
	data        BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	id           TEXT PRIMARY KEY,
	record_id    TEXT NOT NULL REFERENCES records(id) ON DELETE CASCADE,
	completed_at INTEGER NOT NULL,
	data         BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS results_by_record ON results(record_id, completed_at);
`
