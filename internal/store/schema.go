package store

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    version TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL,
    reason TEXT,
    degraded BOOLEAN NOT NULL DEFAULT 0,
    pc_source TEXT,
    lib_files INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    action TEXT NOT NULL,
    from_version TEXT,
    to_version TEXT,
    detail TEXT,
    timestamp TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
CREATE INDEX IF NOT EXISTS idx_events_action ON events(action);
`
