package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS predictions (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL UNIQUE,
    start                TEXT,
    initial_value        REAL NOT NULL DEFAULT 0,
    created_at           TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS deltas (
    prediction_id        TEXT NOT NULL REFERENCES predictions(id) ON DELETE CASCADE,
    position             INTEGER NOT NULL,
    name                 TEXT NOT NULL,
    kind                 TEXT NOT NULL,
    value                REAL NOT NULL,
    start_on             TEXT,
    end_on               TEXT,
    on_date              TEXT,
    dates                TEXT,
    weekday              TEXT,
    month_day            INTEGER,
    skip                 INTEGER NOT NULL DEFAULT 0,
    unc_mode             TEXT,
    unc_unit             TEXT,
    unc_amount           REAL,
    unc_low_unit         TEXT,
    unc_low              REAL,
    unc_high_unit        TEXT,
    unc_high             REAL,
    PRIMARY KEY (prediction_id, position)
);

CREATE INDEX IF NOT EXISTS idx_predictions_updated ON predictions(updated_at);
`
