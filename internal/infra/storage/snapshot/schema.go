package snapshot

// Schema DDL таблиц снимка. Порядок строк внутри таблицы хранится в колонке position
const Schema = `
CREATE TABLE IF NOT EXISTS event_configs (
    id                     TEXT PRIMARY KEY,
    position               INTEGER NOT NULL,
    name                   TEXT NOT NULL,
    description            TEXT NOT NULL DEFAULT '',
    location               JSONB NOT NULL,
    timezone               TEXT NOT NULL,
    duration_minutes       INTEGER NOT NULL,
    buffer_before_minutes  INTEGER NOT NULL,
    buffer_after_minutes   INTEGER NOT NULL,
    max_bookings_per_day   INTEGER NOT NULL,
    minimum_notice_minutes INTEGER NOT NULL,
    scheduling_window_days INTEGER NOT NULL,
    weekly_schedule        JSONB NOT NULL,
    date_overrides         JSONB NOT NULL,
    max_attendees          INTEGER NOT NULL,
    waitlist_enabled       BOOLEAN NOT NULL,
    waitlist_capacity      INTEGER NOT NULL,
    created_at             TIMESTAMPTZ NOT NULL,
    updated_at             TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS bookings (
    id                  TEXT PRIMARY KEY,
    position            INTEGER NOT NULL,
    event_config_id     TEXT NOT NULL,
    booking_date        DATE NOT NULL,
    start_time          TIME NOT NULL,
    end_time            TIME NOT NULL,
    timezone            TEXT NOT NULL,
    status              TEXT NOT NULL,
    attendees           JSONB NOT NULL,
    notes               TEXT NOT NULL DEFAULT '',
    cancel_reason       TEXT,
    reschedule_reason   TEXT,
    recurrence_group_id TEXT,
    cancelled_at        TIMESTAMPTZ,
    created_at          TIMESTAMPTZ NOT NULL,
    updated_at          TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bookings_event_date ON bookings (event_config_id, booking_date);

CREATE TABLE IF NOT EXISTS waitlist_entries (
    id              TEXT PRIMARY KEY,
    position        INTEGER NOT NULL,
    event_config_id TEXT NOT NULL,
    entry_date      DATE NOT NULL,
    slot_start      TIME NOT NULL,
    slot_end        TIME NOT NULL,
    name            TEXT NOT NULL,
    email           TEXT NOT NULL,
    status          TEXT NOT NULL,
    notified_at     TIMESTAMPTZ,
    created_at      TIMESTAMPTZ NOT NULL,
    updated_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS calendar_connections (
    id              TEXT PRIMARY KEY,
    position        INTEGER NOT NULL,
    provider        TEXT NOT NULL,
    sync_direction  TEXT NOT NULL,
    check_conflicts BOOLEAN NOT NULL,
    connected       BOOLEAN NOT NULL,
    last_synced_at  TIMESTAMPTZ,
    imported_events INTEGER NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL,
    updated_at      TIMESTAMPTZ NOT NULL
);
`
