// Package snapshot persists full copies of the in-memory store to PostgreSQL
// and restores them on startup.
package snapshot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// batchSize ограничивает количество строк в одном INSERT (лимит параметров PostgreSQL 65535)
const batchSize = 500

// Repository репозиторий снимков состояния
type Repository struct {
	db TxBeginner
}

// NewRepository создает новый экземпляр репозитория снимков
func NewRepository(db TxBeginner) *Repository {
	return &Repository{db: db}
}

// EnsureSchema создает таблицы снимка, если их ещё нет
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("%w: EnsureSchema - execute ddl: %v", ErrExecQuery, err)
	}
	return nil
}

// Save записывает снимок в одной транзакции: upsert всех строк и удаление отсутствующих
func (r *Repository) Save(ctx context.Context, st memory.State) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: Save - begin: %v", ErrTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	tables, err := stateRows(st)
	if err != nil {
		return err
	}

	for _, t := range tables {
		if err = upsertRows(ctx, tx, t); err != nil {
			return err
		}
		if err = deleteMissing(ctx, tx, t); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: Save - commit: %v", ErrTransaction, err)
	}
	return nil
}

// Load читает последний сохранённый снимок
func (r *Repository) Load(ctx context.Context) (memory.State, error) {
	var st memory.State

	err := r.query(ctx, tableEvents, eventColumns, func(row rowScanner) error {
		e, err := scanEvent(row)
		if err != nil {
			return err
		}
		st.Events = append(st.Events, e)
		return nil
	})
	if err != nil {
		return memory.State{}, err
	}

	err = r.query(ctx, tableBookings, bookingColumns, func(row rowScanner) error {
		b, err := scanBooking(row)
		if err != nil {
			return err
		}
		st.Bookings = append(st.Bookings, b)
		return nil
	})
	if err != nil {
		return memory.State{}, err
	}

	err = r.query(ctx, tableWaitlist, waitlistColumns, func(row rowScanner) error {
		w, err := scanWaitlistEntry(row)
		if err != nil {
			return err
		}
		st.Waitlist = append(st.Waitlist, w)
		return nil
	})
	if err != nil {
		return memory.State{}, err
	}

	err = r.query(ctx, tableConnections, connectionColumns, func(row rowScanner) error {
		c, err := scanConnection(row)
		if err != nil {
			return err
		}
		st.Connections = append(st.Connections, c)
		return nil
	})
	if err != nil {
		return memory.State{}, err
	}

	return st, nil
}

func (r *Repository) query(ctx context.Context, table string, columns []string, scan func(rowScanner) error) error {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Load %s - build select query: %v", ErrBuildQuery, table, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Load %s - execute select: %v", ErrExecQuery, table, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: Load %s - iterate rows: %v", ErrScanRow, table, err)
	}
	return nil
}

// tableRows строки одной таблицы снимка
type tableRows struct {
	table   string
	columns []string
	ids     []string
	values  [][]interface{}
}

func stateRows(st memory.State) ([]tableRows, error) {
	events := tableRows{table: tableEvents, columns: eventColumns}
	for i, e := range st.Events {
		v, err := eventValues(i, e)
		if err != nil {
			return nil, err
		}
		events.ids = append(events.ids, e.ID)
		events.values = append(events.values, v)
	}

	bookings := tableRows{table: tableBookings, columns: bookingColumns}
	for i, b := range st.Bookings {
		v, err := bookingValues(i, b)
		if err != nil {
			return nil, err
		}
		bookings.ids = append(bookings.ids, b.ID)
		bookings.values = append(bookings.values, v)
	}

	waitlist := tableRows{table: tableWaitlist, columns: waitlistColumns}
	for i, w := range st.Waitlist {
		waitlist.ids = append(waitlist.ids, w.ID)
		waitlist.values = append(waitlist.values, waitlistValues(i, w))
	}

	connections := tableRows{table: tableConnections, columns: connectionColumns}
	for i, c := range st.Connections {
		connections.ids = append(connections.ids, c.ID)
		connections.values = append(connections.values, connectionValues(i, c))
	}

	return []tableRows{events, bookings, waitlist, connections}, nil
}

// buildUpserts строит INSERT ... ON CONFLICT запросы пачками по batchSize строк
func buildUpserts(t tableRows) ([]string, [][]interface{}, error) {
	var (
		queries []string
		args    [][]interface{}
	)
	for start := 0; start < len(t.values); start += batchSize {
		end := start + batchSize
		if end > len(t.values) {
			end = len(t.values)
		}

		builder := psqlbuilder.Insert(t.table).Columns(t.columns...)
		for _, v := range t.values[start:end] {
			builder = builder.Values(v...)
		}

		query, a, err := builder.Suffix(psqlbuilder.UpsertSuffix("id", t.columns)).ToSql()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: Save %s - build upsert query: %v", ErrBuildQuery, t.table, err)
		}
		queries = append(queries, query)
		args = append(args, a)
	}
	return queries, args, nil
}

func upsertRows(ctx context.Context, tx *sql.Tx, t tableRows) error {
	queries, args, err := buildUpserts(t)
	if err != nil {
		return err
	}
	for i, query := range queries {
		if _, err := tx.ExecContext(ctx, query, args[i]...); err != nil {
			return fmt.Errorf("%w: Save %s - execute upsert: %v", ErrExecQuery, t.table, err)
		}
	}
	return nil
}

func buildDeleteMissing(t tableRows) (string, []interface{}, error) {
	ids := t.ids
	if ids == nil {
		ids = []string{}
	}
	query, args, err := psqlbuilder.Delete(t.table).
		Where("NOT (id = ANY(?))", pq.Array(ids)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: Save %s - build delete query: %v", ErrBuildQuery, t.table, err)
	}
	return query, args, nil
}

func deleteMissing(ctx context.Context, tx *sql.Tx, t tableRows) error {
	query, args, err := buildDeleteMissing(t)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save %s - execute delete: %v", ErrExecQuery, t.table, err)
	}
	return nil
}
