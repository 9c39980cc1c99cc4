package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/mwantia/menufs/cache"
	"github.com/mwantia/menufs/data"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store persists snapshots of a cache item tree in SQLite. Only the latest
// snapshot is kept; each Save replaces the previous one atomically.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// NewStore opens the snapshot database. The dbPath can be ":memory:" for an
// in-memory database or a file path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// A single connection keeps ":memory:" databases alive and shared
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS menufs_items (
		row INTEGER PRIMARY KEY,
		parent INTEGER,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		icon TEXT NOT NULL,
		kind INTEGER NOT NULL,
		file_path TEXT,
		only_show_in TEXT,
		not_show_in TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_menufs_items_parent ON menufs_items(parent, position);

	CREATE TABLE IF NOT EXISTS menufs_snapshot (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Returns the identifier name defined for this store
func (*Store) GetName() string {
	return "sqlite"
}

// Open verifies the database connection.
func (s *Store) Open(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Close()
}

// Save replaces the stored snapshot with root.
func (s *Store) Save(ctx context.Context, root *cache.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM menufs_items"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO menufs_items (row, parent, position, id, name, icon, kind, file_path, only_show_in, not_show_in)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	row := int64(0)
	var insert func(item *cache.Item, parent sql.NullInt64, position int) error
	insert = func(item *cache.Item, parent sql.NullInt64, position int) error {
		if item == nil {
			return nil
		}

		row++
		current := row

		onlyShowIn, err := encodeList(item.OnlyShowIn)
		if err != nil {
			return err
		}
		notShowIn, err := encodeList(item.NotShowIn)
		if err != nil {
			return err
		}

		if _, err := stmt.ExecContext(ctx, current, parent, position,
			item.ID, item.Name, item.Icon, int(item.Kind),
			nullString(item.FilePath), onlyShowIn, notShowIn); err != nil {
			return err
		}

		for i, child := range item.Children {
			if err := insert(child, sql.NullInt64{Int64: current, Valid: true}, i); err != nil {
				return err
			}
		}

		return nil
	}

	if err := insert(root, sql.NullInt64{}, 0); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO menufs_snapshot (key, value) VALUES ('saved_at', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, strconv.FormatInt(time.Now().UnixNano(), 10)); err != nil {
		return err
	}

	return tx.Commit()
}

// Load restores the stored snapshot. Returns data.ErrNotFound if nothing has
// been saved yet.
func (s *Store) Load(ctx context.Context) (*cache.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT row, parent, id, name, icon, kind, file_path, only_show_in, not_show_in
		FROM menufs_items ORDER BY parent, position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int64]*cache.Item)
	var root *cache.Item

	for rows.Next() {
		var row int64
		var parent sql.NullInt64
		var kind int
		var filePath, onlyShowIn, notShowIn sql.NullString
		item := &cache.Item{}

		if err := rows.Scan(&row, &parent, &item.ID, &item.Name, &item.Icon, &kind,
			&filePath, &onlyShowIn, &notShowIn); err != nil {
			return nil, err
		}

		item.Kind = data.ItemKind(kind)
		if filePath.Valid {
			item.FilePath = filePath.String
		}
		if item.OnlyShowIn, err = decodeList(onlyShowIn); err != nil {
			return nil, err
		}
		if item.NotShowIn, err = decodeList(notShowIn); err != nil {
			return nil, err
		}

		items[row] = item
		if !parent.Valid {
			root = item
			continue
		}

		// Parents always sort before their children: NULL first, then by row.
		owner, exists := items[parent.Int64]
		if !exists {
			return nil, errors.New("sqlite: snapshot references unknown parent " + strconv.FormatInt(parent.Int64, 10))
		}
		owner.Children = append(owner.Children, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if root == nil {
		return nil, data.ErrNotFound
	}

	return root, nil
}

// SavedAt returns when the current snapshot was written.
func (s *Store) SavedAt(ctx context.Context) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM menufs_snapshot WHERE key = 'saved_at'").Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, data.ErrNotFound
	}
	if err != nil {
		return time.Time{}, err
	}

	nanos, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, err
	}

	return time.Unix(0, nanos), nil
}

func encodeList(values []string) (sql.NullString, error) {
	if len(values) == 0 {
		return sql.NullString{}, nil
	}

	bytes, err := json.Marshal(values)
	if err != nil {
		return sql.NullString{}, err
	}

	return sql.NullString{String: string(bytes), Valid: true}, nil
}

func decodeList(value sql.NullString) ([]string, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}

	var values []string
	if err := json.Unmarshal([]byte(value.String), &values); err != nil {
		return nil, err
	}

	return values, nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
