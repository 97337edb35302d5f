package store

import (
	"context"
	"fmt"
	"sort"

	"crosslocale/internal/trpack"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS trpack_entries (
	pack_path TEXT NOT NULL,
	entry_key TEXT NOT NULL,
	orig      TEXT NOT NULL,
	text      TEXT NOT NULL,
	PRIMARY KEY (pack_path, entry_key)
)`

const upsertEntrySQL = `INSERT INTO trpack_entries (pack_path, entry_key, orig, text)
VALUES ($1, $2, $3, $4)
ON CONFLICT (pack_path, entry_key) DO UPDATE SET orig = EXCLUDED.orig, text = EXCLUDED.text`

const selectEntriesSQL = `SELECT pack_path, entry_key, orig, text FROM trpack_entries ORDER BY pack_path, entry_key`

// DB is the subset of *pgxpool.Pool the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PackStore persists compiled translation packs in PostgreSQL.
type PackStore struct {
	db DB
}

// NewPackStore creates a store on top of an open connection pool.
func NewPackStore(db DB) *PackStore {
	return &PackStore{db: db}
}

// Connect opens and pings a PostgreSQL pool.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")
	return pool, nil
}

// EnsureSchema creates the entries table if it doesn't exist.
func (s *PackStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure pack schema: %w", err)
	}
	return nil
}

// SavePacks upserts every entry of every pack in a single transaction. An
// existing row for the same pack and key is overwritten.
func (s *PackStore) SavePacks(ctx context.Context, packs map[string]trpack.Pack) (int, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	saved := 0
	for _, packPath := range sortedKeys(packs) {
		pack := packs[packPath]
		for _, key := range sortedKeys(pack) {
			entry := pack[key]
			if _, err := tx.Exec(ctx, upsertEntrySQL, packPath, key, entry.Orig, entry.Text); err != nil {
				_ = tx.Rollback(ctx)
				return 0, fmt.Errorf("upsert pack entry %s: %w", key, err)
			}
			saved++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	log.Info().Int("packs", len(packs)).Int("entries", saved).Msg("Saved packs to PostgreSQL")
	return saved, nil
}

// LoadPacks reads all stored entries back, grouped by pack path.
func (s *PackStore) LoadPacks(ctx context.Context) (map[string]trpack.Pack, error) {
	rows, err := s.db.Query(ctx, selectEntriesSQL)
	if err != nil {
		return nil, fmt.Errorf("query pack entries: %w", err)
	}
	defer rows.Close()

	packs := make(map[string]trpack.Pack)
	for rows.Next() {
		var packPath, key string
		var entry trpack.Entry
		if err := rows.Scan(&packPath, &key, &entry.Orig, &entry.Text); err != nil {
			return nil, fmt.Errorf("scan pack entry: %w", err)
		}
		pack, ok := packs[packPath]
		if !ok {
			pack = make(trpack.Pack)
			packs[packPath] = pack
		}
		pack[key] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pack entries: %w", err)
	}

	log.Info().Int("packs", len(packs)).Msg("Loaded packs from PostgreSQL")
	return packs, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
