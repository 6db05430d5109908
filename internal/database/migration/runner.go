// Package migration applies the versioned SQL files that define the eqwip
// schema. Files are named V<version>__<name>.sql and applied in version
// order, each inside its own transaction, with a checksum recorded so a
// later edit to an already-applied file fails loudly instead of silently
// diverging the schema.
package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Advisory lock key shared by every instance racing to migrate the same
// database. The value is the ASCII bytes "EQWP".
const lockKey int64 = 0x45515750

var filenameRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

// Migration is one discovered SQL file.
type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

// Runner discovers and applies migrations from Dir. An empty Dir falls back
// to a migrations/ directory next to the running binary. Logger may be nil.
type Runner struct {
	Dir    string
	Logger *zap.Logger
}

// Run brings the database up to the latest discovered version. It is safe
// to call from several instances at once; only one holds the lock and the
// rest observe the finished state.
func (r Runner) Run(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	migs, err := r.discover()
	if err != nil {
		return err
	}
	if len(migs) == 0 {
		log.Debug("no migrations found")
		return nil
	}

	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	if _, err := db.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	defer func() {
		_, _ = db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockKey)
	}()

	applied, err := appliedChecksums(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migs {
		if sum, ok := applied[m.Version]; ok {
			if sum != m.Checksum {
				return fmt.Errorf("migration %d (%s) changed after being applied", m.Version, m.Filename)
			}
			continue
		}

		start := time.Now()
		if err := apply(ctx, db, m); err != nil {
			return err
		}
		log.Info("migration applied",
			zap.Int64("version", m.Version),
			zap.String("name", m.Name),
			zap.Duration("took", time.Since(start)))
	}

	return nil
}

// discover reads Dir and returns the migrations sorted by version. A
// missing directory yields an empty set rather than an error so a fresh
// deployment without bundled migrations still boots.
func (r Runner) discover() ([]Migration, error) {
	dir := strings.TrimSpace(r.Dir)
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(filepath.Dir(exe), "migrations")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	migs := make([]Migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m, ok, err := parseFile(dir, e.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			migs = append(migs, m)
		}
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d (%s and %s)",
				migs[i].Version, migs[i-1].Filename, migs[i].Filename)
		}
	}
	return migs, nil
}

// parseFile loads one directory entry. Files that do not match the naming
// scheme are skipped, not rejected, so READMEs and editor droppings in the
// migrations directory stay harmless.
func parseFile(dir, name string) (Migration, bool, error) {
	groups := filenameRe.FindStringSubmatch(name)
	if groups == nil {
		return Migration{}, false, nil
	}

	version, err := strconv.ParseInt(groups[1], 10, 64)
	if err != nil {
		return Migration{}, false, fmt.Errorf("invalid migration version in %s", name)
	}

	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return Migration{}, false, err
	}
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return Migration{}, false, fmt.Errorf("empty migration file %s", name)
	}

	sum := sha256.Sum256([]byte(body))
	return Migration{
		Version:  version,
		Name:     groups[2],
		Filename: name,
		SQL:      body,
		Checksum: hex.EncodeToString(sum[:]),
	}, true, nil
}

func appliedChecksums(ctx context.Context, db *sql.DB) (map[int64]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var version int64
		var checksum string
		if err := rows.Scan(&version, &checksum); err != nil {
			return nil, err
		}
		out[version] = checksum
	}
	return out, rows.Err()
}

func apply(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Filename, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum, applied_at) VALUES ($1, $2, $3, $4)`,
		m.Version, m.Name, m.Checksum, time.Now().UTC(),
	); err != nil {
		return err
	}
	return tx.Commit()
}
