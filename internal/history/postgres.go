package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"lotomania/internal/lotto"
)

const schema = `CREATE TABLE IF NOT EXISTS lotomania_draws (
	contest  INTEGER PRIMARY KEY,
	drawn_on TEXT NOT NULL DEFAULT '',
	numbers  INTEGER[] NOT NULL
)`

type drawRow struct {
	Contest int           `db:"contest"`
	DrawnOn string        `db:"drawn_on"`
	Numbers pq.Int64Array `db:"numbers"`
}

func (r drawRow) draw() lotto.Draw {
	nums := make([]int, len(r.Numbers))
	for i, n := range r.Numbers {
		nums[i] = int(n)
	}
	return lotto.Draw{Contest: r.Contest, Date: r.DrawnOn, Numbers: nums}
}

func rowOf(d lotto.Draw) drawRow {
	nums := make(pq.Int64Array, len(d.Numbers))
	for i, n := range d.Numbers {
		nums[i] = int64(n)
	}
	return drawRow{Contest: d.Contest, DrawnOn: d.Date, Numbers: nums}
}

// PostgresStore keeps the corpus in the lotomania_draws table.
type PostgresStore struct {
	db *sqlx.DB
}

// OpenPostgres connects with lib/pq.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect history database: %w", err)
	}
	return NewPostgresStore(db), nil
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure history schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) All(ctx context.Context) ([]lotto.Draw, error) {
	var rows []drawRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT contest, drawn_on, numbers FROM lotomania_draws ORDER BY contest DESC`); err != nil {
		return nil, fmt.Errorf("list draws: %w", err)
	}
	out := make([]lotto.Draw, len(rows))
	for i, r := range rows {
		out[i] = r.draw()
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, contest int) (lotto.Draw, bool, error) {
	var r drawRow
	err := s.db.GetContext(ctx, &r, `SELECT contest, drawn_on, numbers FROM lotomania_draws WHERE contest = $1`, contest)
	if errors.Is(err, sql.ErrNoRows) {
		return lotto.Draw{}, false, nil
	}
	if err != nil {
		return lotto.Draw{}, false, fmt.Errorf("get draw %d: %w", contest, err)
	}
	return r.draw(), true, nil
}

func (s *PostgresStore) Append(ctx context.Context, draws ...lotto.Draw) (int, error) {
	for _, d := range draws {
		if err := d.Validate(); err != nil {
			return 0, err
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for _, d := range draws {
		res, err := tx.NamedExecContext(ctx,
			`INSERT INTO lotomania_draws (contest, drawn_on, numbers) VALUES (:contest, :drawn_on, :numbers) ON CONFLICT (contest) DO NOTHING`,
			rowOf(d))
		if err != nil {
			return 0, fmt.Errorf("insert draw %d: %w", d.Contest, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	if added > 0 {
		log.Info().Int("added", added).Msg("History updated")
	}
	return added, nil
}
