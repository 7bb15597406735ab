package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/genmeta/internal/checksum"
	"github.com/vvka-141/genmeta/internal/document"
	"github.com/vvka-141/genmeta/internal/logging"
	"github.com/vvka-141/genmeta/internal/retry"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// Entry is one stored record.
type Entry struct {
	ID          uuid.UUID
	Path        string
	Checksum    string
	Source      string
	Record      genmeta.Record
	Prompt      string
	PromptHash  string
	Tags        []string
	Fingerprint string
	ExtractedAt time.Time
}

// Store reads and writes records in a single table.
//
// Thread-Safety: Safe for concurrent use.
type Store struct {
	pool       *pgxpool.Pool
	owned      bool
	table      pgx.Identifier
	executor   *retry.Executor
	calculator checksum.Calculator
	logger     genmeta.Logger
}

type Option func(*Store)

// WithTable sets the table name, optionally schema-qualified ("media.records").
func WithTable(name string) Option {
	return func(s *Store) { s.table = parseIdentifier(name) }
}

func WithExecutor(e *retry.Executor) Option {
	return func(s *Store) { s.executor = e }
}

func WithLogger(l genmeta.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New returns a Store on an existing pool. Close does not close pool.
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	if pool == nil {
		panic("pool cannot be nil")
	}
	s := newStore(opts...)
	s.pool = pool
	return s
}

func newStore(opts ...Option) *Store {
	s := &Store{
		table:      parseIdentifier(genmeta.DefaultStoreTable),
		calculator: checksum.New(),
		logger:     logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.executor == nil {
		s.executor = retry.NewDefaultExecutor()
	}
	s.executor = s.executor.WithLogger(s.logger)
	return s
}

// Close releases the pool if the store opened it.
func (s *Store) Close() {
	if s.owned {
		s.pool.Close()
	}
}

// Table returns the quoted table name.
func (s *Store) Table() string {
	return s.table.Sanitize()
}

func parseIdentifier(name string) pgx.Identifier {
	return pgx.Identifier(strings.Split(name, "."))
}

// EnsureSchema creates the table and its indexes if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	err := s.executor.Execute(ctx, func(ctx context.Context) error {
		return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			for _, stmt := range schemaStatements(s.table) {
				if _, err := tx.Exec(ctx, stmt); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("ensure schema for %s: %w: %w", s.Table(), genmeta.ErrStoreFailed, err)
	}
	s.logger.Verbose("store: schema ready (%s)", s.Table())
	return nil
}

// Save upserts every result that carries a record, in one transaction.
// Results without a record are skipped. It returns the number of rows written.
func (s *Store) Save(ctx context.Context, results []genmeta.Result) (int, error) {
	var rows [][]any
	for _, r := range results {
		if !r.Found() {
			continue
		}
		args, err := s.rowArgs(r)
		if err != nil {
			return 0, fmt.Errorf("save %s: %w: %w", r.Item.Path, genmeta.ErrStoreFailed, err)
		}
		rows = append(rows, args)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	upsert := upsertSQL(s.table)
	err := s.executor.Execute(ctx, func(ctx context.Context) error {
		batch := &pgx.Batch{}
		for _, args := range rows {
			batch.Queue(upsert, args...)
		}
		return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			return tx.SendBatch(ctx, batch).Close()
		})
	})
	if err != nil {
		return 0, fmt.Errorf("save %d records: %w: %w", len(rows), genmeta.ErrStoreFailed, err)
	}
	s.logger.Verbose("store: saved %d records", len(rows))
	return len(rows), nil
}

func (s *Store) rowArgs(r genmeta.Result) ([]any, error) {
	record, err := json.Marshal(r.Record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	fingerprint, err := s.calculator.Fingerprint(r.Record)
	if err != nil {
		return nil, err
	}

	prompt := pgtype.Text{String: r.Prompt, Valid: r.Prompt != ""}
	promptHash := pgtype.Text{}
	if prompt.Valid {
		promptHash = pgtype.Text{String: s.calculator.CalculatePrompt(r.Prompt), Valid: true}
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	return []any{
		r.Item.ID.String(),
		r.Item.Path,
		r.Item.Checksum,
		r.Source,
		string(record),
		prompt,
		promptHash,
		tags,
		fingerprint,
	}, nil
}

// Get returns the entry stored for id, or an error wrapping genmeta.ErrNotFound.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Entry, error) {
	entry, err := retry.Do(ctx, s.executor, func(ctx context.Context) (Entry, error) {
		return scanEntry(s.pool.QueryRow(ctx, selectSQL(s.table), id.String()))
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, fmt.Errorf("media %s: %w", id, genmeta.ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get %s: %w: %w", id, genmeta.ErrStoreFailed, err)
	}
	return entry, nil
}

func scanEntry(row pgx.Row) (Entry, error) {
	var (
		e          Entry
		id         string
		record     []byte
		prompt     pgtype.Text
		promptHash pgtype.Text
	)
	if err := row.Scan(&id, &e.Path, &e.Checksum, &e.Source, &record, &prompt, &promptHash, &e.Tags, &e.Fingerprint, &e.ExtractedAt); err != nil {
		return Entry{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return Entry{}, fmt.Errorf("stored media id %q: %w", id, err)
	}
	doc, err := document.Decode(record)
	if err != nil {
		return Entry{}, fmt.Errorf("stored record for %s: %w", id, err)
	}

	e.ID = parsed
	e.Record = genmeta.Record(doc)
	e.Prompt = prompt.String
	e.PromptHash = promptHash.String
	return e, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	n, err := retry.Do(ctx, s.executor, func(ctx context.Context) (int64, error) {
		var n int64
		err := s.pool.QueryRow(ctx, "SELECT count(*) FROM "+s.Table()).Scan(&n)
		return n, err
	})
	if err != nil {
		return 0, fmt.Errorf("count records: %w: %w", genmeta.ErrStoreFailed, err)
	}
	return n, nil
}

// KnownChecksums returns the file checksums already stored, for skipping
// unchanged media on rescans.
func (s *Store) KnownChecksums(ctx context.Context) (map[string]bool, error) {
	known, err := retry.Do(ctx, s.executor, func(ctx context.Context) (map[string]bool, error) {
		rows, err := s.pool.Query(ctx, "SELECT DISTINCT checksum FROM "+s.Table())
		if err != nil {
			return nil, err
		}
		sums, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return nil, err
		}
		known := make(map[string]bool, len(sums))
		for _, sum := range sums {
			known[sum] = true
		}
		return known, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load checksums: %w: %w", genmeta.ErrStoreFailed, err)
	}
	return known, nil
}

// Duplicates returns the other entries whose record fingerprint equals that
// of id, ordered by path.
func (s *Store) Duplicates(ctx context.Context, id uuid.UUID) ([]Entry, error) {
	entries, err := retry.Do(ctx, s.executor, func(ctx context.Context) ([]Entry, error) {
		rows, err := s.pool.Query(ctx, duplicatesSQL(s.table), id.String())
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var entries []Entry
		for rows.Next() {
			e, err := scanEntry(rows)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
		return entries, rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("duplicates of %s: %w: %w", id, genmeta.ErrStoreFailed, err)
	}
	return entries, nil
}
