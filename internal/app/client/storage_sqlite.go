package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"idcards/internal/domain/card"
)

// Storage - локальный кэш карточек текущего владельца.
type Storage interface {
	ReplaceAll(ctx context.Context, cards []card.Card) error
	Save(ctx context.Context, c card.Card) error
	Get(ctx context.Context, id string) (*card.Card, error)
	List(ctx context.Context) ([]card.Card, error)
	Delete(ctx context.Context, id string) error
	Purge(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	Close() error
}

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	s := &SQLiteStorage{db: db}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache tables: %w", err)
	}
	return s, nil
}

func (s *SQLiteStorage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			owner_id INTEGER NOT NULL,
			institution_name TEXT NOT NULL,
			holder_name TEXT NOT NULL,
			programme TEXT NOT NULL DEFAULT '',
			registration_code TEXT NOT NULL DEFAULT '',
			valid_from TEXT NOT NULL DEFAULT '',
			valid_to TEXT NOT NULL DEFAULT '',
			photo_url TEXT NOT NULL DEFAULT '',
			color_scheme TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_cards_created ON cards(created_at DESC);
	`)
	return err
}

const upsertCard = `
	INSERT INTO cards (id, owner_id, institution_name, holder_name, programme,
	                   registration_code, valid_from, valid_to, photo_url,
	                   color_scheme, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		institution_name = excluded.institution_name,
		holder_name = excluded.holder_name,
		programme = excluded.programme,
		registration_code = excluded.registration_code,
		valid_from = excluded.valid_from,
		valid_to = excluded.valid_to,
		photo_url = excluded.photo_url,
		color_scheme = excluded.color_scheme,
		updated_at = excluded.updated_at
	WHERE excluded.updated_at >= cards.updated_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveCard(ctx context.Context, db execer, c card.Card) error {
	_, err := db.ExecContext(ctx, upsertCard,
		c.ID, c.OwnerID, c.InstitutionName, c.HolderName, c.Programme,
		c.RegistrationCode, c.ValidFrom, c.ValidTo, c.PhotoURL,
		c.ColorScheme, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save card %s: %w", c.ID, err)
	}
	return nil
}

// ReplaceAll заменяет содержимое кэша свежим списком с сервера.
func (s *SQLiteStorage) ReplaceAll(ctx context.Context, cards []card.Card) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM cards"); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	for _, c := range cards {
		if err = saveCard(ctx, tx, c); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Save не затирает более новую версию карточки более старой.
func (s *SQLiteStorage) Save(ctx context.Context, c card.Card) error {
	return saveCard(ctx, s.db, c)
}

const selectCard = `
	SELECT id, owner_id, institution_name, holder_name, programme,
	       registration_code, valid_from, valid_to, photo_url,
	       color_scheme, created_at, updated_at
	FROM cards`

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(row scanner) (card.Card, error) {
	var c card.Card
	err := row.Scan(&c.ID, &c.OwnerID, &c.InstitutionName, &c.HolderName, &c.Programme,
		&c.RegistrationCode, &c.ValidFrom, &c.ValidTo, &c.PhotoURL,
		&c.ColorScheme, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (s *SQLiteStorage) Get(ctx context.Context, id string) (*card.Card, error) {
	c, err := scanCard(s.db.QueryRowContext(ctx, selectCard+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	return &c, nil
}

// List возвращает карточки, новые первыми.
func (s *SQLiteStorage) List(ctx context.Context) ([]card.Card, error) {
	rows, err := s.db.QueryContext(ctx, selectCard+" ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []card.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (s *SQLiteStorage) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM cards WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Purge(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM cards"); err != nil {
		return fmt.Errorf("purge cache: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cards").Scan(&count); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return count, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
