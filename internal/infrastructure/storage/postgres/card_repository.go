package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"idcards/internal/domain/card"
)

const cardColumns = `id, owner_id, institution_name, holder_name, programme, registration_code,
       valid_from, valid_to, photo_url, color_scheme, created_at, updated_at`

type CardRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewCardRepository(pool *pgxpool.Pool, log *slog.Logger) *CardRepository {
	return &CardRepository{
		pool: pool,
		log:  log.With("component", "card_repository"),
	}
}

func (r *CardRepository) Create(ctx context.Context, c *card.Card) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cards (`+cardColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.OwnerID, c.InstitutionName, c.HolderName, c.Programme, c.RegistrationCode,
		c.ValidFrom, c.ValidTo, c.PhotoURL, c.ColorScheme, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

func (r *CardRepository) ListByOwner(ctx context.Context, ownerID int) ([]card.Card, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+cardColumns+`
		FROM cards
		WHERE owner_id = $1
		ORDER BY created_at DESC, id`, ownerID)
	if err != nil {
		r.log.Error("failed to list cards", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	cards := []card.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}

	return cards, nil
}

func (r *CardRepository) Get(ctx context.Context, id string) (*card.Card, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id)

	c, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, card.ErrNotFound
		}
		return nil, fmt.Errorf("get card: %w", err)
	}
	return &c, nil
}

func (r *CardRepository) Update(ctx context.Context, c *card.Card) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE cards SET
			institution_name = $2, holder_name = $3, programme = $4, registration_code = $5,
			valid_from = $6, valid_to = $7, photo_url = $8, color_scheme = $9, updated_at = $10
		WHERE id = $1`,
		c.ID, c.InstitutionName, c.HolderName, c.Programme, c.RegistrationCode,
		c.ValidFrom, c.ValidTo, c.PhotoURL, c.ColorScheme, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return card.ErrNotFound
	}
	return nil
}

func (r *CardRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return card.ErrNotFound
	}
	return nil
}

func scanCard(row pgx.Row) (card.Card, error) {
	var c card.Card
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.InstitutionName, &c.HolderName, &c.Programme, &c.RegistrationCode,
		&c.ValidFrom, &c.ValidTo, &c.PhotoURL, &c.ColorScheme, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}
