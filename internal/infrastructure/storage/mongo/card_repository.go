package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/exp/slog"

	"idcards/internal/domain/card"
)

const cardsCollection = "cards"

type CardRepository struct {
	coll *mongo.Collection
	log  *slog.Logger
}

func NewCardRepository(db *mongo.Database, log *slog.Logger) *CardRepository {
	return &CardRepository{
		coll: db.Collection(cardsCollection),
		log:  log.With("component", "card_repository", "store", "mongo"),
	}
}

// EnsureIndexes создаёт индекс для выборки карточек владельца.
func (r *CardRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create cards index: %w", err)
	}
	return nil
}

func (r *CardRepository) Create(ctx context.Context, c *card.Card) error {
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

func (r *CardRepository) ListByOwner(ctx context.Context, ownerID int) ([]card.Card, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		r.log.Error("failed to list cards", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("list cards: %w", err)
	}

	cards := []card.Card{}
	if err := cur.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}
	return cards, nil
}

func (r *CardRepository) Get(ctx context.Context, id string) (*card.Card, error) {
	var c card.Card
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, card.ErrNotFound
		}
		return nil, fmt.Errorf("get card: %w", err)
	}
	return &c, nil
}

func (r *CardRepository) Update(ctx context.Context, c *card.Card) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	if res.MatchedCount == 0 {
		return card.ErrNotFound
	}
	return nil
}

func (r *CardRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if res.DeletedCount == 0 {
		return card.ErrNotFound
	}
	return nil
}
