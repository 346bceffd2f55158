package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"idcards/internal/domain/card"
)

func TestDatabaseName(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017/cards_prod", "cards_prod"},
		{"mongodb://user:pass@db:27017/cards?authSource=admin", "cards"},
		{"mongodb://localhost:27017", defaultDatabase},
		{"mongodb://localhost:27017/", defaultDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := databaseName(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := databaseName("mongodb://[::1")
	assert.Error(t, err)
}

func TestCardDocumentShape(t *testing.T) {
	c := card.Card{
		ID:      "7f1c",
		OwnerID: 3,
		Fields: card.Fields{
			HolderName:  "Ann Lee",
			ValidFrom:   "2023",
			ValidTo:     "2027",
			ColorScheme: card.SchemeGreen,
		},
		CreatedAt: 10,
		UpdatedAt: 20,
	}

	raw, err := bson.Marshal(c)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	assert.Equal(t, "7f1c", doc["_id"])
	assert.Equal(t, "Ann Lee", doc["holder_name"])
	assert.Equal(t, "green", doc["color_scheme"])
	assert.NotContains(t, doc, "fields")
	assert.NotContains(t, doc, "photo_url")
}
