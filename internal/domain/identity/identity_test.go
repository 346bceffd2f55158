package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity_Owns(t *testing.T) {
	tests := []struct {
		name    string
		who     Identity
		ownerID int
		want    bool
	}{
		{"owner", Identity{UserID: 7, Login: "ann"}, 7, true},
		{"other owner", Identity{UserID: 7}, 8, false},
		{"anonymous", Anonymous(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.who.Owns(tt.ownerID))
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithContext(context.Background(), Identity{UserID: 3, Login: "bob"})
	who, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, 3, who.UserID)
	assert.Equal(t, "bob", who.Login)

	_, ok = FromContext(WithContext(context.Background(), Anonymous()))
	assert.False(t, ok)
}
