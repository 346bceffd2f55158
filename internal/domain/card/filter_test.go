package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	cards := []Card{
		{ID: "1", Fields: Fields{HolderName: "Ann Lee", RegistrationCode: "GU-001", Programme: "Physics"}},
		{ID: "2", Fields: Fields{HolderName: "Sam Roe", RegistrationCode: "GU-002", Programme: "Chemistry"}},
		{ID: "3", Fields: Fields{HolderName: "Kim Park", RegistrationCode: "XY-777", Programme: "Applied PHYSICS"}},
	}

	ids := func(cs []Card) []string {
		out := []string{}
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}

	tests := []struct {
		name string
		q    string
		want []string
	}{
		{"empty query keeps all", "", []string{"1", "2", "3"}},
		{"blank query keeps all", "   ", []string{"1", "2", "3"}},
		{"holder name", "roe", []string{"2"}},
		{"registration code", "gu-00", []string{"1", "2"}},
		{"programme case-insensitive", "physics", []string{"1", "3"}},
		{"no match", "history", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(cards, tt.q)))
		})
	}
}
