package geocode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGazetteerLookup(t *testing.T) {
	g := NewGazetteer()
	ctx := context.Background()

	tests := []struct {
		query    string
		wantName string
	}{
		{query: "Rotterdam, NL", wantName: "Rotterdam, NL"},
		{query: "rotterdam", wantName: "Rotterdam, NL"},
		{query: "  SINGAPORE  ", wantName: "Singapore, SG"},
		{query: "san francisco", wantName: "San Francisco, US"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			loc, err := g.Lookup(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, loc.Name)
			assert.True(t, loc.Coordinate.InRange())
		})
	}
}

func TestGazetteerNoMatch(t *testing.T) {
	g := NewGazetteer()

	_, err := g.Lookup(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestGazetteerCanceledContext(t *testing.T) {
	g := NewGazetteer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Lookup(ctx, "rotterdam")
	assert.ErrorIs(t, err, context.Canceled)
}
