package feature_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

func TestIdentityContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		id := feature.Identity{Group: "sales", UserID: "u42"}
		ctx := feature.WithIdentity(context.Background(), id)
		assert.Equal(t, id, feature.IdentityFromContext(ctx))
	})

	t.Run("missing identity is anonymous", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, feature.Anonymous, feature.IdentityFromContext(context.Background()))
	})

	t.Run("nil context is anonymous", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, feature.Anonymous, feature.IdentityFromContext(nil)) //nolint:staticcheck
	})

	t.Run("later identity wins", func(t *testing.T) {
		t.Parallel()
		ctx := feature.WithIdentity(context.Background(), feature.Identity{UserID: "first"})
		ctx = feature.WithIdentity(ctx, feature.Identity{UserID: "second"})
		assert.Equal(t, "second", feature.IdentityFromContext(ctx).UserID)
	})
}
