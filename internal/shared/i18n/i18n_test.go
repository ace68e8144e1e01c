package i18n_test

import (
	"context"
	"testing"

	"github.com/Sedmeq/WorkTrack/internal/shared/contextutil"
	"github.com/Sedmeq/WorkTrack/internal/shared/i18n"

	"github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {
	i18n.Init("")

	t.Run("default locale keeps the day label", func(t *testing.T) {
		got := i18n.T(context.Background(), "duration.days", map[string]any{"Days": 2})
		assert.Equal(t, "2 gün", got)
	})

	t.Run("english from context", func(t *testing.T) {
		ctx := contextutil.WithLocale(context.Background(), "en")
		got := i18n.T(ctx, "duration.days", map[string]any{"Days": 3})
		assert.Equal(t, "3 days", got)
	})

	t.Run("unknown locale falls back to default", func(t *testing.T) {
		ctx := contextutil.WithLocale(context.Background(), "xx")
		got := i18n.T(ctx, "duration.days", map[string]any{"Days": 1})
		assert.Equal(t, "1 gün", got)
	})

	t.Run("unknown message id", func(t *testing.T) {
		assert.Equal(t, "nope.missing", i18n.T(context.Background(), "nope.missing"))
	})
}
