package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/mataam/internal/cache"
)

func TestCart_AddMergesByMenuItem(t *testing.T) {
	c := New()
	c.Add(Line{MenuItemID: 7, NameEn: "Couscous", Price: 850, Quantity: 1})
	c.Add(Line{MenuItemID: 7, NameEn: "Couscous", Price: 850, Quantity: 2})

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Quantity)
	_, err := uuid.Parse(c.Lines[0].ID)
	assert.NoError(t, err)

	c.UpdateQuantity(7, 0)
	assert.Empty(t, c.Lines)
}

func TestCart_Totals(t *testing.T) {
	c := New()
	c.Add(Line{MenuItemID: 1, Price: 333, Quantity: 3})
	c.Add(Line{MenuItemID: 2, Price: 1250, Quantity: 2})
	c.Add(Line{MenuItemID: 3, Price: 1, Quantity: 1})

	assert.Equal(t, int64(999+2500+1), c.Subtotal())
	assert.Equal(t, c.Subtotal(), c.Total())
	assert.Equal(t, 6, c.ItemCount())

	c.UpdateQuantity(2, 5)
	assert.Equal(t, int64(999+6250+1), c.Subtotal())

	c.Remove(1)
	c.Remove(42)
	assert.Len(t, c.Lines, 2)
	assert.Equal(t, uint(2), c.Lines[0].MenuItemID)

	c.UpdateNotes(3, "extra sauce")
	assert.Equal(t, "extra sauce", c.Lines[1].Notes)

	c.Clear()
	assert.Zero(t, c.ItemCount())
	assert.NotNil(t, c.View().Items)
}

func TestStore_PersistsEveryChange(t *testing.T) {
	kv := cache.NewMemory()
	s := NewStore(kv, time.Hour)
	ctx := context.Background()

	c, err := s.Update(ctx, "", func(c *Cart) {
		c.Add(Line{MenuItemID: 9, Price: 500, Quantity: 1})
	})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)

	reloaded, err := NewStore(kv, time.Hour).Load(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Lines, reloaded.Lines)

	_, err = s.Update(ctx, c.ID, func(c *Cart) { c.UpdateQuantity(9, 4) })
	require.NoError(t, err)
	reloaded, err = s.Load(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded.Lines[0].Quantity)
}

func TestStore_DiscardsMalformedData(t *testing.T) {
	kv := cache.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, keyPrefix+"broken", []byte(`{"items": oops`), 0))

	c, err := NewStore(kv, 0).Load(ctx, "broken")
	require.NoError(t, err)
	assert.Equal(t, "broken", c.ID)
	assert.Empty(t, c.Lines)
}
