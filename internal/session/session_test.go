package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafe-preorder-bot/internal/domain/menu"
)

func TestCart_AddTwice(t *testing.T) {
	c := Cart{}
	c.Add(1)
	c.Add(2)
	c.Add(1)

	assert.Equal(t, 2, c[1])
	assert.Equal(t, 1, c[2])
	assert.Equal(t, []int64{1, 2}, c.IDs())
}

func TestCart_Clear(t *testing.T) {
	c := Cart{3: 4, 5: 1}
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Len())

	empty := Cart{}
	empty.Clear()
	assert.True(t, empty.IsEmpty())
}

func TestSession_JSONRoundTrip(t *testing.T) {
	photo := "file-1"
	pickup := time.Date(2024, 5, 1, 13, 30, 0, 0, time.UTC)
	steps := []Step{
		Idle{},
		ChoosingItem{Category: "Напитки"},
		Confirming{PickupAt: pickup},
		AddItemPrice{Category: "Супы", Name: "Борщ"},
		AddItemPhoto{Draft: menu.Item{Category: "Супы", Name: "Борщ", Price: 1500, PhotoFileID: &photo}},
		EditItemValue{ItemID: 9, Field: menu.FieldPrice},
		AttachPhoto{ItemID: 3},
		RenameCategory{Category: "Старое"},
	}

	for _, step := range steps {
		t.Run(step.Kind(), func(t *testing.T) {
			in := &Session{ChatID: 77, Step: step, Cart: Cart{1: 2}}
			raw, err := json.Marshal(in)
			require.NoError(t, err)

			var out Session
			require.NoError(t, json.Unmarshal(raw, &out))
			assert.Equal(t, in.ChatID, out.ChatID)
			assert.Equal(t, in.Cart, out.Cart)
			if c, ok := step.(Confirming); ok {
				got, ok := out.Step.(Confirming)
				require.True(t, ok)
				assert.True(t, c.PickupAt.Equal(got.PickupAt))
				return
			}
			assert.Equal(t, step, out.Step)
		})
	}
}

func TestSession_UnknownStep(t *testing.T) {
	var s Session
	err := json.Unmarshal([]byte(`{"chat_id":1,"step":{"kind":"flying"}}`), &s)
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s, err := store.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, Idle{}, s.Step)
	assert.True(t, s.Cart.IsEmpty())

	s.Cart.Add(4)
	s.Step = ChoosingTime{}
	// not visible until Put
	fresh, _ := store.Get(ctx, 10)
	assert.True(t, fresh.Cart.IsEmpty())

	require.NoError(t, store.Put(ctx, s))
	got, err := store.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, ChoosingTime{}, got.Step)
	assert.Equal(t, 1, got.Cart[4])

	require.NoError(t, store.Clear(ctx, 10))
	got, _ = store.Get(ctx, 10)
	assert.Equal(t, Idle{}, got.Step)
	assert.True(t, got.Cart.IsEmpty())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	store := NewRedisStore(rdb, "customer", time.Hour)

	s, err := store.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, Idle{}, s.Step)

	s.Cart.Add(7)
	s.Cart.Add(7)
	s.Step = ChoosingItem{Category: "Десерты"}
	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, ChoosingItem{Category: "Десерты"}, got.Step)
	assert.Equal(t, 2, got.Cart[7])

	key := store.key(5)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))

	// a restarted process gets a new boot id and sees no carts
	restarted := NewRedisStore(rdb, "customer", time.Hour)
	fresh, err := restarted.Get(ctx, 5)
	require.NoError(t, err)
	assert.True(t, fresh.Cart.IsEmpty())

	require.NoError(t, store.Clear(ctx, 5))
	assert.False(t, mr.Exists(key))
}
