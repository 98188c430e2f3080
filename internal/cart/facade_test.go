package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drone_hub_back_end/internal/models"
)

func TestFacadeInstantaneInitial(t *testing.T) {
	hub := NewHub()
	store := NewStore(NewMemoryKV(), hub)

	_, err := store.AddPurchase(context.Background(), "s", droneXPro(), 2)
	require.NoError(t, err)

	f := NewFacade(store, hub, "s")
	defer f.Close()

	cart := f.Cart()
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestFacadeMutationsRafraichissentInstantane(t *testing.T) {
	hub := NewHub()
	store := NewStore(NewMemoryKV(), hub)

	f := NewFacade(store, hub, "s")
	defer f.Close()

	_, err := f.AddPurchase(context.Background(), droneXPro(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(99900), f.Cart().Total)

	f.UpdateQuantity(context.Background(), "prod_01", 3)
	assert.Equal(t, int64(3*99900), f.Cart().Total)

	f.Clear(context.Background())
	assert.Equal(t, models.EmptyCart(), f.Cart())
}

// Une mutation venue d'ailleurs (autre façade, autre session du même panier)
// finit par rafraîchir l'instantané via le hub
func TestFacadeSuitLesMutationsExternes(t *testing.T) {
	hub := NewHub()
	store := NewStore(NewMemoryKV(), hub)

	f := NewFacade(store, hub, "s")
	defer f.Close()
	assert.Empty(t, f.Cart().Items)

	// Mutation directe sur le store, sans passer par la façade
	_, err := store.AddPurchase(context.Background(), "s", droneAir(), 1)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(f.Cart().Items) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(69900), f.Cart().Total)
}

// Le hub isole les paniers : une mutation sur un autre panier ne touche pas
// cet instantané
func TestFacadeIgnoreLesAutresPaniers(t *testing.T) {
	hub := NewHub()
	store := NewStore(NewMemoryKV(), hub)

	f := NewFacade(store, hub, "session-a")
	defer f.Close()

	_, err := store.AddPurchase(context.Background(), "session-b", droneXPro(), 1)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, f.Cart().Items)
}

func TestFacadeDrapeauOccupation(t *testing.T) {
	hub := NewHub()

	// KV lent : l'occupation doit être visible pendant toute la mutation
	slow := &slowKV{inner: NewMemoryKV(), delay: 50 * time.Millisecond}
	store := NewStore(slow, hub)

	f := NewFacade(store, hub, "s")
	defer f.Close()

	assert.False(t, f.IsBusy())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := f.AddPurchase(context.Background(), droneXPro(), 1)
		assert.NoError(t, err)
	}()

	assert.Eventually(t, f.IsBusy, time.Second, time.Millisecond)
	<-done
	assert.False(t, f.IsBusy())
}

func TestFacadeErreurNeModifieRien(t *testing.T) {
	hub := NewHub()
	store := NewStore(NewMemoryKV(), hub)

	f := NewFacade(store, hub, "s")
	defer f.Close()

	product := droneXPro()
	product.SalePriceMinor = nil
	_, err := f.AddPurchase(context.Background(), product, 1)

	assert.ErrorIs(t, err, ErrNoSalePrice)
	assert.Empty(t, f.Cart().Items)
	assert.False(t, f.IsBusy())
}

func TestFacadeCloseDesabonne(t *testing.T) {
	hub := NewHub()
	store := NewStore(NewMemoryKV(), hub)

	f := NewFacade(store, hub, "s")
	f.Close()

	// Après Close, les mutations externes ne rafraîchissent plus rien
	_, err := store.AddPurchase(context.Background(), "s", droneXPro(), 1)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, f.Cart().Items)

	// Close est idempotent vis-à-vis du hub : un second abonné fonctionne
	g := NewFacade(store, hub, "s")
	defer g.Close()
	assert.Len(t, g.Cart().Items, 1)
}

// slowKV retarde chaque écriture pour rendre la fenêtre d'occupation observable
type slowKV struct {
	inner KV
	delay time.Duration
}

func (s *slowKV) Get(ctx context.Context, key string) (string, error) {
	return s.inner.Get(ctx, key)
}

func (s *slowKV) Set(ctx context.Context, key, value string) error {
	time.Sleep(s.delay)
	return s.inner.Set(ctx, key, value)
}

func (s *slowKV) Del(ctx context.Context, key string) error {
	return s.inner.Del(ctx, key)
}
