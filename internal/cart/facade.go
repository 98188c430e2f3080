package cart

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"drone_hub_back_end/internal/models"
)

// Facade est la vue réactive du panier côté consommateur : elle s'abonne aux
// notifications du hub à la construction, maintient un instantané transitoire
// (jamais une seconde source de vérité) et expose les opérations du store
// avec un drapeau d'occupation tenu pendant toute la durée de l'appel, pour
// que la couche de vue puisse désactiver ses contrôles pendant une mutation.
type Facade struct {
	store  *Store
	cartID string

	busy atomic.Bool

	mu       sync.RWMutex
	snapshot models.Cart

	cancel func()
	done   chan struct{}
}

// NewFacade abonne la façade au hub et charge l'instantané initial
func NewFacade(store *Store, hub *Hub, cartID string) *Facade {
	f := &Facade{
		store:  store,
		cartID: cartID,
		done:   make(chan struct{}),
	}

	events, cancel := hub.Subscribe(cartID)
	f.cancel = cancel
	f.snapshot = store.Get(context.Background(), cartID)

	go func() {
		defer close(f.done)
		for range events {
			cart := store.Get(context.Background(), cartID)
			f.mu.Lock()
			f.snapshot = cart
			f.mu.Unlock()
		}
	}()

	return f
}

// Close désabonne la façade du hub
func (f *Facade) Close() {
	f.cancel()
	<-f.done
}

// Cart retourne l'instantané courant
func (f *Facade) Cart() models.Cart {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshot
}

// IsBusy indique si une opération est en cours sur cette façade
func (f *Facade) IsBusy() bool {
	return f.busy.Load()
}

func (f *Facade) AddPurchase(ctx context.Context, product models.DroneProduct, quantity int) (models.Cart, error) {
	f.busy.Store(true)
	defer f.busy.Store(false)

	cart, err := f.store.AddPurchase(ctx, f.cartID, product, quantity)
	if err != nil {
		return models.Cart{}, err
	}
	f.setSnapshot(cart)
	return cart, nil
}

func (f *Facade) AddRental(ctx context.Context, product models.DroneProduct, startDate, endDate time.Time, quantity int) (models.Cart, error) {
	f.busy.Store(true)
	defer f.busy.Store(false)

	cart, err := f.store.AddRental(ctx, f.cartID, product, startDate, endDate, quantity)
	if err != nil {
		return models.Cart{}, err
	}
	f.setSnapshot(cart)
	return cart, nil
}

func (f *Facade) RemoveItem(ctx context.Context, itemID string) models.Cart {
	f.busy.Store(true)
	defer f.busy.Store(false)

	cart := f.store.RemoveItem(ctx, f.cartID, itemID)
	f.setSnapshot(cart)
	return cart
}

func (f *Facade) UpdateQuantity(ctx context.Context, itemID string, quantity int) models.Cart {
	f.busy.Store(true)
	defer f.busy.Store(false)

	cart := f.store.UpdateQuantity(ctx, f.cartID, itemID, quantity)
	f.setSnapshot(cart)
	return cart
}

func (f *Facade) Clear(ctx context.Context) models.Cart {
	f.busy.Store(true)
	defer f.busy.Store(false)

	cart := f.store.Clear(ctx, f.cartID)
	f.setSnapshot(cart)
	return cart
}

func (f *Facade) setSnapshot(cart models.Cart) {
	f.mu.Lock()
	f.snapshot = cart
	f.mu.Unlock()
}
