package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"drone_hub_back_end/internal/models"
)

var (
	// ErrNoSalePrice : produit sans prix de vente pour la devise du panier —
	// refusé à l'ajout plutôt que propagé comme contribution non numérique
	ErrNoSalePrice = errors.New("produit sans prix de vente")
	// ErrNoRentalPrice : produit sans tarif journalier de location
	ErrNoRentalPrice = errors.New("produit sans tarif de location")
)

// Store possède exclusivement la représentation persistée du panier.
// Chaque mutation suit le cycle charger → modifier → recalculer le total →
// persister → notifier, exactement une écriture et une notification par
// opération. Le mutex sérialise les cycles lecture-modification-écriture :
// deux mutations rapprochées ne peuvent plus se perdre l'une l'autre.
type Store struct {
	mu       sync.Mutex
	kv       KV
	notifier Notifier
}

func NewStore(kv KV, notifier Notifier) *Store {
	return &Store{kv: kv, notifier: notifier}
}

func cartKey(cartID string) string {
	return "cart:" + cartID
}

// Get retourne l'instantané courant du panier. Clé absente, stockage
// indisponible ou JSON illisible : panier vide canonique, jamais d'erreur.
func (s *Store) Get(ctx context.Context, cartID string) models.Cart {
	data, err := s.kv.Get(ctx, cartKey(cartID))
	if err != nil || data == "" {
		return models.EmptyCart()
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return models.EmptyCart()
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart
}

// AddPurchase ajoute un achat au panier. Si une ligne d'achat existe déjà
// pour ce produit, sa quantité est incrémentée (accumulation), sinon une
// nouvelle ligne est ajoutée en fin de panier.
func (s *Store) AddPurchase(ctx context.Context, cartID string, product models.DroneProduct, quantity int) (models.Cart, error) {
	if product.SalePriceMinor == nil {
		return models.Cart{}, ErrNoSalePrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.Get(ctx, cartID)

	found := false
	for i := range cart.Items {
		if cart.Items[i].ID == product.ID && cart.Items[i].Type == models.ItemPurchase {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{
			ID:       product.ID,
			Type:     models.ItemPurchase,
			Product:  product,
			Quantity: quantity,
		})
	}

	return s.commit(ctx, cartID, cart, EventUpdated), nil
}

// AddRental ajoute une location au panier. Toujours une nouvelle ligne, même
// pour une fenêtre identique — les locations ne fusionnent jamais. L'id
// composite {produit}-{début}-{fin} distingue les fenêtres concurrentes d'un
// même drone. L'intervalle de dates n'est pas validé : une fin antérieure au
// début produit un nombre de jours et un total non positifs.
func (s *Store) AddRental(ctx context.Context, cartID string, product models.DroneProduct, startDate, endDate time.Time, quantity int) (models.Cart, error) {
	if product.RentDailyPriceMinor == nil {
		return models.Cart{}, ErrNoRentalPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.Get(ctx, cartID)

	start := startDate.UTC().Format(time.RFC3339)
	end := endDate.UTC().Format(time.RFC3339)
	totalDays := int(math.Ceil(endDate.Sub(startDate).Hours() / 24))
	totalPrice := *product.RentDailyPriceMinor * int64(totalDays)

	cart.Items = append(cart.Items, models.CartItem{
		ID:       fmt.Sprintf("%s-%s-%s", product.ID, start, end),
		Type:     models.ItemRental,
		Product:  product,
		Quantity: quantity,
		RentalDetails: &models.RentalDetails{
			StartDate:       start,
			EndDate:         end,
			TotalDays:       totalDays,
			TotalPriceMinor: totalPrice,
		},
	})

	return s.commit(ctx, cartID, cart, EventUpdated), nil
}

// RemoveItem retire la ligne correspondant à l'id, achat ou location
func (s *Store) RemoveItem(ctx context.Context, cartID, itemID string) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.Get(ctx, cartID)

	kept := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	return s.commit(ctx, cartID, cart, EventUpdated)
}

// UpdateQuantity fixe la quantité d'une ligne. Pas de borne basse imposée
// ici — les appelants sont censés borner à >= 0 avant l'appel. Id absent :
// aucune écriture, aucune notification.
func (s *Store) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.Get(ctx, cartID)

	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			return s.commit(ctx, cartID, cart, EventUpdated)
		}
	}
	return cart
}

// Clear remplace le panier par le panier vide canonique
func (s *Store) Clear(ctx context.Context, cartID string) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, cartID, models.EmptyCart(), EventCleared)
}

// commit recalcule le total, persiste et notifie. Une écriture qui échoue
// est tracée mais ne remonte pas — le panier dégrade silencieusement.
func (s *Store) commit(ctx context.Context, cartID string, cart models.Cart, event string) models.Cart {
	cart.Total = ComputeTotal(cart)

	data, err := json.Marshal(cart)
	if err != nil {
		log.Printf("⚠️ Panier %s non sérialisable: %v", cartID, err)
		return cart
	}
	if err := s.kv.Set(ctx, cartKey(cartID), string(data)); err != nil {
		log.Printf("⚠️ Écriture panier %s échouée: %v", cartID, err)
	}

	if err := s.notifier.Publish(ctx, cartID, event); err != nil {
		log.Printf("⚠️ Notification panier %s échouée: %v", cartID, err)
	}
	return cart
}

// ComputeTotal replie les lignes du panier en un total en unités mineures :
// les achats contribuent prix de vente × quantité, les locations leur prix
// total figé × quantité. Le total n'est jamais stocké sans être recalculé.
func ComputeTotal(cart models.Cart) int64 {
	var total int64
	for _, item := range cart.Items {
		switch item.Type {
		case models.ItemPurchase:
			if item.Product.SalePriceMinor != nil {
				total += *item.Product.SalePriceMinor * int64(item.Quantity)
			}
		case models.ItemRental:
			if item.RentalDetails != nil {
				total += item.RentalDetails.TotalPriceMinor * int64(item.Quantity)
			}
		}
	}
	return total
}
