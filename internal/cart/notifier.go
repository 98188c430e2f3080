package cart

import (
	"context"
	"sync"
)

// Événements publiés après chaque mutation du panier
const (
	EventUpdated = "updated"
	EventCleared = "cleared"
)

// Notifier reçoit exactement une notification par mutation du store
type Notifier interface {
	Publish(ctx context.Context, cartID, event string) error
}

// Fanout propage chaque notification à plusieurs notifiers (ex : hub
// in-process pour les façades + Redis pour les WebSockets)
func Fanout(notifiers ...Notifier) Notifier {
	return fanout(notifiers)
}

type fanout []Notifier

func (f fanout) Publish(ctx context.Context, cartID, event string) error {
	var firstErr error
	for _, n := range f {
		if err := n.Publish(ctx, cartID, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Event est une notification de changement de panier
type Event struct {
	CartID string
	Name   string
}

// Hub est le canal d'observation in-process : les façades s'y abonnent par
// panier et reçoivent un Event à chaque mutation. L'envoi est non bloquant —
// un abonné qui ne consomme pas perd les événements intermédiaires, le
// panier persisté restant la seule source de vérité.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]chan Event
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan Event)}
}

// Subscribe retourne un canal d'événements pour ce panier et la fonction de
// désabonnement correspondante
func (h *Hub) Subscribe(cartID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[cartID] == nil {
		h.subs[cartID] = make(map[int]chan Event)
	}
	id := h.next
	h.next++

	ch := make(chan Event, 8)
	h.subs[cartID][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[cartID][id]; ok {
			delete(h.subs[cartID], id)
			close(sub)
		}
	}
	return ch, cancel
}

func (h *Hub) Publish(_ context.Context, cartID, event string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[cartID] {
		select {
		case ch <- Event{CartID: cartID, Name: event}:
		default:
			// Abonné saturé : on laisse tomber l'événement
		}
	}
	return nil
}
