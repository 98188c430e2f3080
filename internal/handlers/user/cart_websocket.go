package user

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"drone_hub_back_end/internal/cart"
	"drone_hub_back_end/internal/database"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket pousse le panier recalculé au client à chaque mutation.
// Les notifications arrivent par le canal pub/sub Redis "cart:{id}" publié
// par le store ; le panier persisté reste la source de vérité, relue à
// chaque événement.
func (h *Handler) CartWebSocket(c *gin.Context) {
	cartID := c.GetString("cart_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()

	// S'abonner au canal Redis pour ce panier
	pubsub := database.Redis.Subscribe(ctx, "cart:"+cartID)
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != cart.EventUpdated && msg.Payload != cart.EventCleared {
				continue
			}

			current := h.store.Get(ctx, cartID)
			response := map[string]interface{}{
				"type":  "cart_updated",
				"items": current.Items,
				"total": current.Total,
				"count": len(current.Items),
			}

			if err := conn.WriteJSON(response); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
