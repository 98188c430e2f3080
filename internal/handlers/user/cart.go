package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"drone_hub_back_end/internal/cart"
	"drone_hub_back_end/internal/models"
)

type Handler struct {
	store *cart.Store
}

func NewHandler(store *cart.Store) *Handler {
	return &Handler{store: store}
}

//
// 🛒 GET /api/cart
//
func (h *Handler) GetCart(c *gin.Context) {
	cartID := c.GetString("cart_id")
	c.JSON(http.StatusOK, h.store.Get(c.Request.Context(), cartID))
}

//
// 🟢 POST /api/cart/purchase
//
func (h *Handler) AddPurchase(c *gin.Context) {
	cartID := c.GetString("cart_id")

	var input struct {
		Product  models.DroneProduct `json:"product"`
		Quantity int                 `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	updated, err := h.store.AddPurchase(c.Request.Context(), cartID, input.Product, input.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produit sans prix de vente pour cette devise"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   updated.Items,
		"total":   updated.Total,
	})
}

//
// 📅 POST /api/cart/rental
//
func (h *Handler) AddRental(c *gin.Context) {
	cartID := c.GetString("cart_id")

	var input struct {
		Product   models.DroneProduct `json:"product"`
		StartDate string              `json:"start_date"`
		EndDate   string              `json:"end_date"`
		Quantity  int                 `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	startDate, err := time.Parse(time.RFC3339, input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date de début invalide"})
		return
	}
	endDate, err := time.Parse(time.RFC3339, input.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date de fin invalide"})
		return
	}

	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	updated, err := h.store.AddRental(c.Request.Context(), cartID, input.Product, startDate, endDate, input.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produit sans tarif de location pour cette devise"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Location ajoutée au panier",
		"items":   updated.Items,
		"total":   updated.Total,
	})
}

//
// 🔁 PUT /api/cart/items/:id
//
func (h *Handler) UpdateQuantity(c *gin.Context) {
	cartID := c.GetString("cart_id")
	itemID := c.Param("id")

	var input struct {
		Quantity int `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	// Le store n'impose pas de borne basse : on borne ici, côté appelant
	if input.Quantity < 0 {
		input.Quantity = 0
	}

	updated := h.store.UpdateQuantity(c.Request.Context(), cartID, itemID, input.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Quantité mise à jour",
		"items":   updated.Items,
		"total":   updated.Total,
	})
}

//
// ❌ DELETE /api/cart/items/:id
//
func (h *Handler) RemoveItem(c *gin.Context) {
	cartID := c.GetString("cart_id")
	itemID := c.Param("id")

	updated := h.store.RemoveItem(c.Request.Context(), cartID, itemID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   updated.Items,
		"total":   updated.Total,
	})
}

//
// 🧹 DELETE /api/cart
//
func (h *Handler) ClearCart(c *gin.Context) {
	cartID := c.GetString("cart_id")

	h.store.Clear(c.Request.Context(), cartID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
	})
}
