package product

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"drone_hub_back_end/internal/catalog"
	"drone_hub_back_end/internal/localization"
	"drone_hub_back_end/internal/services"
)

type Handler struct {
	catalog *catalog.Service
}

func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{catalog: svc}
}

// ListDroneProducts — GET /store/drone-products
// Paramètres de requête manquants ou invalides : jamais d'erreur, repli sur
// les défauts (fr/eur, limit 20, offset 0)
func (h *Handler) ListDroneProducts(c *gin.Context) {
	opts := catalog.ListOptions{
		Locale:   localization.ResolveLocale(c.Query("locale")),
		Currency: localization.ResolveCurrency(c.Query("currency")),
		Limit:    queryInt(c, "limit", 20),
		Offset:   queryInt(c, "offset", 0),
		SaleMode: c.Query("sale_mode"),
		Query:    c.Query("q"),
	}

	resp, err := h.catalog.ListDroneProducts(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue: " + err.Error()})
		return
	}

	// URLs signées MinIO pour les images (no-op sans MinIO)
	for i := range resp.Products {
		resp.Products[i].Images = services.SignImageURLs(c.Request.Context(), resp.Products[i].Images)
	}

	c.JSON(http.StatusOK, resp)
}

// GetDroneProduct — GET /store/drone-products/:handle
func (h *Handler) GetDroneProduct(c *gin.Context) {
	handle := c.Param("handle")
	locale := localization.ResolveLocale(c.Query("locale"))
	currency := localization.ResolveCurrency(c.Query("currency"))

	product, err := h.catalog.GetDroneProduct(c.Request.Context(), handle, locale, currency)
	if err == catalog.ErrProductNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Product with handle " + handle + " not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit: " + err.Error()})
		return
	}

	product.Images = services.SignImageURLs(c.Request.Context(), product.Images)

	c.JSON(http.StatusOK, product)
}

// queryInt lit un entier de la query string, défaut en cas d'absence ou de
// valeur non numérique
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
