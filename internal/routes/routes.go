package routes

import (
	"github.com/gin-gonic/gin"

	"drone_hub_back_end/internal/handlers/product"
	"drone_hub_back_end/internal/handlers/user"
	"drone_hub_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, products *product.Handler, carts *user.Handler) {
	// Catalogue public
	store := r.Group("/store")
	store.GET("/drone-products", products.ListDroneProducts)
	store.GET("/drone-products/:handle", products.GetDroneProduct)

	// Panier : une session de navigation = un panier
	api := r.Group("/api")
	api.Use(middleware.CartSession())
	api.GET("/cart", carts.GetCart)
	api.POST("/cart/purchase", carts.AddPurchase)
	api.POST("/cart/rental", carts.AddRental)
	api.PUT("/cart/items/:id", carts.UpdateQuantity)
	api.DELETE("/cart/items/:id", carts.RemoveItem)
	api.DELETE("/cart", carts.ClearCart)
	api.GET("/cart/ws", carts.CartWebSocket)
}
