package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"drone_hub_back_end/internal/cart"
	"drone_hub_back_end/internal/catalog"
	"drone_hub_back_end/internal/config"
	"drone_hub_back_end/internal/database"
	"drone_hub_back_end/internal/handlers/product"
	"drone_hub_back_end/internal/handlers/user"
	"drone_hub_back_end/internal/routes"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	defer database.CloseScylla()

	// Catalogue : source ScyllaDB derrière le service de requête
	source := catalog.NewScyllaSource()
	catalogService := catalog.NewService(source, source)

	// Panier : persistance Redis + notifications pub/sub pour les WebSockets
	cartStore := cart.NewStore(
		cart.NewRedisKV(database.Redis),
		cart.NewRedisNotifier(database.Redis),
	)

	r := gin.Default()
	r.Use(cors.Default())

	routes.RegisterRoutes(r, product.NewHandler(catalogService), user.NewHandler(cartStore))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Drone Hub lancé sur le port", port)
	r.Run(":" + port)
}
