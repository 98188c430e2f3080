// Provisionnement ponctuel du catalogue : régions Europe/US, catégorie
// Drones et les deux drones de démonstration. Idempotent — relançable sans
// dupliquer les données existantes.
package main

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"drone_hub_back_end/internal/config"
	"drone_hub_back_end/internal/database"
	"drone_hub_back_end/internal/models"
)

type seedProduct struct {
	Handle      string
	Title       string
	Description string
	Weight      string
	Thumbnail   string
	Images      []string
	SKU         string
	PriceEUR    int64
	PriceUSD    int64
	Metadata    models.ProductMetadata
}

func main() {
	config.Load()

	if err := database.InitScyllaDB(); err != nil {
		log.Fatalf("❌ Échec initialisation ScyllaDB: %v", err)
	}
	defer database.CloseScylla()

	session, err := database.GetCatalogSession()
	if err != nil {
		log.Fatalf("❌ Session catalogue indisponible: %v", err)
	}

	seedRegions(session)
	dronesCategoryID := seedCategory(session, "Drones")
	seedProducts(session, dronesCategoryID)

	log.Println("✅ Provisionnement du catalogue terminé")
}

// seedRegions crée les régions Europe (eur) et US (usd) si absentes.
// Le service catalogue lie la devise usd à "US" et tout le reste à "Europe" :
// ces deux noms sont obligatoires.
func seedRegions(session *gocql.Session) {
	existing := map[string]bool{}

	iter := session.Query(`SELECT name FROM regions`).Iter()
	var name string
	for iter.Scan(&name) {
		existing[name] = true
	}
	if err := iter.Close(); err != nil {
		log.Fatalf("❌ Erreur lecture régions: %v", err)
	}

	for _, region := range []models.Region{
		{ID: uuid.NewString(), Name: "Europe", CurrencyCode: "eur"},
		{ID: uuid.NewString(), Name: "US", CurrencyCode: "usd"},
	} {
		if existing[region.Name] {
			log.Printf("⏭️ Région %q déjà présente", region.Name)
			continue
		}
		if err := session.Query(`INSERT INTO regions (region_id, name, currency_code) VALUES (?, ?, ?)`,
			region.ID, region.Name, region.CurrencyCode).Exec(); err != nil {
			log.Fatalf("❌ Erreur création région %s: %v", region.Name, err)
		}
		log.Printf("✅ Région créée: %s (%s)", region.Name, region.CurrencyCode)
	}
}

// seedCategory crée la catégorie si absente et retourne son id
func seedCategory(session *gocql.Session, name string) string {
	iter := session.Query(`SELECT category_id, name FROM categories`).Iter()
	var id, existingName string
	for iter.Scan(&id, &existingName) {
		if existingName == name {
			iter.Close()
			log.Printf("⏭️ Catégorie %q déjà présente", name)
			return id
		}
	}
	if err := iter.Close(); err != nil {
		log.Fatalf("❌ Erreur lecture catégories: %v", err)
	}

	categoryID := uuid.NewString()
	if err := session.Query(`INSERT INTO categories (category_id, name, is_active) VALUES (?, ?, true)`,
		categoryID, name).Exec(); err != nil {
		log.Fatalf("❌ Erreur création catégorie %s: %v", name, err)
	}
	log.Printf("✅ Catégorie créée: %s", name)
	return categoryID
}

func seedProducts(session *gocql.Session, categoryID string) {
	drones := []seedProduct{
		{
			Handle:      "drone-x-pro",
			Title:       "Drone X Pro",
			Description: "4K video, 3-axis gimbal",
			Weight:      "1200",
			Thumbnail:   "https://picsum.photos/seed/drone-x-pro/800/600",
			Images:      []string{"https://picsum.photos/seed/drone-x-pro/800/600"},
			SKU:         "DRONEXPRO-STD",
			PriceEUR:    99900,
			PriceUSD:    109900,
			Metadata: models.ProductMetadata{
				SaleMode:            models.SaleModeBoth,
				RentDailyPriceMinor: models.RentPrices{Eur: 1900, Usd: 2100}, // 19,00 €/j, $21.00/j
				TitleI18n:           models.I18nText{Fr: "Drone X Pro", En: "Drone X Pro"},
				DescriptionI18n: models.I18nText{
					Fr: "Vidéo 4K, stabilisation 3 axes",
					En: "4K video, 3-axis gimbal",
				},
			},
		},
		{
			Handle:      "drone-air",
			Title:       "Drone Air",
			Description: "Lightweight 4K drone",
			Weight:      "900",
			Thumbnail:   "https://picsum.photos/seed/drone-air/800/600",
			Images:      []string{"https://picsum.photos/seed/drone-air/800/600"},
			SKU:         "DRONEAIR-STD",
			PriceEUR:    69900,
			PriceUSD:    79900,
			Metadata: models.ProductMetadata{
				SaleMode:            models.SaleModeBoth,
				RentDailyPriceMinor: models.RentPrices{Eur: 1500, Usd: 1700}, // 15,00 €/j, $17.00/j
				TitleI18n:           models.I18nText{Fr: "Drone Air", En: "Drone Air"},
				DescriptionI18n: models.I18nText{
					Fr: "Drone 4K ultra-léger",
					En: "Ultra-light 4K drone",
				},
			},
		},
	}

	for _, drone := range drones {
		var existingID string
		if err := session.Query(`SELECT product_id FROM products_by_handle WHERE handle = ?`, drone.Handle).
			Scan(&existingID); err == nil {
			log.Printf("⏭️ Produit %q déjà présent", drone.Handle)
			continue
		} else if err != gocql.ErrNotFound {
			log.Fatalf("❌ Erreur vérification handle %s: %v", drone.Handle, err)
		}

		productID := uuid.NewString()

		variants := []models.RawVariant{
			{
				ID:    uuid.NewString(),
				Title: "Standard",
				SKU:   drone.SKU,
				Prices: []models.VariantPrice{
					{CurrencyCode: "eur", Amount: drone.PriceEUR},
					{CurrencyCode: "usd", Amount: drone.PriceUSD},
				},
			},
		}

		variantsJSON, err := json.Marshal(variants)
		if err != nil {
			log.Fatalf("❌ Erreur sérialisation variantes %s: %v", drone.Handle, err)
		}
		metadataJSON, err := json.Marshal(drone.Metadata)
		if err != nil {
			log.Fatalf("❌ Erreur sérialisation metadata %s: %v", drone.Handle, err)
		}

		now := time.Now()
		if err := session.Query(`INSERT INTO products
			(product_id, handle, title, description, thumbnail, status, weight, variants, images, category_ids, metadata, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			productID, drone.Handle, drone.Title, drone.Description, drone.Thumbnail,
			"published", drone.Weight, string(variantsJSON), drone.Images,
			[]string{categoryID}, string(metadataJSON), now, now).Exec(); err != nil {
			log.Fatalf("❌ Erreur création produit %s: %v", drone.Handle, err)
		}

		if err := session.Query(`INSERT INTO products_by_handle (handle, product_id) VALUES (?, ?)`,
			drone.Handle, productID).Exec(); err != nil {
			log.Fatalf("❌ Erreur indexation products_by_handle %s: %v", drone.Handle, err)
		}

		log.Printf("✅ Produit créé: %s (%s)", drone.Title, drone.Handle)
	}
}
