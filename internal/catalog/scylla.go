package catalog

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gocql/gocql"

	"drone_hub_back_end/internal/database"
	"drone_hub_back_end/internal/models"
)

// ScyllaSource lit le catalogue brut depuis ScyllaDB. Les variantes (avec
// leurs prix par devise) et le bloc metadata sont des colonnes text JSON ;
// le contexte de prix est déjà matérialisé dans ces colonnes, la sélection
// de devise se fait à la projection.
type ScyllaSource struct{}

func NewScyllaSource() *ScyllaSource {
	return &ScyllaSource{}
}

const productColumns = `product_id, handle, title, description, thumbnail, status, weight, variants, images, category_ids, metadata`

// ListPublished retourne tous les produits publiés.
// Note : ScyllaDB ne filtre pas sur une colonne non indexée, le statut est
// donc filtré en mémoire, comme pour la recherche produits.
func (s *ScyllaSource) ListPublished(ctx context.Context, _ PriceContext) ([]models.RawProduct, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).WithContext(ctx).Iter()

	var products []models.RawProduct
	var row productRow

	for iter.Scan(&row.id, &row.handle, &row.title, &row.description, &row.thumbnail,
		&row.status, &row.weight, &row.variantsJSON, &row.images, &row.categoryIDs, &row.metadataJSON) {
		if row.status == "published" {
			products = append(products, row.toRawProduct())
		}
		row = productRow{}
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}

// GetPublishedByHandle résout le handle via la table miroir products_by_handle
// puis charge la ligne complète. Retourne (nil, nil) si aucun produit publié
// ne correspond.
func (s *ScyllaSource) GetPublishedByHandle(ctx context.Context, handle string, _ PriceContext) (*models.RawProduct, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	var productID string
	if err := session.Query(`SELECT product_id FROM products_by_handle WHERE handle = ?`, handle).
		WithContext(ctx).Scan(&productID); err != nil {
		if err == gocql.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	var row productRow
	if err := session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, productID).
		WithContext(ctx).Scan(&row.id, &row.handle, &row.title, &row.description, &row.thumbnail,
		&row.status, &row.weight, &row.variantsJSON, &row.images, &row.categoryIDs, &row.metadataJSON); err != nil {
		if err == gocql.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	if row.status != "published" {
		return nil, nil
	}

	raw := row.toRawProduct()
	return &raw, nil
}

// ListRegions retourne les régions de tarification
func (s *ScyllaSource) ListRegions(ctx context.Context) ([]models.Region, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT region_id, name, currency_code FROM regions`).WithContext(ctx).Iter()

	var regions []models.Region
	var r models.Region
	for iter.Scan(&r.ID, &r.Name, &r.CurrencyCode) {
		regions = append(regions, r)
		r = models.Region{}
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return regions, nil
}

// productRow est la ligne Scylla avant décodage des colonnes JSON
type productRow struct {
	id, handle, title, description, thumbnail, status, weight string
	variantsJSON, metadataJSON                                string
	images                                                    []string
	categoryIDs                                               []string
}

func (r productRow) toRawProduct() models.RawProduct {
	p := models.RawProduct{
		ID:          r.id,
		Handle:      r.handle,
		Title:       r.title,
		Description: r.description,
		Thumbnail:   r.thumbnail,
		Status:      r.status,
		Weight:      r.weight,
		CategoryIDs: r.categoryIDs,
	}

	for _, url := range r.images {
		p.Images = append(p.Images, models.ProductImage{URL: url})
	}

	if r.variantsJSON != "" {
		if err := json.Unmarshal([]byte(r.variantsJSON), &p.Variants); err != nil {
			log.Printf("⚠️ Variantes JSON illisibles pour le produit %s: %v", r.id, err)
		}
	}

	if r.metadataJSON != "" {
		var md models.ProductMetadata
		if err := json.Unmarshal([]byte(r.metadataJSON), &md); err != nil {
			log.Printf("⚠️ Metadata JSON illisible pour le produit %s: %v", r.id, err)
		} else {
			p.Metadata = &md
		}
	}

	return p
}
