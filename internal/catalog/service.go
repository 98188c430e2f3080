package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"drone_hub_back_end/internal/models"
)

// ErrProductNotFound : aucun produit publié ne correspond au handle demandé
var ErrProductNotFound = errors.New("produit introuvable")

// PriceContext fixe la devise et la région utilisées pour résoudre les prix
type PriceContext struct {
	CurrencyCode string
	RegionID     string
}

// ProductSource est la frontière vers le service produits du backend
// commerce : il fournit les enregistrements bruts, prix annotés pour le
// contexte demandé. L'implémentation ScyllaDB vit dans scylla.go.
type ProductSource interface {
	ListPublished(ctx context.Context, price PriceContext) ([]models.RawProduct, error)
	GetPublishedByHandle(ctx context.Context, handle string, price PriceContext) (*models.RawProduct, error)
}

// RegionSource liste les régions de tarification
type RegionSource interface {
	ListRegions(ctx context.Context) ([]models.Region, error)
}

// Service est le service de requête catalogue : récupère les produits
// publiés, les projette, puis applique les filtres sale_mode et q côté
// serveur, dans l'ordre du fetch (aucun tri ici — le tri est une
// responsabilité du client).
type Service struct {
	products ProductSource
	regions  RegionSource
}

func NewService(products ProductSource, regions RegionSource) *Service {
	return &Service{products: products, regions: regions}
}

// ListOptions porte les paramètres résolus d'une requête catalogue.
// SaleMode vide = pas de filtre. Query vide = pas de recherche.
type ListOptions struct {
	Locale   models.Locale
	Currency models.Currency
	Limit    int
	Offset   int
	SaleMode string
	Query    string
}

// ClampPagination borne limit dans [1,100] (défaut 20) et offset à >= 0.
// Les valeurs bornées sont renvoyées dans l'enveloppe mais ne découpent PAS
// le résultat — comportement historique de l'API, conservé et documenté.
func ClampPagination(limit, offset int) (int, int) {
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ListDroneProducts récupère le catalogue complet des produits publiés avec
// leurs prix calculés pour la devise, puis filtre. La devise "usd" se lie à
// la région nommée "US", toute autre devise à la région "Europe" ; une région
// attendue absente est fatale pour la requête, sans retry.
func (s *Service) ListDroneProducts(ctx context.Context, opts ListOptions) (*models.DroneProductsResponse, error) {
	opts.Limit, opts.Offset = ClampPagination(opts.Limit, opts.Offset)

	region, err := s.resolveRegion(ctx, opts.Currency)
	if err != nil {
		return nil, err
	}

	price := PriceContext{
		CurrencyCode: strings.ToUpper(string(opts.Currency)),
		RegionID:     region.ID,
	}

	raws, err := s.products.ListPublished(ctx, price)
	if err != nil {
		return nil, fmt.Errorf("lecture catalogue: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(opts.Query))

	out := []models.DroneProduct{}
	for _, raw := range raws {
		md := productMetadata(raw)
		saleMode := md.SaleMode
		if !saleMode.Valid() {
			saleMode = models.SaleModeBoth
		}

		// Filtre sale_mode : correspondance exacte si demandé
		if opts.SaleMode != "" && string(saleMode) != opts.SaleMode {
			continue
		}

		// Recherche q : sous-chaîne insensible à la casse dans le titre, la
		// description et les blocs i18n sérialisés — union du texte brut et
		// localisé, pas une recherche par locale
		if q != "" && !matchesQuery(raw, md, q) {
			continue
		}

		out = append(out, MapDroneProduct(raw, opts.Locale, opts.Currency))
	}

	return &models.DroneProductsResponse{
		Locale:      opts.Locale,
		Currency:    opts.Currency,
		Count:       len(out),
		Limit:       opts.Limit,
		Offset:      opts.Offset,
		SourceTotal: len(raws),
		Products:    out,
	}, nil
}

// GetDroneProduct retourne le produit publié correspondant au handle,
// projeté pour la locale et la devise, ou ErrProductNotFound
func (s *Service) GetDroneProduct(ctx context.Context, handle string, locale models.Locale, currency models.Currency) (*models.DroneProduct, error) {
	price := PriceContext{CurrencyCode: strings.ToUpper(string(currency))}

	raw, err := s.products.GetPublishedByHandle(ctx, handle, price)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrProductNotFound
	}

	product := MapDroneProduct(*raw, locale, currency)
	return &product, nil
}

// resolveRegion lie la devise à sa région nommée ("US" pour usd, "Europe"
// sinon). Région absente = erreur fatale pour la requête.
func (s *Service) resolveRegion(ctx context.Context, currency models.Currency) (*models.Region, error) {
	regions, err := s.regions.ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("lecture régions: %w", err)
	}

	name := "Europe"
	if currency == models.CurrencyUSD {
		name = "US"
	}

	for i := range regions {
		if regions[i].Name == name {
			return &regions[i], nil
		}
	}
	return nil, fmt.Errorf("région %q introuvable", name)
}

// matchesQuery teste q contre le titre, la description et les blocs i18n
// sérialisés en JSON (toutes locales confondues)
func matchesQuery(raw models.RawProduct, md models.ProductMetadata, q string) bool {
	haystacks := []string{
		strings.ToLower(raw.Title),
		strings.ToLower(raw.Description),
	}
	if ti, err := json.Marshal(md.TitleI18n); err == nil {
		haystacks = append(haystacks, strings.ToLower(string(ti)))
	}
	if di, err := json.Marshal(md.DescriptionI18n); err == nil {
		haystacks = append(haystacks, strings.ToLower(string(di)))
	}

	for _, h := range haystacks {
		if strings.Contains(h, q) {
			return true
		}
	}
	return false
}
