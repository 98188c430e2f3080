package product

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drone_hub_back_end/internal/catalog"
	"drone_hub_back_end/internal/models"
)

type fakeCatalogSource struct {
	products []models.RawProduct
	regions  []models.Region
	err      error
}

func (f *fakeCatalogSource) ListPublished(context.Context, catalog.PriceContext) ([]models.RawProduct, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeCatalogSource) GetPublishedByHandle(_ context.Context, handle string, _ catalog.PriceContext) (*models.RawProduct, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.products {
		if f.products[i].Handle == handle {
			return &f.products[i], nil
		}
	}
	return nil, nil
}

func (f *fakeCatalogSource) ListRegions(context.Context) ([]models.Region, error) {
	return f.regions, nil
}

func seededSource() *fakeCatalogSource {
	return &fakeCatalogSource{
		products: []models.RawProduct{
			{
				ID:          "prod_01",
				Handle:      "drone-x-pro",
				Title:       "Drone X Pro",
				Description: "4K video, 3-axis gimbal",
				Status:      "published",
				Weight:      "1200",
				Variants: []models.RawVariant{{
					ID:  "variant_01",
					SKU: "DRONEXPRO-STD",
					Prices: []models.VariantPrice{
						{CurrencyCode: "eur", Amount: 99900},
						{CurrencyCode: "usd", Amount: 109900},
					},
				}},
				Metadata: &models.ProductMetadata{
					SaleMode:            models.SaleModeBoth,
					RentDailyPriceMinor: models.RentPrices{Eur: 1900, Usd: 2100},
					TitleI18n:           models.I18nText{Fr: "Drone X Pro FR", En: "Drone X Pro EN"},
					DescriptionI18n:     models.I18nText{Fr: "Vidéo 4K", En: "4K video"},
				},
			},
		},
		regions: []models.Region{
			{ID: "reg_eu", Name: "Europe", CurrencyCode: "eur"},
			{ID: "reg_us", Name: "US", CurrencyCode: "usd"},
		},
	}
}

func newRouter(src *fakeCatalogSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(catalog.NewService(src, src))

	r := gin.New()
	r.GET("/store/drone-products", h.ListDroneProducts)
	r.GET("/store/drone-products/:handle", h.GetDroneProduct)
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListDroneProductsDefauts(t *testing.T) {
	r := newRouter(seededSource())

	w := doGet(t, r, "/store/drone-products")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DroneProductsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, models.LocaleFR, resp.Locale)
	assert.Equal(t, models.CurrencyEUR, resp.Currency)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Drone X Pro FR", resp.Products[0].Title)
	require.NotNil(t, resp.Products[0].SalePriceMinor)
	assert.Equal(t, int64(99900), *resp.Products[0].SalePriceMinor)
}

func TestListDroneProductsParametres(t *testing.T) {
	r := newRouter(seededSource())

	w := doGet(t, r, "/store/drone-products?locale=en&currency=usd&limit=5&offset=2")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DroneProductsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, models.LocaleEN, resp.Locale)
	assert.Equal(t, models.CurrencyUSD, resp.Currency)
	assert.Equal(t, 5, resp.Limit)
	assert.Equal(t, 2, resp.Offset)
	assert.Equal(t, "Drone X Pro EN", resp.Products[0].Title)
	assert.Equal(t, int64(109900), *resp.Products[0].SalePriceMinor)
	assert.Equal(t, int64(2100), *resp.Products[0].RentDailyPriceMinor)
}

// Paramètres illisibles : repli silencieux sur les défauts, jamais de 400
func TestListDroneProductsParametresInvalides(t *testing.T) {
	r := newRouter(seededSource())

	w := doGet(t, r, "/store/drone-products?locale=de&currency=gbp&limit=abc&offset=-9")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DroneProductsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, models.LocaleFR, resp.Locale)
	assert.Equal(t, models.CurrencyEUR, resp.Currency)
	assert.Equal(t, 20, resp.Limit)
	// offset négatif borné à 0
	assert.Equal(t, 0, resp.Offset)
}

func TestListDroneProductsErreurSource(t *testing.T) {
	src := seededSource()
	src.err = errors.New("scylla indisponible")
	r := newRouter(src)

	w := doGet(t, r, "/store/drone-products")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Erreur lecture catalogue")
}

func TestGetDroneProduct(t *testing.T) {
	r := newRouter(seededSource())

	w := doGet(t, r, "/store/drone-products/drone-x-pro?locale=en&currency=usd")
	require.Equal(t, http.StatusOK, w.Code)

	var p models.DroneProduct
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))

	assert.Equal(t, "drone-x-pro", p.Handle)
	assert.Equal(t, "Drone X Pro EN", p.Title)
	require.NotNil(t, p.SalePriceMinor)
	assert.Equal(t, int64(109900), *p.SalePriceMinor)
}

func TestGetDroneProductIntrouvable(t *testing.T) {
	r := newRouter(seededSource())

	w := doGet(t, r, "/store/drone-products/drone-inconnu")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Product with handle drone-inconnu not found", body["message"])
}
