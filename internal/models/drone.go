package models

// Locale supportée par la boutique
type Locale string

const (
	LocaleFR Locale = "fr"
	LocaleEN Locale = "en"
)

// Currency supportée par la boutique
type Currency string

const (
	CurrencyEUR Currency = "eur"
	CurrencyUSD Currency = "usd"
)

// SaleMode indique si un drone est à la vente, à la location, ou les deux
type SaleMode string

const (
	SaleModeSale SaleMode = "sale"
	SaleModeRent SaleMode = "rent"
	SaleModeBoth SaleMode = "both"
)

// Valid vérifie que la valeur est un des trois modes connus
func (m SaleMode) Valid() bool {
	switch m {
	case SaleModeSale, SaleModeRent, SaleModeBoth:
		return true
	}
	return false
}

// DroneProduct est le modèle de vue exposé par /store/drone-products :
// produit aplati, résolu pour une locale et une devise données.
// Les prix sont en unités mineures (centimes). Un prix nil signifie
// "non trouvé pour cette devise" — un prix de 0 est indistinguable
// d'un prix absent (comportement historique, conservé tel quel).
type DroneProduct struct {
	ID                  string   `json:"id"`
	Handle              string   `json:"handle"`
	SaleMode            SaleMode `json:"sale_mode"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Thumbnail           string   `json:"thumbnail"`
	Images              []string `json:"images"`
	SalePriceMinor      *int64   `json:"sale_price_minor"`
	RentDailyPriceMinor *int64   `json:"rent_daily_price_minor"`
	Weight              float64  `json:"weight"`
	CategoryID          string   `json:"category_id"`
}

// DroneProductsResponse est l'enveloppe renvoyée par le catalogue
type DroneProductsResponse struct {
	Locale      Locale         `json:"locale"`
	Currency    Currency       `json:"currency"`
	Count       int            `json:"count"`
	Limit       int            `json:"limit"`
	Offset      int            `json:"offset"`
	SourceTotal int            `json:"source_total"`
	Products    []DroneProduct `json:"products"`
}
