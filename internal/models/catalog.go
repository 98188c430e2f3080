package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawProduct est l'enregistrement produit brut tel que stocké côté catalogue,
// avant projection en DroneProduct. Les variantes et les métadonnées sont
// stockées en JSON (colonnes text dans ScyllaDB).
type RawProduct struct {
	ID          string           `json:"id"`
	Handle      string           `json:"handle"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Thumbnail   string           `json:"thumbnail"`
	Status      string           `json:"status"`
	Weight      string           `json:"weight"`
	Variants    []RawVariant     `json:"variants"`
	Images      []ProductImage   `json:"images"`
	CategoryIDs []string         `json:"category_ids"`
	Metadata    *ProductMetadata `json:"metadata"`
}

// RawVariant porte la liste de prix taggés par devise d'une variante
type RawVariant struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	SKU    string         `json:"sku"`
	Prices []VariantPrice `json:"prices"`
}

// VariantPrice est un montant en unités mineures pour une devise donnée
type VariantPrice struct {
	CurrencyCode string `json:"currency_code"`
	Amount       int64  `json:"amount"`
}

// ProductImage référence une image associée au produit
type ProductImage struct {
	URL string `json:"url"`
}

// ProductMetadata est le bloc metadata attendu sur chaque produit drone
type ProductMetadata struct {
	SaleMode            SaleMode   `json:"sale_mode"`
	RentDailyPriceMinor RentPrices `json:"rent_daily_price_minor"`
	TitleI18n           I18nText   `json:"title_i18n"`
	DescriptionI18n     I18nText   `json:"description_i18n"`
}

// DefaultProductMetadata remplace un bloc metadata absent :
// mode "both", tarifs de location à zéro, i18n vide (fallback champs de base)
func DefaultProductMetadata() ProductMetadata {
	return ProductMetadata{
		SaleMode:            SaleModeBoth,
		RentDailyPriceMinor: RentPrices{},
		TitleI18n:           I18nText{},
		DescriptionI18n:     I18nText{},
	}
}

// RentPrices : tarif journalier de location par devise, en unités mineures
type RentPrices struct {
	Eur FlexMinor `json:"eur"`
	Usd FlexMinor `json:"usd"`
}

// ForCurrency retourne le tarif pour la devise demandée (eur par défaut)
func (r RentPrices) ForCurrency(c Currency) int64 {
	if c == CurrencyUSD {
		return int64(r.Usd)
	}
	return int64(r.Eur)
}

// FlexMinor est un montant en unités mineures qui tolère les champs JSON
// mal typés : nombre, chaîne numérique, null. Tout ce qui n'est pas
// interprétable devient 0 au lieu de faire échouer le décodage complet.
type FlexMinor int64

func (f *FlexMinor) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexMinor(n)
	} else {
		*f = 0
	}
	return nil
}

func (f FlexMinor) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(f))
}

// I18nText est une surcharge de texte par locale
type I18nText struct {
	Fr string `json:"fr"`
	En string `json:"en"`
}

// ForLocale retourne la surcharge pour la locale, ou "" si absente
func (t I18nText) ForLocale(l Locale) string {
	if l == LocaleEN {
		return t.En
	}
	return t.Fr
}

// Region est une région de tarification du catalogue
type Region struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currency_code"`
}
