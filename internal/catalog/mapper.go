package catalog

import (
	"strconv"
	"strings"

	"drone_hub_back_end/internal/models"
)

// MapDroneProduct projette un enregistrement produit brut en modèle de vue
// résolu pour une locale et une devise. Fonction pure : aucune entrée n'est
// mutée, le même triplet (produit, locale, devise) donne toujours le même
// résultat, et une entrée bien typée ne provoque jamais d'erreur.
func MapDroneProduct(p models.RawProduct, locale models.Locale, currency models.Currency) models.DroneProduct {
	md := productMetadata(p)

	saleMode := md.SaleMode
	if !saleMode.Valid() {
		saleMode = models.SaleModeBoth
	}

	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.URL)
	}

	categoryID := ""
	if len(p.CategoryIDs) > 0 {
		categoryID = p.CategoryIDs[0]
	}

	return models.DroneProduct{
		ID:                  p.ID,
		Handle:              p.Handle,
		SaleMode:            saleMode,
		Title:               translate(p.Title, md.TitleI18n, locale),
		Description:         translate(p.Description, md.DescriptionI18n, locale),
		Thumbnail:           p.Thumbnail,
		Images:              images,
		SalePriceMinor:      salePriceMinor(p, currency),
		RentDailyPriceMinor: rentDailyPriceMinor(md, currency),
		Weight:              parseWeight(p.Weight),
		CategoryID:          categoryID,
	}
}

// productMetadata retourne le bloc metadata du produit, ou le bloc par défaut
// quand il est absent
func productMetadata(p models.RawProduct) models.ProductMetadata {
	if p.Metadata == nil {
		return models.DefaultProductMetadata()
	}
	return *p.Metadata
}

// salePriceMinor cherche le prix de vente dans la PREMIÈRE variante du produit
// (pas la moins chère, pas de correspondance SKU) : entrée dont la devise
// correspond, insensible à la casse. Un montant à 0 est traité comme absent —
// ambiguïté connue du format source, conservée telle quelle.
func salePriceMinor(p models.RawProduct, currency models.Currency) *int64 {
	if len(p.Variants) == 0 {
		return nil
	}
	variant := p.Variants[0]
	for _, price := range variant.Prices {
		if strings.EqualFold(price.CurrencyCode, string(currency)) {
			if price.Amount != 0 {
				amount := price.Amount
				return &amount
			}
			return nil
		}
	}
	return nil
}

// rentDailyPriceMinor : tarif journalier du metadata pour la devise demandée.
// 0 ou manquant devient nil, par le même raccourci "valeur fausse = absente".
func rentDailyPriceMinor(md models.ProductMetadata, currency models.Currency) *int64 {
	rate := md.RentDailyPriceMinor.ForCurrency(currency)
	if rate == 0 {
		return nil
	}
	return &rate
}

// translate : surcharge i18n non vide pour la locale demandée, sinon champ de
// base non traduit, sinon chaîne vide
func translate(base string, i18n models.I18nText, locale models.Locale) string {
	if v := i18n.ForLocale(locale); v != "" {
		return v
	}
	return base
}

// parseWeight coerce le poids brut en nombre ; tout échec de parsing donne 0
func parseWeight(raw string) float64 {
	w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return w
}
