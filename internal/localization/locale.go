package localization

import (
	"strings"

	"drone_hub_back_end/internal/models"
)

// ResolveLocale dérive la locale d'affichage depuis le paramètre de requête.
// Totale : seul "en" (insensible à la casse) donne en, tout le reste — valeur
// absente, vide ou inconnue — retombe sur fr. Jamais d'erreur.
func ResolveLocale(raw string) models.Locale {
	if strings.ToLower(strings.TrimSpace(raw)) == "en" {
		return models.LocaleEN
	}
	return models.LocaleFR
}

// ResolveCurrency dérive la devise d'affichage depuis le paramètre de requête.
// Même contrat : seul "usd" exact (insensible à la casse) donne usd, défaut eur.
func ResolveCurrency(raw string) models.Currency {
	if strings.ToLower(strings.TrimSpace(raw)) == "usd" {
		return models.CurrencyUSD
	}
	return models.CurrencyEUR
}
