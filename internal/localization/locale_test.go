package localization

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"drone_hub_back_end/internal/models"
)

func TestResolveLocale(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.Locale
	}{
		{"vide donne fr", "", models.LocaleFR},
		{"fr explicite", "fr", models.LocaleFR},
		{"en exact", "en", models.LocaleEN},
		{"en majuscules", "EN", models.LocaleEN},
		{"locale non supportée retombe sur fr", "de", models.LocaleFR},
		{"variante régionale non reconnue", "en-US", models.LocaleFR},
		{"espaces autour", "  en  ", models.LocaleEN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLocale(tt.raw))
		})
	}
}

func TestResolveCurrency(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.Currency
	}{
		{"vide donne eur", "", models.CurrencyEUR},
		{"eur explicite", "eur", models.CurrencyEUR},
		{"usd exact", "usd", models.CurrencyUSD},
		{"usd majuscules", "USD", models.CurrencyUSD},
		{"devise inconnue retombe sur eur", "gbp", models.CurrencyEUR},
		{"symbole non reconnu", "$", models.CurrencyEUR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCurrency(tt.raw))
		})
	}
}
