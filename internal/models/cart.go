package models

// ItemType distingue les lignes d'achat des lignes de location
type ItemType string

const (
	ItemPurchase ItemType = "purchase"
	ItemRental   ItemType = "rental"
)

// Cart est le panier persisté d'une session de navigation.
// Total est un cache dérivé : il est recalculé après chaque mutation et
// doit toujours être égal à la somme des contributions des lignes.
type Cart struct {
	Items []CartItem `json:"items"`
	Total int64      `json:"total"`
}

// EmptyCart est le panier canonique vide, renvoyé quand rien n'est
// persisté ou que le stockage est indisponible
func EmptyCart() Cart {
	return Cart{Items: []CartItem{}, Total: 0}
}

// CartItem est une ligne du panier. Pour un achat, ID = id du produit
// (les achats du même produit s'accumulent sur une seule ligne).
// Pour une location, ID = "{produit}-{début}-{fin}" : deux fenêtres de
// location identiques donnent deux lignes distinctes, jamais fusionnées.
// Le produit est un instantané figé à l'ajout, pas une référence vive.
type CartItem struct {
	ID            string         `json:"id"`
	Type          ItemType       `json:"type"`
	Product       DroneProduct   `json:"product"`
	Quantity      int            `json:"quantity"`
	RentalDetails *RentalDetails `json:"rental_details,omitempty"`
}

// RentalDetails fige les conditions d'une location au moment de l'ajout.
// TotalDays est le plafond de l'écart en jours entiers ; un intervalle nul
// ou négatif n'est pas rejeté et produit un nombre de jours <= 0.
type RentalDetails struct {
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	TotalDays       int    `json:"total_days"`
	TotalPriceMinor int64  `json:"total_price"`
}
