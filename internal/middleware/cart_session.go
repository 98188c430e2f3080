package middleware

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSecret = []byte(os.Getenv("JWT_SECRET"))

const sessionCookie = "drone_hub_cart_session"

// Durée de vie alignée sur le TTL des paniers Redis
const sessionMaxAge = 30 * 24 * time.Hour

// CartSession attache un identifiant de panier anonyme à la requête.
// Le cookie porte un jeton signé contenant cart_id : une session de
// navigation garde un seul panier, sans compte utilisateur. Jeton absent,
// invalide ou expiré : on en émet simplement un nouveau, jamais de 401.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(sessionCookie); err == nil {
			if cartID := parseCartID(token); cartID != "" {
				c.Set("cart_id", cartID)
				c.Next()
				return
			}
		}

		cartID := uuid.NewString()
		token, err := signCartID(cartID)
		if err != nil {
			log.Printf("❌ Erreur signature session panier: %v", err)
			c.JSON(500, gin.H{"error": "Erreur création session panier"})
			c.Abort()
			return
		}

		c.SetCookie(sessionCookie, token, int(sessionMaxAge.Seconds()), "/", "", false, true)
		c.Set("cart_id", cartID)
		c.Next()
	}
}

func signCartID(cartID string) (string, error) {
	claims := jwt.MapClaims{
		"cart_id": cartID,
		"exp":     time.Now().Add(sessionMaxAge).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

func parseCartID(tokenString string) string {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}

	if exp, ok := claims["exp"].(float64); ok {
		if time.Now().Unix() > int64(exp) {
			return ""
		}
	}

	cartID, _ := claims["cart_id"].(string)
	return cartID
}
