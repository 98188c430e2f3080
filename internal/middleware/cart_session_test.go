package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CartSession())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("cart_id"))
	})
	return r
}

func sessionCookieFrom(w *httptest.ResponseRecorder) *http.Cookie {
	res := w.Result()
	defer res.Body.Close()
	for _, c := range res.Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	return nil
}

func TestCartSessionEmetUnCookie(t *testing.T) {
	r := sessionRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())

	cookie := sessionCookieFrom(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
}

// Le jeton émis est réutilisé : même cart_id d'une requête à l'autre
func TestCartSessionConserveLePanier(t *testing.T) {
	r := sessionRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cartID := w.Body.String()
	cookie := sessionCookieFrom(w)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	assert.Equal(t, cartID, w2.Body.String())
	// Pas de nouveau cookie quand le jeton est valide
	assert.Nil(t, sessionCookieFrom(w2))
}

// Jeton falsifié ou illisible : nouvelle session, jamais de 401
func TestCartSessionJetonInvalide(t *testing.T) {
	r := sessionRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "pas-un-jwt"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
	assert.NotNil(t, sessionCookieFrom(w))
}

func TestCartSessionJetonExpire(t *testing.T) {
	r := sessionRouter()

	claims := jwt.MapClaims{
		"cart_id": "panier-perime",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "panier-perime", w.Body.String())
}

func TestSignParseAllerRetour(t *testing.T) {
	token, err := signCartID("panier-42")
	require.NoError(t, err)

	assert.Equal(t, "panier-42", parseCartID(token))
}
