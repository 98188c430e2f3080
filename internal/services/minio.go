package services

import (
	"context"
	"net/url"
	"os"
	"strings"
	"time"

	"drone_hub_back_end/internal/database"
)

// GenerateSignedURL génère une URL signée (avec expiration) pour un objet
// du bucket d'images produits
func GenerateSignedURL(ctx context.Context, objectPath string, duration time.Duration) (string, error) {
	bucket := os.Getenv("MINIO_BUCKET")
	reqParams := make(url.Values)

	// Nettoie l'URL complète pour ne garder que le chemin relatif au bucket
	key := objectPath
	if idx := strings.Index(objectPath, "/"+bucket+"/"); idx != -1 {
		key = objectPath[idx+len(bucket)+2:]
	}

	presignedURL, err := database.MinIO.PresignedGetObject(ctx, bucket, key, duration, reqParams)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}

// SignImageURLs remplace chaque URL d'image par sa version signée (24h).
// Sans client MinIO configuré, les URLs sont renvoyées telles quelles.
// Une image qui ne se signe pas est écartée plutôt que de casser la réponse.
func SignImageURLs(ctx context.Context, urls []string) []string {
	if database.MinIO == nil {
		return urls
	}

	signed := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		s, err := GenerateSignedURL(ctx, u, 24*time.Hour)
		if err == nil {
			signed = append(signed, s)
		}
	}
	return signed
}
