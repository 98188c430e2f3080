package cart

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Les paniers Redis expirent après 30 jours d'inactivité
const cartTTL = 30 * 24 * time.Hour

// RedisKV persiste les paniers dans Redis, un document JSON par clé,
// avec TTL glissant
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, cartTTL).Err()
}

func (r *RedisKV) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// RedisNotifier publie les changements de panier sur le canal pub/sub
// "cart:{id}", consommé par le handler WebSocket
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func (r *RedisNotifier) Publish(ctx context.Context, cartID, event string) error {
	return r.client.Publish(ctx, "cart:"+cartID, event).Err()
}
