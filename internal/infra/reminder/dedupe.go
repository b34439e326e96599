// Package reminder garante que cada lembrete pré-evento seja emitido uma única
// vez por solicitação e por dia, já que o predicado de janela não tem estado.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// KeyTTL cobre o dia inteiro do evento com folga para mudança de fuso.
const KeyTTL = 26 * time.Hour

type Deduper interface {
	// Claim devolve true só para o primeiro chamador de uma chave.
	Claim(ctx context.Context, key string) (bool, error)
}

func Key(requestID uuid.UUID, dayKey string) string {
	return fmt.Sprintf("reminder:%s:%s", requestID, dayKey)
}

// --------------------------------------------------
// Redis
// --------------------------------------------------

type RedisDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDeduper(client *redis.Client) *RedisDeduper {
	return &RedisDeduper{client: client, ttl: KeyTTL}
}

func (d *RedisDeduper) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, key, time.Now().Unix(), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim reminder key: %w", err)
	}
	return ok, nil
}

// --------------------------------------------------
// Memória
// --------------------------------------------------

type MemoryDeduper struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	keys map[string]time.Time
}

func NewMemoryDeduper() *MemoryDeduper {
	return &MemoryDeduper{
		ttl:  KeyTTL,
		now:  time.Now,
		keys: make(map[string]time.Time),
	}
}

func (d *MemoryDeduper) Claim(ctx context.Context, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for k, exp := range d.keys {
		if !now.Before(exp) {
			delete(d.keys, k)
		}
	}

	if _, taken := d.keys[key]; taken {
		return false, nil
	}
	d.keys[key] = now.Add(d.ttl)
	return true, nil
}

var (
	_ Deduper = (*RedisDeduper)(nil)
	_ Deduper = (*MemoryDeduper)(nil)
)
