package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
)

// KeyedLimiter mantém um token bucket por chave (ator + solicitação).
// Um balde ocioso por every*burst já está cheio de novo; a varredura o
// descarta sem mudar o comportamento.
type KeyedLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*keyedEntry
	every     time.Duration
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type keyedEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewKeyedLimiter(every time.Duration, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: make(map[string]*keyedEntry),
		every:    every,
		burst:    burst,
		idle:     every * time.Duration(burst),
		now:      time.Now,
	}
}

func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	entry, ok := l.limiters[key]
	if !ok {
		entry = &keyedEntry{limiter: rate.NewLimiter(rate.Every(l.every), l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// Len devolve quantos baldes estão em memória.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *KeyedLimiter) sweep(now time.Time) {
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.idle {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

// PinAttemptLimit limita tentativas de PIN por fornecedor e solicitação: com
// 10.000 combinações, tentativas ilimitadas quebrariam o código em minutos.
func PinAttemptLimit(l *KeyedLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, httperr.HTTPError{
				Code:    "invalid_id",
				Message: "Identificador inválido.",
			})
			return
		}

		key := c.ClientIP() + ":" + requestID.String()
		if a, ok := ActorFrom(c); ok {
			key = a.ID.String() + ":" + requestID.String()
		}

		if !l.Allow(key) {
			LoggerFrom(c).Warn("pin attempts rate limited", zap.String("key", key))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httperr.HTTPError{
				Code:    "too_many_attempts",
				Message: "Demasiados intentos. Espera un momento.",
			})
			return
		}
		c.Next()
	}
}
