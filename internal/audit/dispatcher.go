package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Event struct {
	ActorID   *uuid.UUID
	ActorRole string
	Action    string
	Entity    string
	EntityID  *uuid.UUID
	Metadata  any
}

type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event

	once sync.Once
	done chan struct{}
}

func NewDispatcher(logger *Logger, log *zap.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.logger.Log(
			ctx,
			ev.ActorID,
			ev.ActorRole,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Error("audit error", zap.String("action", ev.Action), zap.Error(err))
		}
		cancel()
	}
}

// Dispatch nunca bloqueia a requisição: com a fila cheia o evento é descartado.
func (d *Dispatcher) Dispatch(ev Event) {
	defer func() {
		// fila já fechada no shutdown
		if recover() != nil {
			d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		}
	}()

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	<-d.done
}
