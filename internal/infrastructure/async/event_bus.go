package async

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"prdashboard/internal/domain"
)

type AsyncEventBus struct {
	pool *WorkerPool
	log  *zap.Logger

	mu       sync.RWMutex
	handlers []domain.EventHandler
}

func NewAsyncEventBus(ctx context.Context, poolSize int, log *zap.Logger) *AsyncEventBus {
	return &AsyncEventBus{
		pool: NewWorkerPool(ctx, poolSize, poolSize*16, 5*time.Second, log),
		log:  log,
	}
}

func (b *AsyncEventBus) Subscribe(h domain.EventHandler) {
	b.mu.Lock()
	b.handlers = append(b.handlers, h)
	b.mu.Unlock()
}

func (b *AsyncEventBus) Publish(ctx context.Context, e domain.Event) {
	b.mu.RLock()
	handlers := append([]domain.EventHandler(nil), b.handlers...)
	b.mu.RUnlock()

	b.pool.Submit(func(ctx context.Context) {
		b.log.Info("domain_event",
			zap.String("type", e.Type),
			zap.Any("payload", e.Payload),
		)
		for _, h := range handlers {
			h(ctx, e)
		}
	})
}

func (b *AsyncEventBus) Close() {
	b.pool.Shutdown()
}
