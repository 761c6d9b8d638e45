package reminder

import (
	"context"
	"drnote/internal/domain/constant"
	"drnote/internal/pkg/logger"
	"fmt"
	"sync"
)

// RequestedOptions are the capabilities asked for when the user has not decided yet.
const RequestedOptions = constant.AuthorizeAlert | constant.AuthorizeSound | constant.AuthorizeList

// Gate resolves the notification authorization once per process and caches it.
type Gate struct {
	sink Sink
	log  logger.Logger

	once   sync.Once
	mu     sync.RWMutex
	status constant.AuthorizationStatus
}

// NewGate creates a Gate. The cached status starts as undetermined.
func NewGate(sink Sink, log logger.Logger) *Gate {
	return &Gate{sink: sink, log: log}
}

// EnsureAuthorized reads the sink's status and, if undetermined, requests
// authorization. Only the first call does any work; later calls return the
// cached status. Errors leave the status undetermined and are not retried.
func (g *Gate) EnsureAuthorized(ctx context.Context) constant.AuthorizationStatus {
	g.once.Do(func() {
		status := g.resolve(ctx)
		g.mu.Lock()
		g.status = status
		g.mu.Unlock()
		g.log.Info(fmt.Sprintf("Notification authorization resolved: %s", status))
	})
	return g.Status()
}

// Status returns the cached authorization status.
func (g *Gate) Status() constant.AuthorizationStatus {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}

func (g *Gate) resolve(ctx context.Context) constant.AuthorizationStatus {
	status, err := g.sink.AuthorizationStatus(ctx)
	if err != nil {
		g.log.Error("Failed to read notification authorization status", err)
		return constant.AuthorizationUndetermined
	}
	if status != constant.AuthorizationUndetermined {
		return status
	}

	granted, err := g.sink.RequestAuthorization(ctx, RequestedOptions)
	if err != nil {
		g.log.Error("Notification authorization request failed, treating as not authorized for now", err)
		return constant.AuthorizationUndetermined
	}
	if granted {
		return constant.AuthorizationAuthorized
	}
	return constant.AuthorizationDenied
}
