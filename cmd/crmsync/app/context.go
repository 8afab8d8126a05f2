package app

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/agentstation/crmsync/pkg/logging"
)

// ContextWithSignals creates a context that is cancelled on SIGINT or SIGTERM.
// An interrupted sync stops before its next CRM call.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// commandContext attaches the application logger to ctx.
func (a *App) commandContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, a.logger)
}
