// Package shutdown предоставляет корректное завершение приложения
// по сигналам SIGINT/SIGTERM или по отмене родительского контекста.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bookshelf/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogSignalReceived   = "shutdown signal received"
	LogContextDone      = "parent context done, shutting down"
	LogHookFailed       = "shutdown hook failed"
	LogShutdownTimedOut = "shutdown timed out before all hooks completed"
)

// Wait блокируется до сигнала или отмены ctx, затем параллельно выполняет хуки
// в пределах timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...func(context.Context) error) {
	log := logger.Log(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info(ctx, LogSignalReceived, zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info(ctx, LogContextDone)
	}

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for i, hook := range hooks {
		wg.Add(1)
		go func(idx int, fn func(context.Context) error) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Warn(hookCtx, LogHookFailed, zap.Int("hook", idx), zap.Error(err))
			}
		}(i, hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, LogShutdownTimedOut, zap.Duration("timeout", timeout))
	}
}
