package engine

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/frankb2024/Bad-kids-sub000/internal/config"
	"github.com/frankb2024/Bad-kids-sub000/internal/lock"
	"github.com/frankb2024/Bad-kids-sub000/internal/logger"
)

// Loop runs the engine on a fixed-interval ticker until shutdown. A
// filesystem watch on the schedule file triggers an immediate tick between
// intervals; the engine's own reentry guard keeps everything sequential.
type Loop struct {
	cfg      config.Config
	engine   *Engine
	fileLock *lock.FileLock

	watcher *fsnotify.Watcher
	ticker  *time.Ticker

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	shutdown sync.Once
}

func NewLoop(cfg config.Config, engine *Engine) *Loop {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loop{
		cfg:      cfg,
		engine:   engine,
		fileLock: lock.New(cfg.LockPath()),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Run starts the loop and blocks until a shutdown signal arrives.
func (l *Loop) Run() error {
	if err := l.fileLock.TryLock(); err != nil {
		return fmt.Errorf("scheduler lock: %w", err)
	}
	logger.Info("scheduler starting", "pid", os.Getpid(), "data_dir", l.cfg.DataDir)

	if err := l.engine.Start(); err != nil {
		l.fileLock.Unlock()
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		l.fileLock.Unlock()
		return fmt.Errorf("create schedule watcher: %w", err)
	}
	l.watcher = watcher
	// Watch the directory; editors replace files rather than writing in place
	if err := watcher.Add(filepath.Dir(l.engine.SchedulePath())); err != nil {
		l.cleanup()
		return fmt.Errorf("watch schedule dir: %w", err)
	}

	l.ticker = time.NewTicker(l.cfg.TickInterval())

	l.wg.Add(2)
	go l.tickerLoop()
	go l.watchLoop()

	l.engine.Tick()
	logger.Info("scheduler ready", "interval", l.cfg.TickInterval())

	l.waitSignals()
	return nil
}

func (l *Loop) tickerLoop() {
	defer l.wg.Done()
	for {
		select {
		case <-l.ctx.Done():
			return
		case <-l.ticker.C:
			l.engine.Tick()
		}
	}
}

// watchLoop converts schedule-file writes into immediate ticks so edits take
// effect without waiting for the next interval.
func (l *Loop) watchLoop() {
	defer l.wg.Done()
	schedulePath := l.engine.SchedulePath()
	for {
		select {
		case <-l.ctx.Done():
			return
		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if event.Name != schedulePath {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug("schedule file event", "op", event.Op.String())
				l.engine.Tick()
			}
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("schedule watcher error", "error", err)
		}
	}
}

func (l *Loop) waitSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig.String())
	l.Shutdown()
}

// Shutdown stops the tick sources before releasing any resource. Idempotent.
// cleanup owns closing the watcher, so it is closed exactly once whether the
// loop shuts down normally or fails during Run.
func (l *Loop) Shutdown() {
	l.shutdown.Do(func() {
		l.cancel()
		if l.ticker != nil {
			l.ticker.Stop()
		}
		l.wg.Wait()
		l.cleanup()
		logger.Info("scheduler stopped")
	})
}

func (l *Loop) cleanup() {
	if l.watcher != nil {
		l.watcher.Close()
	}
	l.fileLock.Unlock()
}
