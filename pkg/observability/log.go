package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements
// SolveHooks, CacheHooks and HTTPHooks.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to logger under the "hooks" prefix.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnPreprocess(_ context.Context, instance string, n int, d time.Duration, err error) {
	h.logger.Debug("preprocess", "instance", instance, "n", n, "duration", d, "err", err)
}

func (h *LogHooks) OnBounds(_ context.Context, instance string, best int, d time.Duration) {
	h.logger.Debug("bounds", "instance", instance, "best", best, "duration", d)
}

func (h *LogHooks) OnSampleStart(_ context.Context, instance string, iterations int) {
	h.logger.Debug("sample start", "instance", instance, "iterations", iterations)
}

func (h *LogHooks) OnSampleComplete(_ context.Context, instance string, stations int, d time.Duration, err error) {
	h.logger.Debug("sample done", "instance", instance, "stations", stations, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "cache", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "cache", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "cache", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ SolveHooks = (*LogHooks)(nil)
	_ CacheHooks = (*LogHooks)(nil)
	_ HTTPHooks  = (*LogHooks)(nil)
)
