package cli

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mcxross/sui/pkg/observability"
)

// runStats counts driver, compiler and cache events for one command and
// logs a summary at debug level.
type runStats struct {
	roots, failedRoots       atomic.Int64
	compiles, failedCompiles atomic.Int64
	compileNanos             atomic.Int64
	hits, misses, writes     atomic.Int64
	written                  atomic.Int64
}

// install registers s as the process hooks. The returned func restores
// the no-op hooks.
func (s *runStats) install() func() {
	observability.SetDriverHooks(s)
	observability.SetCompileHooks(s)
	observability.SetCacheHooks(s)
	return observability.Reset
}

func (s *runStats) OnRootStart(context.Context, string, string) {}

func (s *runStats) OnRootComplete(_ context.Context, _, _ string, _ time.Duration, err error) {
	s.roots.Add(1)
	if err != nil {
		s.failedRoots.Add(1)
	}
}

func (s *runStats) OnCompileStart(context.Context, string, string) {}

func (s *runStats) OnCompileComplete(_ context.Context, _, _ string, d time.Duration, err error) {
	s.compiles.Add(1)
	s.compileNanos.Add(int64(d))
	if err != nil {
		s.failedCompiles.Add(1)
	}
}

func (s *runStats) OnCacheHit(context.Context, string)  { s.hits.Add(1) }
func (s *runStats) OnCacheMiss(context.Context, string) { s.misses.Add(1) }

func (s *runStats) OnCacheSet(_ context.Context, _ string, size int) {
	s.writes.Add(1)
	s.written.Add(int64(size))
}

// log writes the summary. Counters that stayed at zero are left out.
func (s *runStats) log(logger *log.Logger) {
	kv := []any{"roots", s.roots.Load()}
	if n := s.failedRoots.Load(); n > 0 {
		kv = append(kv, "failed", n)
	}
	if n := s.compiles.Load(); n > 0 {
		kv = append(kv,
			"compiles", n,
			"compile_errors", s.failedCompiles.Load(),
			"compile_time", time.Duration(s.compileNanos.Load()).Round(time.Millisecond),
		)
	}
	if s.hits.Load()+s.misses.Load() > 0 {
		kv = append(kv, "cache_hits", s.hits.Load(), "cache_misses", s.misses.Load())
	}
	if n := s.writes.Load(); n > 0 {
		kv = append(kv, "cache_writes", n, "cache_bytes", s.written.Load())
	}
	logger.Debug("Run summary", kv...)
}
