package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"memocache"
)

// logMetrics forwards cache lifecycle events to the logger.
type logMetrics struct{}

func (logMetrics) Hit()      { log.Debug("cache event", "type", "hit") }
func (logMetrics) Miss()     { log.Debug("cache event", "type", "miss") }
func (logMetrics) Eviction() { log.Info("cache event", "type", "eviction") }
func (logMetrics) Expire()   { log.Info("cache event", "type", "expire") }

func main() {
	log.SetLevel(log.DebugLevel)
	ctx := context.Background()

	// Stand-in for an expensive lookup: a slow "remote" fetch.
	fetch := func(ctx context.Context, region string) (string, error) {
		log.Info("running computation", "region", region)
		time.Sleep(50 * time.Millisecond)
		return "payload for " + region, nil
	}

	cfg := memocache.DefaultConfig[string]()
	cfg.MaxSize = 3
	cfg.TTL = 1 * time.Second
	cfg.Metrics = logMetrics{}

	cache, err := memocache.New(fetch, cfg)
	if err != nil {
		log.Fatal("could not build cache", "err", err)
	}

	log.Info("cache ready", "max_size", cfg.MaxSize, "ttl", cfg.TTL, "policy", "LRU")

	// Miss, then hit.
	v, _ := cache.Call(ctx, "eu-west")
	log.Info("first call", "value", v)
	v, _ = cache.Call(ctx, "eu-west")
	log.Info("second call served from cache", "value", v)

	// TTL expiry.
	log.Info("waiting for ttl to elapse")
	time.Sleep(1100 * time.Millisecond)
	v, _ = cache.Call(ctx, "eu-west")
	log.Info("call after ttl recomputed", "value", v)

	// Capacity pressure: three more regions push the oldest out.
	for _, region := range []string{"us-east", "ap-south", "sa-east"} {
		cache.Call(ctx, region)
	}
	if ok, _ := cache.Contains("eu-west"); !ok {
		log.Info("eu-west was least recently used and has been evicted")
	}

	// Explicit invalidation.
	if err := cache.Invalidate("us-east"); err != nil {
		log.Error("invalidate failed", "err", err)
	}
	v, _ = cache.Call(ctx, "us-east")
	log.Info("call after invalidation recomputed", "value", v)

	s := cache.Stats()
	log.Info("final stats",
		"hits", s.Hits,
		"misses", s.Misses,
		"size", s.Size,
		"hit_rate", fmt.Sprintf("%.2f", s.HitRate),
	)
}
