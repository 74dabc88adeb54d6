package memocache_test

import (
	"context"
	"fmt"
	"testing"

	"memocache"
)

func newBenchmarkCache(b *testing.B, capacity int) *memocache.Cache[int, string] {
	b.Helper()

	fn := func(ctx context.Context, n int) (string, error) {
		return fmt.Sprintf("value-%d", n), nil
	}

	c, err := memocache.New(fn, &memocache.Config[int]{MaxSize: capacity})
	if err != nil {
		b.Fatalf("new cache: %v", err)
	}
	return c
}

//
// ================= SINGLE THREAD BENCH =================
//

func BenchmarkCallHit(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b, 100000)

	c.Call(ctx, 42)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Call(ctx, 42)
	}
}

func BenchmarkCallMiss(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b, 100000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Call(ctx, i)
	}
}

//
// ================= PARALLEL BENCH =================
//

func BenchmarkCallParallelHit(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b, 100000)

	for i := 0; i < 1000; i++ {
		c.Call(ctx, i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Call(ctx, 42)
		}
	})
}

//
// ================= EVICTION PRESSURE =================
//

func BenchmarkCallUnderEviction(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b, 128)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Call(ctx, i%1024)
	}
}
