package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestRedisLimiter(t *testing.T) {
	url := os.Getenv("VOCAGUIA_TEST_REDIS_URL")
	if url == "" {
		t.Skip("VOCAGUIA_TEST_REDIS_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb, err := Connect(ctx, url, zap.NewNop())
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	defer rdb.Close()

	l := NewRedis(rdb, "vocaguia_test_"+uuid.NewString(), 2, time.Minute)
	for i, want := range []bool{true, true, false} {
		got, err := l.Take(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("Take: %v", err)
		}
		if got != want {
			t.Errorf("hit %d allowed = %v, want %v", i, got, want)
		}
	}
}

func TestConnect_BadURL(t *testing.T) {
	if _, err := Connect(context.Background(), "not-a-url", zap.NewNop()); err == nil {
		t.Error("expected parse error")
	}
}
