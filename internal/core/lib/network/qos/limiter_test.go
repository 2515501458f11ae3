package qos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdaptiveLimiter_Clamp(t *testing.T) {
	assert.Equal(t, 1, NewAdaptiveLimiter(0, 0, 0).CurrentLimit())
	assert.Equal(t, 5, NewAdaptiveLimiter(10, 1, 5).CurrentLimit())
	assert.Equal(t, 3, NewAdaptiveLimiter(1, 3, 8).CurrentLimit())
}

func TestAdaptiveLimiter_Increase(t *testing.T) {
	// 初始 10, 最小 1, 最大 12
	l := NewAdaptiveLimiter(10, 1, 12)

	// 10 次成功 -> 11
	for i := 0; i < 10; i++ {
		l.OnSuccess()
	}
	assert.Equal(t, 11, l.CurrentLimit())

	// 再 11 次成功 -> 12
	for i := 0; i < 11; i++ {
		l.OnSuccess()
	}
	assert.Equal(t, 12, l.CurrentLimit())

	// 已到上限
	for i := 0; i < 24; i++ {
		l.OnSuccess()
	}
	assert.Equal(t, 12, l.CurrentLimit())
}

func TestAdaptiveLimiter_Decrease(t *testing.T) {
	l := NewAdaptiveLimiter(100, 1, 200)

	// 100 * 0.7 = 70
	l.OnFailure()
	assert.Equal(t, 70, l.CurrentLimit())

	// 小数值时至少减 1，不低于 min
	small := NewAdaptiveLimiter(2, 1, 4)
	small.OnFailure()
	assert.Equal(t, 1, small.CurrentLimit())
	small.OnFailure()
	assert.Equal(t, 1, small.CurrentLimit())
}

func TestAdaptiveLimiter_AcquireRelease(t *testing.T) {
	l := NewAdaptiveLimiter(2, 1, 10)
	ctx := context.Background()

	require.NoError(t, l.Acquire(ctx))
	require.NoError(t, l.Acquire(ctx))
	assert.Equal(t, 2, l.InFlight())

	// 第三个获取应该阻塞直到超时
	timeoutCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.Acquire(timeoutCtx), context.DeadlineExceeded)
	assert.Equal(t, 2, l.InFlight())

	// 释放后等待者被唤醒
	acquired := make(chan error, 1)
	go func() { acquired <- l.Acquire(ctx) }()

	time.Sleep(20 * time.Millisecond)
	l.Release()

	select {
	case err := <-acquired:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken by Release")
	}
	assert.Equal(t, 2, l.InFlight())
}

func TestAdaptiveLimiter_FailureHoldsBackTokens(t *testing.T) {
	l := NewAdaptiveLimiter(3, 1, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Acquire(ctx))
	}
	l.OnFailure() // 3 -> 2

	l.Release() // inflight 2, limit 2: 不能再发放

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Acquire(timeoutCtx))

	l.Release()
	assert.NoError(t, l.Acquire(ctx))
}
