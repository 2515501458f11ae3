package qos

import (
	"context"
	"sync"
)

// AdaptiveLimiter 基于 AIMD (Additive Increase Multiplicative Decrease) 的并发限制器
// 用来约束同时在跑的 ping 进程数量：
// - 探测成功：每累计 limit 次成功，limit + 1，不超过 max
// - 探测失败 (超时/不可达)：limit 乘以 0.7，至少减 1，不低于 min
//
// 等待者按 FIFO 顺序获得令牌，保证先读到的主机先被探测。
type AdaptiveLimiter struct {
	mu       sync.Mutex
	limit    int
	min      int
	max      int
	inflight int
	streak   int // 连续成功计数
	waiters  []chan struct{}
}

// NewAdaptiveLimiter 创建限制器
// initial 会被修正到 [min, max] 区间内，min 至少为 1
func NewAdaptiveLimiter(initial, min, max int) *AdaptiveLimiter {
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}
	if initial < min {
		initial = min
	}
	if initial > max {
		initial = max
	}
	return &AdaptiveLimiter{limit: initial, min: min, max: max}
}

// Acquire 获取一个令牌，没有可用令牌时阻塞直到被唤醒或 ctx 取消
func (l *AdaptiveLimiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	if l.inflight < l.limit && len(l.waiters) == 0 {
		l.inflight++
		l.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	l.waiters = append(l.waiters, ch)
	l.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		l.mu.Lock()
		defer l.mu.Unlock()
		if !l.removeWaiter(ch) {
			// 取消和唤醒同时发生，令牌已经记到我们头上，还回去
			l.inflight--
			l.wakeLocked()
		}
		return ctx.Err()
	}
}

// Release 归还令牌
func (l *AdaptiveLimiter) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inflight > 0 {
		l.inflight--
	}
	l.wakeLocked()
}

// OnSuccess 记录一次成功
func (l *AdaptiveLimiter) OnSuccess() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.streak++
	if l.streak >= l.limit {
		l.streak = 0
		if l.limit < l.max {
			l.limit++
			l.wakeLocked()
		}
	}
}

// OnFailure 记录一次失败
// 已经借出的令牌不会被收回，只是在归还前不再发放新令牌
func (l *AdaptiveLimiter) OnFailure() {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := int(float64(l.limit) * 0.7)
	if l.limit-next < 1 {
		next = l.limit - 1
	}
	if next < l.min {
		next = l.min
	}
	l.limit = next
	l.streak = 0
}

// CurrentLimit 当前并发上限
func (l *AdaptiveLimiter) CurrentLimit() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.limit
}

// InFlight 当前已借出的令牌数
func (l *AdaptiveLimiter) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inflight
}

func (l *AdaptiveLimiter) wakeLocked() {
	for l.inflight < l.limit && len(l.waiters) > 0 {
		ch := l.waiters[0]
		l.waiters = l.waiters[1:]
		l.inflight++
		close(ch)
	}
}

func (l *AdaptiveLimiter) removeWaiter(ch chan struct{}) bool {
	for i, w := range l.waiters {
		if w == ch {
			l.waiters = append(l.waiters[:i], l.waiters[i+1:]...)
			return true
		}
	}
	return false
}
