package utils

import (
	"sync"
	"time"
)

// RateLimiter реализует ограничение частоты запросов методом
// скользящего окна по ключу (обычно IP клиента)
type RateLimiter struct {
	mu      sync.Mutex
	hits    map[string][]time.Time
	limit   int
	window  time.Duration
	lastGC  time.Time
	gcEvery time.Duration
}

// NewRateLimiter создает новый RateLimiter
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		hits:    make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		lastGC:  time.Now(),
		gcEvery: 10 * window,
	}
}

// Allow проверяет, разрешен ли запрос, и учитывает его
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.maybeGC(now)

	valid := rl.prune(key, now)
	if len(valid) >= rl.limit {
		rl.hits[key] = valid
		return false
	}

	rl.hits[key] = append(valid, now)
	return true
}

// Remaining возвращает количество оставшихся запросов
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	remaining := rl.limit - len(rl.prune(key, time.Now()))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RetryAfter возвращает время, когда по ключу освободится слот
func (rl *RateLimiter) RetryAfter(key string) time.Time {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := rl.prune(key, time.Now())
	if len(valid) < rl.limit {
		return time.Now()
	}
	return valid[0].Add(rl.window)
}

// Reset сбрасывает счетчик для ключа
func (rl *RateLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.hits, key)
}

// prune отбрасывает запросы, вышедшие из окна. Вызывается под мьютексом.
func (rl *RateLimiter) prune(key string, now time.Time) []time.Time {
	windowStart := now.Add(-rl.window)
	var valid []time.Time
	for _, t := range rl.hits[key] {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	return valid
}

// maybeGC периодически убирает опустевшие ключи, иначе карта растет
// на каждом новом IP. Вызывается под мьютексом.
func (rl *RateLimiter) maybeGC(now time.Time) {
	if now.Sub(rl.lastGC) < rl.gcEvery {
		return
	}
	windowStart := now.Add(-rl.window)
	for key, hits := range rl.hits {
		alive := false
		for _, t := range hits {
			if t.After(windowStart) {
				alive = true
				break
			}
		}
		if !alive {
			delete(rl.hits, key)
		}
	}
	rl.lastGC = now
}
