package scheduler

import (
	"math/rand/v2"
	"time"
)

// Backoff удваивает задержку опроса после каждой ошибки до потолка и сбрасывает ее после успеха
type Backoff struct {
	base time.Duration
	max  time.Duration
	cur  time.Duration
}

// NewBackoff создает backoff с базовым интервалом base и потолком ceiling
func NewBackoff(base, ceiling time.Duration) *Backoff {
	if ceiling < base {
		ceiling = base
	}
	return &Backoff{base: base, max: ceiling, cur: base}
}

// Success сбрасывает задержку к базовой
func (b *Backoff) Success() time.Duration {
	b.cur = b.base
	return b.cur
}

// Failure удваивает задержку, не превышая потолок
func (b *Backoff) Failure() time.Duration {
	b.cur *= 2
	if b.cur > b.max {
		b.cur = b.max
	}
	return b.cur
}

// Current - текущая задержка без дрожания
func (b *Backoff) Current() time.Duration {
	return b.cur
}

// Jitter - случайная добавка к паузе в пределах [0, 1s)
func Jitter() time.Duration {
	return rand.N(time.Second)
}
