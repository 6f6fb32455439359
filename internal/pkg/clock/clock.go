package clock

import (
	"sync"
	"time"
)

// Clock - источник текущего времени
type Clock interface {
	Now() time.Time
}

// Real возвращает системное локальное время
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// New создает системные часы
func New() Clock {
	return Real{}
}

// Fixed - управляемые часы для тестов
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed создает часы, остановленные на указанном моменте
func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Set переставляет часы
func (f *Fixed) Set(now time.Time) {
	f.mu.Lock()
	f.now = now
	f.mu.Unlock()
}

// Advance сдвигает часы вперед
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// AddDays сдвигает часы на целое число календарных дней
func (f *Fixed) AddDays(days int) {
	f.mu.Lock()
	f.now = f.now.AddDate(0, 0, days)
	f.mu.Unlock()
}
