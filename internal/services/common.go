package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Clock - источник текущего времени. В тестах подменяется фиксированным.
type Clock func() time.Time

func defaultClock() time.Time { return time.Now() }

// startOfDay - полночь в часовом поясе t
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// contextOf достает request context, прокинутый хендлером через db.WithContext
func contextOf(db *gorm.DB) context.Context {
	if db != nil && db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}
