package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger пишет SQL-трейсы GORM в slog через DBLog.
type GormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger(env string) *GormLogger {
	level := gormlogger.Warn
	if env == "development" {
		level = gormlogger.Info
	}
	return &GormLogger{level: level, slowThreshold: 200 * time.Millisecond}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		FromContext(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		FromContext(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		FromContext(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, _ := fc()
	op := sql
	if i := strings.IndexByte(sql, ' '); i > 0 {
		op = strings.ToUpper(sql[:i])
	}

	switch {
	// Not-found и нарушения уникальности обрабатываются сервисами
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, gorm.ErrDuplicatedKey) && l.level >= gormlogger.Error:
		DBLog(ctx, op, sql, elapsed, err)
	case elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		FromContext(ctx).Warn("slow query", "query", sql, "duration_ms", elapsed.Milliseconds())
	case l.level >= gormlogger.Info:
		DBLog(ctx, op, sql, elapsed, nil)
	}
}
