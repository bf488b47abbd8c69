package notifications

import "time"

// Publisher публикует события в канал уведомлений
type Publisher interface {
	Publish(event interface{}) error
}

// TimeProvider источник текущего времени (для тестируемости)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
