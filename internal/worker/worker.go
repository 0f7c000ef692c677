package worker

import (
	"context"
)

// Worker — фоновый процесс под управлением Manager.
type Worker interface {
	// Start блокирует до остановки воркера или отмены ctx
	Start(ctx context.Context) error

	// Stop сигналит воркеру завершиться
	Stop() error

	// Name возвращает имя воркера для логов
	Name() string
}
