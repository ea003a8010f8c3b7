package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Настройки пула подключений. Репозитории каталога и заказов работают
// короткими авто-коммитными запросами, поэтому пул умеренного размера.
const (
	connTimeout     = 5 * time.Second
	poolMaxOpen     = 25
	poolMaxIdle     = 25
	poolMaxLifetime = 30 * time.Minute
	poolMaxIdleTime = 5 * time.Minute
)

// Store — подключение к PostgreSQL, общее для всех репозиториев шлюза.
// Каждый вызов репозитория фиксируется отдельным запросом; транзакций,
// охватывающих несколько сущностей, шлюз не предоставляет — согласованность
// агрегатов обеспечивают менеджеры поверх него.
type Store struct {
	db *sql.DB
}

// Open открывает подключение, настраивает пул и проверяет доступность базы.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(poolMaxOpen)
	db.SetMaxIdleConns(poolMaxIdle)
	db.SetConnMaxLifetime(poolMaxLifetime)
	db.SetConnMaxIdleTime(poolMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, connTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Store{db: db}, nil
}

// Ping проверяет доступность базы; используется health-проверкой хранилища.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("postgres store is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, connTimeout)
	defer cancel()
	return s.db.PingContext(pingCtx)
}

// Close закрывает подключение к БД.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
