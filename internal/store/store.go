package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/lib/pq"
)

// Outcome 单次分析的结果类型
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// Run 一次分析请求的记录（只记元数据，不保存分析结果）
type Run struct {
	URL        string    `json:"url"`
	Outcome    Outcome   `json:"outcome"`
	Kind       string    `json:"kind,omitempty"` // 失败时的错误类型
	Status     int       `json:"status"`         // 返回给调用方的HTTP状态码
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// RunLog 分析记录接口
type RunLog interface {
	Record(ctx context.Context, run Run) error
	Recent(ctx context.Context, limit int) ([]Run, error)
}

// DefaultMemoryCapacity 内存记录默认保留条数
const DefaultMemoryCapacity = 200

// MemoryRunLog 内存实现，超过容量丢弃最旧的记录
type MemoryRunLog struct {
	runs     []Run
	capacity int
	mu       sync.RWMutex
}

// NewMemoryRunLog 创建内存记录
func NewMemoryRunLog(capacity int) *MemoryRunLog {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryRunLog{capacity: capacity}
}

// Record 追加记录
func (m *MemoryRunLog) Record(ctx context.Context, run Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	m.runs = append(m.runs, run)
	if len(m.runs) > m.capacity {
		m.runs = append([]Run(nil), m.runs[len(m.runs)-m.capacity:]...)
	}
	return nil
}

// Recent 按时间倒序返回最近的记录
func (m *MemoryRunLog) Recent(ctx context.Context, limit int) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.runs) {
		limit = len(m.runs)
	}
	out := make([]Run, 0, limit)
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}

// PostgresRunLog PostgreSQL实现
type PostgresRunLog struct {
	db *sql.DB
}

const createRunsTable = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id          BIGSERIAL PRIMARY KEY,
	url         TEXT        NOT NULL,
	outcome     TEXT        NOT NULL,
	kind        TEXT        NOT NULL DEFAULT '',
	status      INTEGER     NOT NULL,
	duration_ms BIGINT      NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// NewPostgresRunLog 连接数据库并确保表存在
func NewPostgresRunLog(databaseURL string) (*PostgresRunLog, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(createRunsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create analysis_runs table: %w", err)
	}

	return &PostgresRunLog{db: db}, nil
}

// Record 插入一条记录
func (p *PostgresRunLog) Record(ctx context.Context, run Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	query := `
	INSERT INTO analysis_runs (url, outcome, kind, status, duration_ms, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := p.db.ExecContext(ctx, query, run.URL, string(run.Outcome), run.Kind, run.Status, run.DurationMS, run.CreatedAt)
	return err
}

// Recent 按时间倒序返回最近的记录
func (p *PostgresRunLog) Recent(ctx context.Context, limit int) ([]Run, error) {
	query := `
	SELECT url, outcome, kind, status, duration_ms, created_at
	FROM analysis_runs
	ORDER BY created_at DESC, id DESC
	LIMIT $1
	`

	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var outcome string
		if err := rows.Scan(&run.URL, &outcome, &run.Kind, &run.Status, &run.DurationMS, &run.CreatedAt); err != nil {
			return nil, err
		}
		run.Outcome = Outcome(outcome)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close 关闭数据库连接
func (p *PostgresRunLog) Close() error {
	return p.db.Close()
}

// Open 有DATABASE_URL时用PostgreSQL，连接失败或未配置时退回内存实现
func Open(databaseURL string) (RunLog, error) {
	if databaseURL == "" {
		return NewMemoryRunLog(DefaultMemoryCapacity), nil
	}
	pg, err := NewPostgresRunLog(databaseURL)
	if err != nil {
		return NewMemoryRunLog(DefaultMemoryCapacity), err
	}
	return pg, nil
}
