package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/errors"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// Config 判定ログ用DBの接続設定
type Config struct {
	DBName string
	User   string
	Passwd string
	Addr   string
}

// ErrNotFound 判定記録が存在しない場合のエラー
var ErrNotFound = errors.New("verdict not found")

// VerdictRecord 1回の素数判定の記録
type VerdictRecord struct {
	Id        string    `db:"id"`
	Candidate int64     `db:"candidate"`
	IsPrime   bool      `db:"is_prime"`
	TestedAt  time.Time `db:"tested_at"`
}

// VerdictStore 素数判定の結果をMySQLに記録する
type VerdictStore struct {
	db *sqlx.DB
}

// NewVerdictStore コンストラクタ
func NewVerdictStore(ctx context.Context, cfg Config) (*VerdictStore, error) {
	c := mysql.Config{
		DBName:               cfg.DBName,
		User:                 cfg.User,
		Passwd:               cfg.Passwd,
		Addr:                 cfg.Addr,
		Net:                  "tcp",
		ParseTime:            true,
		Collation:            "utf8mb4_unicode_ci",
		AllowNativePasswords: true,
	}

	db, err := sqlx.Open("mysql", c.FormatDSN())
	if err != nil {
		return nil, errors.Errorf("failed to open mysql: %w", err)
	}

	// プール設定は任意（推奨）
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(10 * time.Minute)

	// 接続確認。ジッター付き指数バックオフでリトライする。
	err = backoff.RetryNotify(
		func() error {
			return db.PingContext(ctx)
		},
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx),
		func(err error, duration time.Duration) {
			logrus.WithError(err).Warnf("mysql ping failed, retrying in %s", duration)
		},
	)
	if err != nil {
		_ = db.Close()
		return nil, errors.Errorf("failed to connect to mysql: %w", err)
	}

	return &VerdictStore{db: db}, nil
}

// NewVerdictStoreWithDB 既存のDBハンドルを使うコンストラクタ(テスト用)
func NewVerdictStoreWithDB(db *sqlx.DB) *VerdictStore {
	return &VerdictStore{db: db}
}

// Close DBハンドルのクローズ処理
func (s *VerdictStore) Close() error {
	return s.db.Close()
}

// Record 判定結果を記録し、採番したIDを返す
func (s *VerdictStore) Record(ctx context.Context, candidate int64, isPrime bool) (string, error) {
	id := uuid.New().String()

	const query = `INSERT INTO prime_verdicts (id, candidate, is_prime, tested_at) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, id, candidate, isPrime, time.Now().UTC()); err != nil {
		return "", errors.Errorf("failed to record verdict: %w", err)
	}

	return id, nil
}

// Find 候補の最新の判定記録を取得
func (s *VerdictStore) Find(ctx context.Context, candidate int64) (*VerdictRecord, error) {
	const query = `SELECT id, candidate, is_prime, tested_at FROM prime_verdicts WHERE candidate = ? ORDER BY tested_at DESC LIMIT 1`

	var record VerdictRecord
	err := s.db.GetContext(ctx, &record, query, candidate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Errorf("failed to find verdict: %w", err)
	}

	return &record, nil
}

// Recent 直近の判定記録を新しい順に取得
func (s *VerdictStore) Recent(ctx context.Context, limit int) ([]VerdictRecord, error) {
	const query = `SELECT id, candidate, is_prime, tested_at FROM prime_verdicts ORDER BY tested_at DESC LIMIT ?`

	var records []VerdictRecord
	if err := s.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, errors.Errorf("failed to list verdicts: %w", err)
	}

	return records, nil
}
