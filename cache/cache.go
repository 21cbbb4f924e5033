package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"prime-pkg/backoff"
)

// Config 判定結果キャッシュの接続設定
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration // 0の場合は無期限
}

// VerdictCache 素数判定の結果をRedisにキャッシュする
// 判定自体は決定的なので、同じ候補への再計算を省くためだけに使う。
type VerdictCache struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

// NewVerdictCache コンストラクタ。接続確認が通るまでジッター付き指数バックオフでリトライする。
func NewVerdictCache(ctx context.Context, cfg Config) (*VerdictCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  10 * time.Second, // Redisサーバーへの新規接続時のタイムアウト
		ReadTimeout:  30 * time.Second, // Redisサーバーからレスポンスを読み取る時のタイムアウト
		WriteTimeout: 30 * time.Second, // Redisサーバーにコマンドを書き込む（送信する）時のタイムアウト
		PoolSize:     10,               // コネクションプールの最大コネクション数
		PoolTimeout:  30 * time.Second, // コネクションプールがいっぱいの場合、新しいコネクションが利用可能になるまで最大どれだけ待機する
	})

	// 接続テスト
	retryer := backoff.NewRetryer(ctx, 500*time.Millisecond, 0.5, 2, 5)
	retryer.SetOperation(func() (any, error) {
		return nil, client.Ping(ctx).Err()
	})
	retryer.SetNotify(func(err error, duration time.Duration) {
		logrus.WithError(err).Warnf("redis ping failed, retrying in %s", duration)
	})
	if _, err := retryer.Exec(); err != nil {
		return nil, errors.Errorf("failed to connect to redis: %w", err)
	}

	return &VerdictCache{client: client, ctx: ctx, ttl: cfg.TTL}, nil
}

// Close クライアントのクローズ処理
func (c *VerdictCache) Close() error {
	logrus.Info("close verdict cache")
	return c.client.Close()
}

// verdictKey 候補ごとのキャッシュキー
func verdictKey(n int64) string {
	return fmt.Sprintf("prime:verdict:%d", n)
}

// Get キャッシュされた判定結果を取得。未キャッシュの場合は ok=false。
func (c *VerdictCache) Get(n int64) (verdict bool, ok bool, err error) {
	result, err := c.client.Get(c.ctx, verdictKey(n)).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, errors.Errorf("failed to get verdict: %w", err)
	}

	return result == "1", true, nil
}

// Set 判定結果をキャッシュに保存
func (c *VerdictCache) Set(n int64, verdict bool) error {
	value := "0"
	if verdict {
		value = "1"
	}

	if err := c.client.Set(c.ctx, verdictKey(n), value, c.ttl).Err(); err != nil {
		return errors.Errorf("failed to set verdict: %w", err)
	}
	return nil
}
