package backoff

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"
)

// Retryer ジッター付き指数バックオフで処理をリトライするラッパー
type Retryer struct {
	ctx       context.Context
	operation backoff.Operation[any]
	options   []backoff.RetryOption
}

// NewRetryer コンストラクタ
func NewRetryer(ctx context.Context, initialInterval time.Duration, randomizationFactor float64, multiplier float64, maxTries uint) *Retryer {
	exponentialBackOff := backoff.NewExponentialBackOff()

	// リトライの初期間隔
	exponentialBackOff.InitialInterval = initialInterval
	// リトライ間隔を決めるランダム値
	exponentialBackOff.RandomizationFactor = randomizationFactor
	// リトライ間隔を決める乗数
	exponentialBackOff.Multiplier = multiplier

	// v5の場合、設定された最大回数の-1回まで実行される。
	options := []backoff.RetryOption{backoff.WithBackOff(exponentialBackOff), backoff.WithMaxTries(maxTries)}

	return &Retryer{
		ctx:     ctx,
		options: options,
	}
}

// SetOperation リトライ対象の処理をセット
func (r *Retryer) SetOperation(o backoff.Operation[any]) {
	r.operation = o
}

// SetNotify リトライ毎の通知処理をセット
func (r *Retryer) SetNotify(n backoff.Notify) {
	r.options = append(r.options, backoff.WithNotify(n))
}

// Exec リトライ付きで処理を実行し、最終結果を返す
func (r *Retryer) Exec() (any, error) {
	result, err := backoff.Retry(r.ctx, r.operation, r.options...)
	if err != nil {
		logrus.WithError(err).Warn("retry exhausted")
		return nil, err
	}
	return result, nil
}
