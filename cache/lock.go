package cache

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// ComputeLock 同じ候補を複数のワーカーが同時に判定しないためのロック
// キャッシュを共有する外部のバッチワーカー向け。判定エンドポイント自体は
// 再計算が安価なのでロックを取らない。
type ComputeLock struct {
	cache  *VerdictCache
	key    string
	value  string
	expiry time.Duration
}

// NewComputeLock コンストラクタ。値にUUIDを使い、自分が取得したロックか識別できるようにする。
func NewComputeLock(c *VerdictCache, n int64) *ComputeLock {
	return &ComputeLock{
		cache:  c,
		key:    fmt.Sprintf("prime:lock:%d", n),
		value:  uuid.New().String(),
		expiry: 30 * time.Second,
	}
}

// Acquire ロックの取得
func (cl *ComputeLock) Acquire() (bool, error) {
	return cl.cache.client.SetNX(cl.cache.ctx, cl.key, cl.value, cl.expiry).Result()
}

// Release ロックの解放（自分が取得したロックのみ解放可能）1回のコマンド実行で「Get」と「Del」が実行されるので割り込みが発生しない。
func (cl *ComputeLock) Release() error {
	// Luaスクリプトを使用して、アトミックに確認と削除を行う
	script := `
        if redis.call("get", KEYS[1]) == ARGV[1] then
            return redis.call("del", KEYS[1])
        else
            return 0
        end
    `
	result, err := cl.cache.client.Eval(cl.cache.ctx, script, []string{cl.key}, cl.value).Result()
	if err != nil {
		return err
	}
	if result.(int64) == 0 {
		return errors.New("lock not owned")
	}
	return nil
}
