package config

import (
	"time"

	"prime-pkg/prime"
)

// Config 素数判定サービスの設定
type Config struct {
	Listen string   `mapstructure:"listen"`
	Bases  []uint64 `mapstructure:"bases"`
	Cache  Cache    `mapstructure:"cache"`
	Store  Store    `mapstructure:"store"`
}

// Cache 判定結果キャッシュ(Redis)の設定
type Cache struct {
	Enabled    bool   `mapstructure:"enabled"`
	Addr       string `mapstructure:"addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

// Store 判定ログ(MySQL)の設定
type Store struct {
	Enabled bool   `mapstructure:"enabled"`
	DBName  string `mapstructure:"db_name"`
	User    string `mapstructure:"user"`
	Passwd  string `mapstructure:"passwd"`
	Addr    string `mapstructure:"addr"`
}

// TTL キャッシュ生存期間をDurationで取得
func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Default 設定ファイルが値を持たない場合の既定値
func Default() Config {
	return Config{
		Listen: "127.0.0.1:9137",
		Bases:  prime.DefaultBases,
		Cache: Cache{
			Addr:       "localhost:16379",
			TTLSeconds: 3600,
		},
		Store: Store{
			DBName: "prime",
			User:   "root",
			Addr:   "db:3306",
		},
	}
}
