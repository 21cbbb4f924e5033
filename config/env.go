package config

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const (
	// Key 実行環境を指定する環境変数名
	Key = "APP_ENV"
	// DefaultEnv 環境変数が未設定の場合の実行環境
	DefaultEnv = "local"

	cmdDir    = "cmd"
	configDir = "configs"
)

// GetAppEnv 実行環境名を環境変数から取得
func GetAppEnv() string {
	env := os.Getenv(Key)
	if env == "" {
		return DefaultEnv
	}
	return env
}

// Read 環境変数とYAMLファイルから新規のコンフィグを取得。読めない場合は起動を中断する。
func Read() Config {
	cfg, err := read(GetAppEnv(), getConfigDirPath(2))
	if err != nil {
		log.Fatalf("get config error: %s \n", err)
	}
	return cfg
}

// ReadWithConfigDirPath 指定の設定ディレクトリから新規のコンフィグを取得
func ReadWithConfigDirPath(cfgDirPath string) (Config, error) {
	return read(GetAppEnv(), cfgDirPath)
}

// read コンフィグの読み込みを実施。既定値の上に設定ファイルの値を重ねる。
func read(cfgName string, cfgDirPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.AutomaticEnv()

	v.SetConfigName(cfgName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cfgDirPath)

	if err := v.ReadInConfig(); err != nil {
		return cfg, errors.Errorf("read cfg error: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Errorf("parse cfg error: %w", err)
	}
	return cfg, nil
}

// getConfigDirPath configディレクトリの取得(Readでのみ使用)
func getConfigDirPath(skip int) string {
	// クロスプラットフォーム対策
	_, file, _, _ := runtime.Caller(skip)
	dirList := strings.Split(filepath.ToSlash(filepath.Dir(file)), "/")
	dirPath := "./"

	for i, dir := range dirList {
		if dir == cmdDir {
			dirPath = filepath.Join(configDir, filepath.Join(dirList[i+1:]...))
			break
		}
	}
	return dirPath
}
