package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadWithConfigDirPath(t *testing.T) {
	dir := t.TempDir()

	yaml := `
listen: "0.0.0.0:9200"
bases: [2, 3, 5, 7, 11, 13, 17]
cache:
  enabled: true
  addr: "redis:6379"
  ttl_seconds: 60
store:
  enabled: true
  db_name: "verdicts"
  user: "app"
  passwd: "pass"
  addr: "mysql:3306"
`
	err := os.WriteFile(filepath.Join(dir, GetAppEnv()+".yaml"), []byte(yaml), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := ReadWithConfigDirPath(dir)
	assert.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9200", cfg.Listen)
	assert.Equal(t, []uint64{2, 3, 5, 7, 11, 13, 17}, cfg.Bases)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis:6379", cfg.Cache.Addr)
	assert.Equal(t, int64(60), int64(cfg.Cache.TTL().Seconds()))
	assert.True(t, cfg.Store.Enabled)
	assert.Equal(t, "verdicts", cfg.Store.DBName)
	assert.Equal(t, "mysql:3306", cfg.Store.Addr)
}

func TestReadWithConfigDirPath_Defaults(t *testing.T) {
	dir := t.TempDir()

	// 空の設定ファイルでも既定値が残る
	err := os.WriteFile(filepath.Join(dir, GetAppEnv()+".yaml"), []byte("listen: \"127.0.0.1:9999\"\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := ReadWithConfigDirPath(dir)
	assert.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Listen)
	assert.Equal(t, Default().Bases, cfg.Bases)
	assert.False(t, cfg.Cache.Enabled)
}

func TestReadWithConfigDirPath_Missing(t *testing.T) {
	_, err := ReadWithConfigDirPath(t.TempDir())
	assert.Error(t, err)
}

func TestGetAppEnv(t *testing.T) {
	t.Setenv(Key, "")
	assert.Equal(t, DefaultEnv, GetAppEnv())

	t.Setenv(Key, "prd001")
	assert.Equal(t, "prd001", GetAppEnv())
}
