package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gbabineau/statelist/internal/infra/cache"
	"github.com/gbabineau/statelist/internal/taxonomy/ebird"
)

func TestLoadEffective_环境变量密钥与内置默认(t *testing.T) {
	t.Setenv(EnvAPIKey, "real-key")

	eff, err := LoadEffective(t.TempDir())
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.APIKey != "real-key" {
		t.Fatalf("期望 real-key，实际 %q", eff.APIKey)
	}
	if eff.CacheDir != cache.DefaultDir || eff.EBirdBaseURL != ebird.DefaultBaseURL {
		t.Fatalf("默认值错误：%+v", eff)
	}
}

func TestLoadEffective_缺少密钥(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := LoadEffective(t.TempDir())
	if Code(err) != ErrCodeMissingKey {
		t.Fatalf("期望 %s，实际 %v", ErrCodeMissingKey, err)
	}
}

func TestLoadEffective_占位密钥(t *testing.T) {
	t.Setenv(EnvAPIKey, "0")

	_, err := LoadEffective(t.TempDir())
	if Code(err) != ErrCodeInvalidKey {
		t.Fatalf("期望 %s，实际 %v", ErrCodeInvalidKey, err)
	}
}

func TestLoadEffective_配置文件覆盖(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	dir := t.TempDir()
	cfg := `{"api_key":"file-key","cache_dir":"/tmp/tax","ebird_base_url":"https://mirror.example/v2"}`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(cfg), 0o644); err != nil {
		t.Fatalf("写入配置失败：%v", err)
	}

	eff, err := LoadEffective(dir)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.APIKey != "file-key" || eff.CacheDir != "/tmp/tax" || eff.EBirdBaseURL != "https://mirror.example/v2" {
		t.Fatalf("配置未生效：%+v", eff)
	}
}

func TestLoadEffective_环境变量优先于配置文件(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"api_key":"file-key"}`), 0o644); err != nil {
		t.Fatalf("写入配置失败：%v", err)
	}

	eff, err := LoadEffective(dir)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.APIKey != "env-key" {
		t.Fatalf("期望环境变量优先，实际 %q", eff.APIKey)
	}
}

func TestLoadEffective_配置文件无效(t *testing.T) {
	t.Setenv(EnvAPIKey, "real-key")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("写入配置失败：%v", err)
	}
	if _, err := LoadEffective(dir); Code(err) != ErrCodeInvalid {
		t.Fatalf("期望 %s，实际 %v", ErrCodeInvalid, err)
	}

	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"ebird_base_url":"ftp://x"}`), 0o644); err != nil {
		t.Fatalf("写入配置失败：%v", err)
	}
	if _, err := LoadEffective(dir); Code(err) != ErrCodeInvalid {
		t.Fatalf("期望 %s，实际 %v", ErrCodeInvalid, err)
	}
}
