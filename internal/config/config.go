// Package config 负责运行配置的发现、读取与合并。
// 配置来源有两个：环境变量（API 密钥）与可选的 statelist.json。
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gbabineau/statelist/internal/infra/cache"
	"github.com/gbabineau/statelist/internal/taxonomy/ebird"
)

// EnvAPIKey 是 eBird API 密钥的环境变量名。
const EnvAPIKey = "EBIRD_API_KEY"

// ConfigFileName 是可选配置文件名（在 cwd 下查找）。
const ConfigFileName = "statelist.json"

const (
	// ErrCodeMissingKey 表示环境变量与配置文件都未提供 API 密钥。
	ErrCodeMissingKey = "config_missing_key"
	// ErrCodeInvalidKey 表示密钥是占位值（eBird 注册页的示例 "0"）。
	ErrCodeInvalidKey = "config_invalid_key"
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
)

// FileConfig 对应 statelist.json 的解析结构。所有字段可选。
type FileConfig struct {
	APIKey       string `json:"api_key"`
	CacheDir     string `json:"cache_dir"`
	EBirdBaseURL string `json:"ebird_base_url"`
}

// EffectiveConfig 是合并后的最终配置（实现层直接消费，不再做二次默认判断）。
type EffectiveConfig struct {
	APIKey       string
	CacheDir     string
	EBirdBaseURL string
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeMissingKey:
		return fmt.Sprintf("%s：未设置环境变量 %s（eBird API 密钥申请见 https://ebird.org/api/keygen）", e.Code, EnvAPIKey)
	case ErrCodeInvalidKey:
		return fmt.Sprintf("%s：%s 是占位值，请替换为真实的 eBird API 密钥", e.Code, EnvAPIKey)
	case ErrCodeInvalid:
		if e.Err != nil {
			return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：配置文件 %q 无效", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 发现并合并配置。
//
// 发现规则（固定）：<cwd>/statelist.json 可选，不存在不算错误。
//
// 覆盖优先级（固定）：
// - api_key：环境变量 > config；两处都为空报 config_missing_key
// - cache_dir / ebird_base_url：仅由 config 控制，缺省用内置默认
func LoadEffective(cwd string) (EffectiveConfig, error) {
	cfgPath := filepath.Join(cwd, ConfigFileName)
	fc, err := readFileConfig(cfgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	key := strings.TrimSpace(os.Getenv(EnvAPIKey))
	if key == "" {
		key = strings.TrimSpace(fc.APIKey)
	}
	switch key {
	case "":
		return EffectiveConfig{}, &Error{Code: ErrCodeMissingKey}
	case "0":
		// eBird 密钥申请页的示例值：提示用户没有完成注册。
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalidKey}
	}

	cacheDir := strings.TrimSpace(fc.CacheDir)
	if cacheDir == "" {
		cacheDir = cache.DefaultDir
	}

	baseURL := strings.TrimSpace(fc.EBirdBaseURL)
	if baseURL == "" {
		baseURL = ebird.DefaultBaseURL
	} else {
		u, err := url.Parse(baseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("ebird_base_url 无效：%q", baseURL)}
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("ebird_base_url 必须是 http/https：%q", baseURL)}
		}
	}

	return EffectiveConfig{
		APIKey:       key,
		CacheDir:     cacheDir,
		EBirdBaseURL: baseURL,
	}, nil
}

// readFileConfig 读取并解析 JSON 配置文件。文件不存在返回零值。
func readFileConfig(path string) (FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, err
	}
	var fc FileConfig
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, err
	}
	return fc, nil
}
