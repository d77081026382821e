package config

import (
	"fmt"
	"os"
	"time"

	"resume-analyzer-go/internal/constants"

	"gopkg.in/yaml.v3"
)

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 监听地址，例如 ":8080"
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	TimeFormat   string `yaml:"time_format"`
	ReportCaller bool   `yaml:"report_caller"`
}

// UploadConfig 上传文件临时目录配置
type UploadConfig struct {
	Dir string `yaml:"dir"`
}

// NERConfig 命名实体识别服务配置
// 核心只通过HTTP访问外部NER服务，地址为空时实体提取降级为空结果
type NERConfig struct {
	ServerURL      string `yaml:"server_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// AdzunaConfig Adzuna职位搜索API配置
type AdzunaConfig struct {
	AppID          string `yaml:"app_id"`
	AppKey         string `yaml:"app_key"`
	BaseURL        string `yaml:"base_url"`
	Country        string `yaml:"country"`          // 默认国家代码，例如 "gb"
	ResultsPerPage int    `yaml:"results_per_page"` // 默认每页结果数
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// EmbeddingConfig 文本向量化服务配置（OpenAI兼容接口）
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`
	BaseURL    string `yaml:"base_url"`
	Dimensions int    `yaml:"dimensions"`
}

// MatcherConfig 职位匹配配置
type MatcherConfig struct {
	TopN int `yaml:"top_n"` // 默认返回的最佳匹配数量
}

// Config 应用程序配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logger    LoggerConfig    `yaml:"logger"`
	Upload    UploadConfig    `yaml:"upload"`
	NER       NERConfig       `yaml:"ner"`
	Adzuna    AdzunaConfig    `yaml:"adzuna"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Matcher   MatcherConfig   `yaml:"matcher"`
}

// 配置文件的默认查找路径，按顺序尝试
var defaultConfigPaths = []string{
	"internal/config/config.yaml",
	"config.yaml",
}

// LoadConfig 从YAML文件加载配置
// path为空时按默认路径查找；加载后应用环境变量覆盖和默认值
func LoadConfig(path string) (*Config, error) {
	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
		}
	} else {
		for _, candidate := range defaultConfigPaths {
			data, err = os.ReadFile(candidate)
			if err == nil {
				break
			}
		}
		if err != nil {
			return nil, fmt.Errorf("未找到配置文件（尝试路径: %v）: %w", defaultConfigPaths, err)
		}
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg, nil
}

// applyEnvOverrides 密钥类配置允许用环境变量覆盖，避免写入文件
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ADZUNA_APP_ID"); v != "" {
		c.Adzuna.AppID = v
	}
	if v := os.Getenv("ADZUNA_APP_KEY"); v != "" {
		c.Adzuna.AppKey = v
	}
	if v := os.Getenv("EMBEDDER_API_KEY"); v != "" {
		c.Embedding.APIKey = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Upload.Dir == "" {
		c.Upload.Dir = constants.DefaultUploadDir
	}
	if c.Adzuna.BaseURL == "" {
		c.Adzuna.BaseURL = "https://api.adzuna.com/v1/api/jobs"
	}
	if c.Adzuna.Country == "" {
		c.Adzuna.Country = "gb"
	}
	if c.Adzuna.ResultsPerPage <= 0 {
		c.Adzuna.ResultsPerPage = 10
	}
	if c.Adzuna.TimeoutSeconds <= 0 {
		c.Adzuna.TimeoutSeconds = 10
	}
	if c.NER.TimeoutSeconds <= 0 {
		c.NER.TimeoutSeconds = 30
	}
	if c.Matcher.TopN <= 0 {
		c.Matcher.TopN = 10
	}
}

// NERTimeout NER服务的HTTP超时
func (c *Config) NERTimeout() time.Duration {
	return time.Duration(c.NER.TimeoutSeconds) * time.Second
}

// AdzunaTimeout 职位搜索API的HTTP超时
func (c *Config) AdzunaTimeout() time.Duration {
	return time.Duration(c.Adzuna.TimeoutSeconds) * time.Second
}
