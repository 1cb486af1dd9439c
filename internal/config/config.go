package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server" validate:"required"`
	Database    DatabaseConfig    `yaml:"database" validate:"required"`
	GPTEngineer GPTEngineerConfig `yaml:"gpt_engineer"`
}

type ServerConfig struct {
	Port int `yaml:"port" validate:"required,min=1,max=65535"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname" validate:"required"`
	Charset  string `yaml:"charset"`
}

type GPTEngineerConfig struct {
	// 默认目标系统版本（基准 URL）；请求里不传 system_version 时使用
	DefaultSystemVersion string `yaml:"default_system_version" validate:"omitempty,url"`
	// 单次 HTTP 调用超时（秒），0 取默认 30
	RequestTimeoutSec int `yaml:"request_timeout_sec" validate:"min=0,max=600"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}

	return &config, nil
}
