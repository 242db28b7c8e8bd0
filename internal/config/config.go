package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config 聚合整个组件的配置项。
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Log     LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	backend, err := loadBackendConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Backend: backend, Log: logCfg}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3000"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":3000" 或 "127.0.0.1:3000"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// BackendConfig 描述聊天后端的连接配置。
type BackendConfig struct {
	URL     string
	Path    string
	Timeout time.Duration
	Trace   bool
}

func loadBackendConfig() (BackendConfig, error) {
	endpoint := getEnvOrDefault("WIDGET_BACKEND_URL", "http://localhost:8080/api")
	if u, err := url.Parse(endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		return BackendConfig{}, fmt.Errorf("invalid WIDGET_BACKEND_URL value: %q", endpoint)
	}

	timeout, err := parseOptionalIntEnv("WIDGET_TIMEOUT")
	if err != nil {
		return BackendConfig{}, err
	}
	timeoutSeconds := 30 // 默认30秒
	if timeout != nil {
		if *timeout < 1 {
			return BackendConfig{}, fmt.Errorf("invalid WIDGET_TIMEOUT value %d: must be positive", *timeout)
		}
		timeoutSeconds = *timeout
	}

	trace, err := parseBoolEnv("WIDGET_TRACE", false)
	if err != nil {
		return BackendConfig{}, err
	}

	return BackendConfig{
		URL:     strings.TrimRight(endpoint, "/"),
		Path:    strings.Trim(getEnvOrDefault("WIDGET_CHAT_PATH", "chat"), "/"),
		Timeout: time.Duration(timeoutSeconds) * time.Second,
		Trace:   trace,
	}, nil
}

// LogConfig 描述日志输出配置。
type LogConfig struct {
	Level zerolog.Level
}

func loadLogConfig() (LogConfig, error) {
	raw := getEnvOrDefault("LOG_LEVEL", "info")
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return LogConfig{}, fmt.Errorf("invalid LOG_LEVEL value %q: %w", raw, err)
	}
	return LogConfig{Level: level}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
