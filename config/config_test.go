package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, DefaultUpstreamBaseURL, cfg.Upstream.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Upstream.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Console.ConfirmTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9100
upstream:
  base_url: http://127.0.0.1:18080/api/v1/gpt/mng
  timeout: 3s
console:
  user_name: 测试用户
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("GPTMNG_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "http://127.0.0.1:18080/api/v1/gpt/mng", cfg.Upstream.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "测试用户", cfg.Console.UserName)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:    ServerConfig{Port: 8000},
			Upstream:  UpstreamConfig{BaseURL: DefaultUpstreamBaseURL},
			RateLimit: RateLimitConfig{Enabled: true, Requests: 10, Window: time.Minute},
			Console:   ConsoleConfig{ConfirmTTL: time.Minute},
		}
	}

	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }},
		{"相对地址", func(c *Config) { c.Upstream.BaseURL = "/api/v1" }},
		{"负超时", func(c *Config) { c.Upstream.Timeout = -time.Second }},
		{"限流参数为零", func(c *Config) { c.RateLimit.Requests = 0 }},
		{"确认有效期为零", func(c *Config) { c.Console.ConfirmTTL = 0 }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
