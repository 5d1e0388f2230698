package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://www.reddit.com", cfg.Client.BaseURL)
	assert.Equal(t, "subfeed/0.1", cfg.Client.UserAgent)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "hot", cfg.Feed.Sort)
	assert.Equal(t, 25, cfg.Feed.Limit)
	assert.Equal(t, 1, cfg.Feed.Pages)
	assert.Equal(t, 2*time.Second, cfg.Feed.Interval)
	assert.Zero(t, cfg.Comments.Depth)
	assert.Zero(t, cfg.Comments.Limit)
	assert.Empty(t, cfg.NATS.URL)
	assert.Equal(t, "subfeed", cfg.NATS.Subject)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Output.Colors)
	assert.False(t, cfg.Output.JSON)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeFile(t, dir, "custom.yaml", `
client:
  user_agent: "custom/1.0"
  timeout: 5s
feed:
  sort: top
  limit: 50
  pages: 3
  interval: 500ms
comments:
  depth: 2
nats:
  url: nats://127.0.0.1:4222
  subject: feeds
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "custom/1.0", cfg.Client.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "top", cfg.Feed.Sort)
	assert.Equal(t, 50, cfg.Feed.Limit)
	assert.Equal(t, 3, cfg.Feed.Pages)
	assert.Equal(t, 500*time.Millisecond, cfg.Feed.Interval)
	assert.Equal(t, 2, cfg.Comments.Depth)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
	assert.Equal(t, "feeds", cfg.NATS.Subject)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_SearchesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	writeFile(t, dir, ".subfeed.yaml", "feed:\n  limit: 10\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Feed.Limit)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeFile(t, dir, "c.yaml", "feed:\n  limit: 10\n  sort: rising\n")
	t.Setenv("SUBFEED_FEED_LIMIT", "75")
	t.Setenv("SUBFEED_CLIENT_USER_AGENT", "env-agent/1.0")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.Feed.Limit)
	assert.Equal(t, "rising", cfg.Feed.Sort)
	assert.Equal(t, "env-agent/1.0", cfg.Client.UserAgent)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	writeFile(t, dir, ".env", "SUBFEED_NATS_SUBJECT=from-dotenv\n")

	// godotenv writes into the process environment; clean up after it
	t.Cleanup(func() { os.Unsetenv("SUBFEED_NATS_SUBJECT") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.NATS.Subject)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	writeFile(t, dir, ".env", "SUBFEED_FEED_SORT=top\n")
	t.Setenv("SUBFEED_FEED_SORT", "new")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "new", cfg.Feed.Sort)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad sort", content: "feed:\n  sort: best\n", wantErr: "Sort must be one of"},
		{name: "limit too large", content: "feed:\n  limit: 500\n", wantErr: "Limit must be lte 100"},
		{name: "zero pages", content: "feed:\n  pages: 0\n", wantErr: "Pages must be gt 0"},
		{name: "bad base url", content: "client:\n  base_url: not-a-url\n", wantErr: "BaseURL must be a valid URL"},
		{name: "bad log level", content: "logging:\n  level: loud\n", wantErr: "Level must be one of"},
		{name: "negative depth", content: "comments:\n  depth: -1\n", wantErr: "Depth must be gte 0"},
		{name: "malformed yaml", content: "feed: [\n", wantErr: "reading config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			path := writeFile(t, dir, "c.yaml", tt.content)

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
