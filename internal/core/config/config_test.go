package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskloop/internal/core/convo"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.Conversation.SkipSchedule)
	assert.Equal(t, 0, cfg.Conversation.MaxRetries)
	assert.Equal(t, "BOT_TOKEN", cfg.Telegram.TokenEnv)
	assert.Equal(t, 30, cfg.Telegram.PollTimeout)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.Conversation.SkipSchedule)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
conversation:
  skip_schedule: plus-hour
  max_retries: 3
telegram:
  token_env: TASKLOOP_TOKEN
  poll_timeout: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("TASKLOOP_TOKEN", "secret-token")

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, "plus-hour", cfg.Conversation.SkipSchedule)
	assert.Equal(t, 3, cfg.Conversation.MaxRetries)
	assert.Equal(t, "TASKLOOP_TOKEN", cfg.Telegram.TokenEnv)
	assert.Equal(t, 10, cfg.Telegram.PollTimeout)
	assert.Equal(t, "secret-token", cfg.Telegram.Token)
}

func TestLoad_InvalidSkipSchedule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("conversation:\n  skip_schedule: both\n"), 0o644))

	_, err := Load(path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skip_schedule")
}

func TestLoad_NegativeMaxRetries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("conversation:\n  max_retries: -1\n"), 0o644))

	_, err := Load(path, dir)
	assert.Error(t, err)
}

func TestValidate_EmptyDataDir(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate())
}

func TestConversationOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Conversation.SkipSchedule = "plus-hour"
	cfg.Conversation.MaxRetries = 5

	opts := cfg.ConversationOptions()
	assert.Equal(t, convo.SkipPlusHour, opts.SkipSchedule)
	assert.Equal(t, 5, opts.MaxRetries)
}

func TestTasksFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/data"
	assert.Equal(t, filepath.Join("/data", "tasks.json"), cfg.TasksFile())
}
