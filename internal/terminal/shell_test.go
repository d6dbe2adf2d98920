package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectShellHonorsEnv(t *testing.T) {
	t.Setenv("SHELL", "/usr/local/bin/fish")
	assert.Equal(t, "/usr/local/bin/fish", detectShell())
}

func TestDetectShellFallback(t *testing.T) {
	t.Setenv("SHELL", "")
	shell := detectShell()
	assert.NotEmpty(t, shell)
}

func TestMergeEnv(t *testing.T) {
	base := []string{"PATH=/bin", "HOME=/root"}
	out := mergeEnv(base, []string{"PATH=/usr/bin", "EXTRA=1"})
	assert.Equal(t, []string{"PATH=/usr/bin", "HOME=/root", "EXTRA=1"}, out)

	// Base is not mutated.
	assert.Equal(t, "PATH=/bin", base[0])
}

func TestMergeEnvSkipsMalformed(t *testing.T) {
	out := mergeEnv([]string{"A=1"}, []string{"no-equals", "=novalue", "B=2"})
	assert.Equal(t, []string{"A=1", "B=2"}, out)
}

func TestHasEnv(t *testing.T) {
	env := []string{"TERM=xterm-256color", "Path=/bin"}
	assert.True(t, hasEnv(env, "TERM"))
	assert.True(t, hasEnv(env, "term"))
	assert.True(t, hasEnv(env, "PATH"))
	assert.False(t, hasEnv(env, "COLORTERM"))
	assert.False(t, hasEnv(env, ""))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "FOO", envKey("foo=bar"))
	assert.Equal(t, "", envKey("=bar"))
	assert.Equal(t, "", envKey("novalue"))
}
