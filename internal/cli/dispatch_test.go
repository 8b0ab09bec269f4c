package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketsim/abidesgen/internal/errors"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_NoArgs(t *testing.T) {
	stdout, _, err := run(t)
	require.Error(t, err)
	assert.Equal(t, errors.EUsage, errors.GetCode(err))
	assert.Contains(t, stdout, "usage: abidesgen")
}

func TestRun_Help(t *testing.T) {
	for _, flag := range []string{"-h", "--help"} {
		stdout, _, err := run(t, flag)
		require.NoError(t, err)
		assert.Contains(t, stdout, "usage: abidesgen")
	}
}

func TestRun_Version(t *testing.T) {
	stdout, _, err := run(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "abidesgen 1.0.0\n", stdout)
}

func TestRun_UnknownCommand(t *testing.T) {
	_, _, err := run(t, "frobnicate")
	require.Error(t, err)
	assert.Equal(t, errors.EUsage, errors.GetCode(err))
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestRun_Templates(t *testing.T) {
	stdout, _, err := run(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, stdout, "rmsc03")
	assert.Contains(t, stdout, "behavioral")
}

func TestRun_InfoRequiresName(t *testing.T) {
	_, stderr, err := run(t, "info")
	require.Error(t, err)
	assert.Equal(t, errors.EUsage, errors.GetCode(err))
	assert.Contains(t, stderr, "usage: abidesgen info")
}

func TestRun_Info(t *testing.T) {
	stdout, _, err := run(t, "info", "rmsc04")
	require.NoError(t, err)
	assert.Contains(t, stdout, "=== template ===")
	assert.Contains(t, stdout, "name: rmsc04")
	assert.Contains(t, stdout, "total_agents: 1116")
}

func TestRun_GenerateHelp(t *testing.T) {
	stdout, _, err := run(t, "generate", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "usage: abidesgen generate")
}

func TestRun_GenerateRejectsPositionalArgs(t *testing.T) {
	_, _, err := run(t, "generate", "--template", "rmsc03", "extra")
	require.Error(t, err)
	assert.Equal(t, errors.EUsage, errors.GetCode(err))
	assert.Contains(t, err.Error(), "extra")
}

func TestRun_GenerateUnknownFlag(t *testing.T) {
	_, _, err := run(t, "generate", "--bogus")
	require.Error(t, err)
	assert.Equal(t, errors.EUsage, errors.GetCode(err))
}

func TestRun_GenerateValidateOnly(t *testing.T) {
	stdout, _, err := run(t, "generate", "--template", "rmsc03", "--validate-only")
	require.NoError(t, err)
	assert.Contains(t, stdout, "validation: ok\n")
	assert.Contains(t, stdout, "total_agents: 5127\n")
}

func TestRun_GenerateExplicitZeroOverride(t *testing.T) {
	stdout, _, err := run(t, "generate", "--template", "rmsc03", "--momentum", "0", "--validate-only")
	require.NoError(t, err)
	assert.Contains(t, stdout, "total_agents: 5102\n")
}

func TestRun_GenerateShortCountFlags(t *testing.T) {
	stdout, _, err := run(t, "generate", "-mm", "2", "-zi", "50", "--validate-only")
	require.NoError(t, err)
	assert.Contains(t, stdout, "template: custom\n")
	assert.Contains(t, stdout, "total_agents: 52\n")
}

func TestRun_GenerateInvalidScale(t *testing.T) {
	_, _, err := run(t, "generate", "--template", "rmsc03", "--scale", "0")
	require.Error(t, err)
	assert.Equal(t, errors.EInvalidScale, errors.GetCode(err))
}

func TestRun_GenerateWritesFile(t *testing.T) {
	dir := t.TempDir()
	stdout, _, err := run(t, "generate",
		"--template", "minimal",
		"--seed", "7",
		"-f", "smoke",
		"-o", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "smoke.py")
	assert.Contains(t, stdout, "config_path: "+path+"\n")
	assert.Contains(t, stdout, "seed: 7\n")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "#!/usr/bin/env python3"))
	assert.Contains(t, string(content), "seed = 7\n")
	assert.Contains(t, string(content), "symbol = 'TEST'")
}
