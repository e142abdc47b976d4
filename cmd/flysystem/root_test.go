package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SilverFire/flysystem/pkg/flysystem/core"
)

// run executes a fresh root command against root and returns its stdout.
func run(t *testing.T, root, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--root", root}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmdSetup(t *testing.T) {
	require.NotNil(t, rootCmd)
	assert.Equal(t, "flysystem", rootCmd.Use)

	var names []string
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"version", "write", "read", "ls", "rm", "rmdir", "mkdir", "cp", "mv", "stat", "chmod", "has"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"root", "lock", "links", "log-level", "log-format", "permissions"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "", "version")
	require.NoError(t, err)
	assert.Equal(t, "flysystem version dev (commit: none, built: unknown)\n", out)
}

func TestFileCommands(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, root, "", "write", "docs/a.txt", "hello")
	require.NoError(t, err)
	assert.Equal(t, "wrote docs/a.txt (5 bytes)\n", out)

	_, err = run(t, root, "streamed body", "write", "docs/b.txt", "--visibility", "private")
	require.NoError(t, err)

	out, err = run(t, root, "", "read", "docs/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "streamed body", out)

	out, err = run(t, root, "", "stat", "docs/b.txt", "--field", "visibility")
	require.NoError(t, err)
	assert.Equal(t, "private\n", out)

	_, err = run(t, root, "", "chmod", "docs/b.txt", "public")
	require.NoError(t, err)
	out, err = run(t, root, "", "stat", "docs/b.txt", "--field", "visibility")
	require.NoError(t, err)
	assert.Equal(t, "public\n", out)

	out, err = run(t, root, "", "stat", "docs/a.txt", "--field", "size")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	out, err = run(t, root, "", "stat", "docs/a.txt", "--field", "mimetype")
	require.NoError(t, err)
	assert.Equal(t, "text/plain\n", out)

	out, err = run(t, root, "", "stat", "docs/a.txt")
	require.NoError(t, err)
	var meta core.Metadata
	require.NoError(t, json.Unmarshal([]byte(out), &meta))
	assert.Equal(t, "docs/a.txt", meta.Path)
	assert.Equal(t, core.TypeFile, meta.Type)

	_, err = run(t, root, "", "cp", "docs/a.txt", "copy/a.txt")
	require.NoError(t, err)
	_, err = run(t, root, "", "mv", "copy/a.txt", "moved/a.txt")
	require.NoError(t, err)

	out, err = run(t, root, "", "has", "moved/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
	out, err = run(t, root, "", "has", "copy/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	_, err = run(t, root, "", "rm", "moved/a.txt")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "moved", "a.txt"))
	assert.True(t, os.IsNotExist(err))

	_, err = run(t, root, "", "stat", "docs", "--field", "color")
	assert.Error(t, err)
}

func TestDirectoryCommands(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{"a/x.txt", "a/y.md", "b/z.txt"} {
		_, err := run(t, root, "", "write", p, "content")
		require.NoError(t, err)
	}
	_, err := run(t, root, "", "mkdir", "empty", "--visibility", "private")
	require.NoError(t, err)

	out, err := run(t, root, "", "ls")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)

	out, err = run(t, root, "", "ls", "--recursive", "--match", "**/*.txt", "--json")
	require.NoError(t, err)
	var list []core.Metadata
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "a/x.txt", list[0].Path)
	assert.Equal(t, "b/z.txt", list[1].Path)

	_, err = run(t, root, "", "ls", "--match", "[")
	assert.Error(t, err)

	_, err = run(t, root, "", "rmdir", "a")
	require.NoError(t, err)
	out, err = run(t, root, "", "has", "a")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestConfigurationErrors(t *testing.T) {
	root := t.TempDir()

	_, err := run(t, root, "", "--lock", "shared", "has", "x")
	assert.Error(t, err)

	_, err = run(t, root, "", "--permissions", filepath.Join(root, "missing.toml"), "has", "x")
	assert.Error(t, err)

	file := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = run(t, file, "", "has", "x")
	require.Error(t, err)
	assert.True(t, core.IsConfiguration(err))
}
