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

	"runechess/internal/game"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestPlayPrintsResults(t *testing.T) {
	script := writeFile(t, "opening.rc", "move unit_12 tile_32\nmove unit_64 tile_44 # reply\n")

	out, err := execute(t, "play", script)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"tileId":"tile_32"`)

	var st game.Status
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &st))
	assert.Equal(t, game.Blue, st.Turn)
	assert.False(t, st.Over())
}

func TestPlayFailsOnRejectedAction(t *testing.T) {
	script := writeFile(t, "bad.rc", "move unit_12 tile_32\nmove unit_12 tile_42\n")

	_, err := execute(t, "play", script)
	require.ErrorIs(t, err, game.ErrWrongTurn)
	assert.Contains(t, err.Error(), "line 2")
}

func TestMoves(t *testing.T) {
	out, err := execute(t, "moves")
	require.NoError(t, err)
	assert.Contains(t, out, "move unit_12 tile_22\n")
	assert.Contains(t, out, "cast unit_04 unit_03\n")
	assert.NotContains(t, out, "unit_64")

	script := writeFile(t, "one.rc", "move unit_12 tile_32\n")
	out, err = execute(t, "moves", "--script", script)
	require.NoError(t, err)
	assert.Contains(t, out, "move unit_64 tile_54\n")
}

func TestSelfplay(t *testing.T) {
	dot := filepath.Join(t.TempDir(), "tree.dot")
	out, err := execute(t, "selfplay", "--games", "1", "--depth", "1", "--max-plies", "2", "--dot", dot)
	require.NoError(t, err)
	assert.Contains(t, out, "games 1  blue 0  red 0  draws 1  plies 2")

	tree, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.Contains(t, string(tree), "digraph")
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runechess.yaml")
	_, err := execute(t, "config", "init", "--output", path)
	require.NoError(t, err)

	_, err = execute(t, "config", "init", "--output", path)
	require.Error(t, err)

	out, err := execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "half_move_limit: 50")
}

func TestInvalidConfigIsRejected(t *testing.T) {
	path := writeFile(t, "runechess.yaml", "bot:\n  depth: -1\n")
	_, err := execute(t, "--config", path, "moves")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot.depth")
}
