package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/lotto/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTable writes a paired, tab-delimited table where numbers 1-5 are
// above the TOP threshold and 6-20 sit inside the BOTTOM band.
func writeTable(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("번호")
	for s := 1; s <= core.ComboSize; s++ {
		fmt.Fprintf(&b, "\t%d칸\t확률", s)
	}
	b.WriteString("\n")
	for n := 1; n <= core.DefaultPoolSize; n++ {
		p := 0.1
		switch {
		case n <= 5:
			p = 3.0
		case n <= 20:
			p = 1.0
		}
		fmt.Fprintf(&b, "%d", n)
		for s := 1; s <= core.ComboSize; s++ {
			fmt.Fprintf(&b, "\t%d\t%.2f%%", n, p)
		}
		b.WriteString("\n")
	}

	path := filepath.Join(t.TempDir(), "lotto_data.txt")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SELECTION_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestGenerate_Text(t *testing.T) {
	path := writeTable(t)

	out, err := run(t, "generate", "-f", path, "-n", "6", "--seed", "42",
		"--slots", "top,bottom,random,random,random,random")
	require.NoError(t, err)

	assert.Contains(t, out, "조합 1: ")
	assert.Contains(t, out, "조합 6: ")
	assert.Contains(t, out, "  랜덤값: ")
	assert.Equal(t, 1, strings.Count(out, "---\n"))

	again, err := run(t, "generate", "-f", path, "-n", "6", "--seed", "42",
		"--slots", "top,bottom,random,random,random,random")
	require.NoError(t, err)
	assert.Equal(t, out, again, "same seed must give the same batch")
}

func TestGenerate_JSONPreset(t *testing.T) {
	path := writeTable(t)

	out, err := run(t, "generate", "-f", path, "-n", "3", "--preset", "hot", "--json")
	require.NoError(t, err)

	var res core.GenerateResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"top", "top", "top", "random", "random", "random"}, res.Slots)
	assert.Len(t, res.Records, 3)
}

func TestGenerate_RankMode(t *testing.T) {
	path := writeTable(t)

	out, err := run(t, "generate", "-f", path, "-n", "1", "--mode", "rank", "--json",
		"--slots", "bottom,random,random,random,random,random")
	require.NoError(t, err)

	var res core.GenerateResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Records, 1)
	assert.Len(t, res.Records[0].Numbers, core.ComboSize)
}

func TestGenerate_Errors(t *testing.T) {
	path := writeTable(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"count too high", []string{"-n", "21"}, "VAL001"},
		{"short slots", []string{"--slots", "top,top"}, "VAL002"},
		{"unknown preset", []string{"--preset", "lucky"}, "VAL003"},
		{"unknown mode", []string{"--mode", "magic"}, "mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"generate", "-f", path}, tt.args...)
			_, err := run(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGenerate_MissingFile(t *testing.T) {
	_, err := run(t, "generate", "-f", filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source not found")
}

func TestInspect(t *testing.T) {
	path := writeTable(t)

	out, err := run(t, "inspect", "-f", path)
	require.NoError(t, err)

	assert.Contains(t, out, "layout:    paired (tab-delimited)")
	assert.Contains(t, out, "rows:      45 (45 distinct numbers)")
	assert.Contains(t, out, "SLOT")
	assert.Contains(t, out, "1칸확률")
}

func TestPush_RequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")

	_, err := run(t, "push", "-f", writeTable(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
