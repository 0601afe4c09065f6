package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"pcalab/pkg/config"
	"pcalab/pkg/core"
	"pcalab/pkg/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCmd_DefaultDataset(t *testing.T) {
	out, err := execute(t, "run", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Explained variance")
	assert.Contains(t, out, "Final Grade Encoded")
	assert.Contains(t, out, "A+")
}

func TestRunCmd_YAMLWithPlots(t *testing.T) {
	dir := t.TempDir()
	plot := filepath.Join(dir, "pca.png")
	bars := filepath.Join(dir, "variance.png")
	out, err := execute(t, "run", "--log-level", "error", "--format", "yaml", "-k", "2",
		"--plot", plot, "--variance-plot", bars)
	require.NoError(t, err)

	var doc report.Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Projection[0], 2)
	assert.Equal(t, []string{"1", "2", "3", "4"}, doc.Extra["Final Grade Encoded"])

	for _, p := range []string{plot, bars} {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}

func TestRunCmd_Tolerance(t *testing.T) {
	out, err := execute(t, "run", "--log-level", "error", "--max-sweeps", "1", "--tolerance", "0.9")
	require.NoError(t, err)
	assert.Contains(t, out, "Explained variance")
}

func TestRunCmd_CSVInputAndConfig(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "classroom.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"Student,Attendance (%),Study Hours/Week,Attention Span (%),Final Grade\n"+
			"A,40,2,45,C-\nB,55,4,55,B-\nC,60,6,70,B+\nD,85,8,80,A+\n"), 0o600))
	cfgPath := filepath.Join(dir, "pcalab.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"input: "+csvPath+"\nlabel_column: Student\nignore: [Final Grade]\nlog: {level: error}\n"), 0o600))

	out, err := execute(t, "run", "--config", cfgPath, "--features", "Study Hours/Week,Attendance (%)")
	require.NoError(t, err)
	assert.Contains(t, out, "Study Hours/Week")
	assert.NotContains(t, out, "Attention Span (%)")
}

func TestRunCmd_Errors(t *testing.T) {
	_, err := execute(t, "run", "--log-level", "error", "-k", "5")
	assert.ErrorIs(t, err, core.ErrInputShape)

	_, err = execute(t, "run", "--format", "xml")
	assert.Error(t, err)

	_, err = execute(t, "run", "--tolerance", "0")
	assert.Error(t, err)

	_, err = execute(t, "run", "--log-level", "error", "--max-sweeps", "1")
	assert.ErrorIs(t, err, core.ErrNumericInstability)

	_, err = execute(t, "run", "--log-level", "error", "--input", filepath.Join(t.TempDir(), "none.csv"))
	assert.Error(t, err)
}

func TestRun_ConstantColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,3\n2,3\n3,3\n"), 0o600))
	cfg := config.Default()
	cfg.Input = path

	var out bytes.Buffer
	err := run(cfg, &out, zerolog.Nop())
	assert.ErrorIs(t, err, core.ErrDegenerateInput)
	assert.Empty(t, out.String())
}
