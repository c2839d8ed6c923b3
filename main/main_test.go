package main

import (
	"bytes"
	"os"
	"testing"

	"diesel.com/sph2d/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteStopsProfileOnError(t *testing.T) {
	t.Chdir(t.TempDir())

	opts := &options{}
	err := execute(opts, []string{"run", "--profile", "cpu", "--config", "missing.ini"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.ini")

	info, err := os.Stat("cpu.pprof")
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	//The profile slot was released
	prof, err := app.StartProfile("cpu", t.TempDir())
	require.NoError(t, err)
	prof.Stop()
}

func TestExecuteRejectsProfileMode(t *testing.T) {
	err := execute(&options{}, []string{"example-config", "--profile", "trace"})
	assert.EqualError(t, err, "unknown profile mode 'trace', expected cpu or mem")
}

func TestExampleConfigCommand(t *testing.T) {
	var out bytes.Buffer
	root := rootCommand(&options{})
	root.SetOut(&out)
	root.SetArgs([]string{"example-config"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "[Fluid]")
	assert.Contains(t, out.String(), "[Window]")
}
