package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf).With("component", "voucher")

	log.Info("voucher issued", map[string]interface{}{
		"plate":          "ABC-1234",
		"voucher_number": "MAT-ABC-1234-20250301-001",
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "voucher issued", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "voucher", entry["component"])
	assert.Equal(t, "ABC-1234", entry["plate"])
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("warn", &buf)

	log.Info("skipped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestOpenOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	w := openOutput(path)
	f, ok := w.(*os.File)
	require.True(t, ok)
	defer f.Close()

	_, err := f.WriteString("line\n")
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(raw))
}

func TestOpenOutput_Std(t *testing.T) {
	assert.Equal(t, os.Stdout, openOutput(""))
	assert.Equal(t, os.Stderr, openOutput("stderr"))
}

func TestNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNoop().Error("nothing", map[string]interface{}{"k": 1})
	})
}
