package emit

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Litote/kgenerator/pkg/diag"
)

func TestWriter_WriteFile(t *testing.T) {
	src, classes := t.TempDir(), t.TempDir()
	report := diag.Discard()
	w := New(src, classes, report)

	require.True(t, w.WriteFile(NamespaceDir("org.example"), "Person_.kt", "object Person_", SourceOutput, true))
	require.True(t, w.WriteFile("", "model.yaml", "classes: []", ClassOutput, true))

	data, err := os.ReadFile(filepath.Join(src, "org", "example", "Person_.kt"))
	require.NoError(t, err)
	assert.Equal(t, "object Person_", string(data))

	_, err = os.Stat(filepath.Join(classes, "model.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(src, "org", "example", "Person_.kt"),
		filepath.Join(classes, "model.yaml"),
	}, w.Written())
	assert.Zero(t, report.Errors())
}

func TestWriter_Failures(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	buf := new(bytes.Buffer)
	report := diag.New(slog.New(slog.NewTextHandler(buf, nil)), false)
	w := New(root, "", report)

	assert.False(t, w.WriteFile("blocked", "A.kt", "content of A", SourceOutput, true))
	assert.Equal(t, 1, report.Errors())
	assert.Contains(t, buf.String(), "content of A")

	assert.False(t, w.WriteFile("blocked", "B.kt", "content of B", SourceOutput, false))
	assert.Equal(t, 1, report.Errors())
	assert.Equal(t, 1, report.Warnings())
	assert.Empty(t, w.Written())
}

func TestWriter_Roots(t *testing.T) {
	w := New("out/src", "", nil)
	assert.Equal(t, "out/src", w.Root(ClassOutput))
	assert.Equal(t, "class", ClassOutput.String())
	assert.Equal(t, "a/b/c", NamespaceDir("a.b.c"))
}
