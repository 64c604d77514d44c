package handler

import (
	"bytes"
	"context"
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/templatizer/pkg/errors"
	"github.com/arthur-debert/templatizer/pkg/filesystem"
	"github.com/arthur-debert/templatizer/pkg/types"
)

func TestHandle_WritesFileCreatingParents(t *testing.T) {
	fsys := filesystem.NewMemory()
	h := New(Options{FS: fsys})

	err := h.Handle(context.Background(), types.ActionEmitFile, "/work/src/pkg/main.go", []byte("package main\n"))
	require.NoError(t, err)

	data, err := fsys.ReadFile("/work/src/pkg/main.go")
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(data))

	info, err := fsys.Stat("/work/src/pkg/main.go")
	require.NoError(t, err)
	assert.Equal(t, FileMode, info.Mode().Perm())
}

func TestHandle_WriteFailures(t *testing.T) {
	readOnly := filesystem.NewAferoFS(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	h := New(Options{FS: readOnly})

	err := h.Handle(context.Background(), types.ActionEmitFile, "/out/file.txt", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirCreate))
	assert.Equal(t, "/out", errors.GetErrorDetails(err)["path"])
}

func TestHandle_DryRunTouchesNothing(t *testing.T) {
	fsys := filesystem.NewMemory()
	var stdout bytes.Buffer
	h := New(Options{FS: fsys, DryRun: true, Stdout: &stdout})

	require.NoError(t, h.Handle(context.Background(), types.ActionEmitFile, "/out/a.txt", []byte("a")))
	require.NoError(t, h.Handle(context.Background(), types.ActionShell, "echo should-not-run", nil))

	exists, err := filesystem.Exists(fsys, "/out/a.txt")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, stdout.String())
}

func TestHandle_Shell(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		command    string
		wantOut    string
		wantErr    bool
		wantStatus int
	}{
		{name: "success", command: "echo hello", wantOut: "hello\n"},
		{name: "runs in work dir", command: "pwd", wantOut: dir + "\n"},
		{name: "extra env", command: "echo $TEMPLATIZER_TEMPLATE", wantOut: "demo\n"},
		{name: "non-zero exit", command: "echo oops >&2; exit 3", wantErr: true, wantStatus: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			h := New(Options{
				WorkDir: dir,
				Env:     []string{"TEMPLATIZER_TEMPLATE=demo"},
				Stdout:  &stdout,
				Stderr:  &stderr,
			})

			err := h.Handle(context.Background(), types.ActionShell, tt.command, nil)
			if tt.wantErr {
				var shellErr *types.ShellError
				require.True(t, stderrors.As(err, &shellErr), "got %v", err)
				assert.Equal(t, tt.wantStatus, shellErr.ExitCode)
				assert.Equal(t, tt.command, shellErr.Command)
				assert.Equal(t, "oops\n", stderr.String())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, stdout.String())
		})
	}
}

func TestHandle_ShellWritesIntoWorkDir(t *testing.T) {
	dir := t.TempDir()
	h := New(Options{WorkDir: dir, Stdout: &bytes.Buffer{}})

	require.NoError(t, h.Handle(context.Background(), types.ActionShell, "mkdir -p src && touch src/ok", nil))

	exists, err := filesystem.Exists(filesystem.NewOS(), filepath.Join(dir, "src", "ok"))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestHandle_ShellTimeout(t *testing.T) {
	h := New(Options{Timeout: 50 * time.Millisecond, Stdout: &bytes.Buffer{}})

	start := time.Now()
	err := h.Handle(context.Background(), types.ActionShell, "sleep 5", nil)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)

	var shellErr *types.ShellError
	assert.True(t, stderrors.As(err, &shellErr))
}

func TestHandle_InvalidInput(t *testing.T) {
	h := New(Options{FS: filesystem.NewMemory()})

	err := h.Handle(context.Background(), types.ActionShell, "", nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = h.Handle(context.Background(), types.ActionKind(9), "x", nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.True(t, strings.Contains(err.Error(), "unknown(9)"))
}
