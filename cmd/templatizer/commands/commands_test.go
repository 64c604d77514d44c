package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	templates string
	work      string
	config    string
}

// setupEnv isolates configuration, state and template directories
func setupEnv(t *testing.T) env {
	t.Helper()
	root := t.TempDir()
	e := env{
		templates: filepath.Join(root, "templates"),
		work:      filepath.Join(root, "work"),
		config:    filepath.Join(root, "config"),
	}
	require.NoError(t, os.MkdirAll(e.templates, 0755))
	require.NoError(t, os.MkdirAll(e.work, 0755))

	t.Setenv("HOME", filepath.Join(root, "home"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("TEMPLATIZER_CONFIG_DIR", e.config)
	t.Setenv("TEMPLATIZER_DATA_DIR", filepath.Join(root, "data"))
	t.Setenv("TEMPLATIZER_TEMPLATES__PATHS", e.templates)
	t.Setenv("NO_COLOR", "1")
	return e
}

func (e env) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(e.templates, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

const demoDescriptor = `{
	"name": "demo",
	"description": "Demo shell project",
	"variables": {"project": {"%NAME%": "upper(v)"}},
	"constants": {},
	"actions": [["%NAME%-init.sh", "templates/init.sh.tpl"]]
}`

func TestRun_EndToEnd(t *testing.T) {
	e := setupEnv(t)
	e.write(t, "demo.templatizer", demoDescriptor)
	e.write(t, "templates/init.sh.tpl", "echo %NAME% %YEAR%\n")

	code, stdout, stderr := run("demo", "--project=foo", "-C", e.work)
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "Template demo")

	data, err := os.ReadFile(filepath.Join(e.work, "FOO-init.sh"))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("echo FOO %d\n", time.Now().Year()), string(data))

	// the second run keeps the file
	require.NoError(t, os.WriteFile(filepath.Join(e.work, "FOO-init.sh"), []byte("edited"), 0644))
	code, _, _ = run("run", "demo", "--project=bar", "-C", e.work)
	require.Equal(t, ExitOK, code)
	_, err = os.Stat(filepath.Join(e.work, "BAR-init.sh"))
	require.NoError(t, err)

	code, stdout, _ = run("demo", "--project=foo", "-C", e.work)
	require.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "1 skipped")
	data, _ = os.ReadFile(filepath.Join(e.work, "FOO-init.sh"))
	assert.Equal(t, "edited", string(data))
}

func TestRun_MissingArgumentDegrades(t *testing.T) {
	e := setupEnv(t)
	e.write(t, "demo.templatizer", demoDescriptor)
	e.write(t, "templates/init.sh.tpl", "name=%NAME%")

	code, _, stderr := run("demo", "-C", e.work)
	require.Equal(t, ExitOK, code, stderr)

	data, err := os.ReadFile(filepath.Join(e.work, "-init.sh"))
	require.NoError(t, err)
	assert.Equal(t, "name=", string(data))
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	e := setupEnv(t)
	e.write(t, "demo.templatizer", demoDescriptor)
	e.write(t, "templates/init.sh.tpl", "x")

	code, stdout, _ := run("--dry-run", "demo", "--project=foo", "-C", e.work)
	require.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "(dry run)")

	_, err := os.Stat(filepath.Join(e.work, "FOO-init.sh"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_ShellActions(t *testing.T) {
	e := setupEnv(t)
	e.write(t, "sh.templatizer", `{
		"name": "sh",
		"variables": {"folder": {"%DIR%": "v"}},
		"constants": {},
		"actions": [["mkdir %DIR% && echo $TEMPLATIZER_TEMPLATE > %DIR%/who"]]
	}`)

	code, _, stderr := run("sh", "--folder=out", "-C", e.work)
	require.Equal(t, ExitOK, code, stderr)

	data, err := os.ReadFile(filepath.Join(e.work, "out", "who"))
	require.NoError(t, err)
	assert.Equal(t, "sh\n", string(data))
}

func TestRun_ExitCodes(t *testing.T) {
	e := setupEnv(t)
	e.write(t, "demo.templatizer", demoDescriptor)
	e.write(t, "bad.templatizer", `{"name": "bad", "variables": {}, "constants": {"%X%": "1 +"}, "actions": []}`)
	e.write(t, "fail.templatizer", `{"name": "fail", "variables": {}, "constants": {}, "actions": [["exit 7"], ["echo never"]]}`)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown template", []string{"nope", "-C", e.work}, ExitTemplateNotFound},
		{"invalid template", []string{"bad", "-C", e.work}, ExitInvalidTemplate},
		{"strict missing argument", []string{"demo", "--strict", "-C", e.work}, ExitArgumentRequired},
		{"shell failure", []string{"fail", "-C", e.work}, ExitActionFailed},
		{"no template", []string{"-C", e.work}, ExitError},
		{"unknown flag", []string{"demo", "--project"}, ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(tt.args...)
			assert.Equal(t, tt.want, code, stderr)
			if tt.want != ExitOK {
				assert.Contains(t, stderr, "Error:")
			}
		})
	}
}

func TestRun_StrictMessageNamesArgument(t *testing.T) {
	e := setupEnv(t)
	e.write(t, "demo.templatizer", demoDescriptor)

	_, _, stderr := run("demo", "--strict", "-C", e.work)
	assert.Contains(t, stderr, "--project argument required")
}

func TestList(t *testing.T) {
	e := setupEnv(t)
	e.write(t, "demo.templatizer", demoDescriptor)
	e.write(t, "broken.templatizer", `{"name": "broken"`)

	code, stdout, stderr := run("list", "--format", "json")
	require.Equal(t, ExitOK, code, stderr)

	var decoded struct {
		Templates []struct {
			Name string `json:"name"`
		} `json:"templates"`
		Problems []struct {
			Path string `json:"path"`
		} `json:"problems"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	require.Len(t, decoded.Templates, 1)
	assert.Equal(t, "demo", decoded.Templates[0].Name)
	require.Len(t, decoded.Problems, 1)
	assert.Equal(t, filepath.Join(e.templates, "broken.templatizer"), decoded.Problems[0].Path)

	code, stdout, _ = run("list")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "Demo shell project")
}

func TestShow(t *testing.T) {
	e := setupEnv(t)
	e.write(t, "demo.templatizer", demoDescriptor)

	code, stdout, stderr := run("show", "demo", "--project=foo", "--format=text")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "# demo")
	assert.Contains(t, stdout, "| `%NAME%` | FOO |")
	assert.Contains(t, stdout, "write `FOO-init.sh`")

	code, _, _ = run("show", "nope")
	assert.Equal(t, ExitTemplateNotFound, code)
}

func TestConfigInit(t *testing.T) {
	e := setupEnv(t)

	code, stdout, stderr := run("config", "init")
	require.Equal(t, ExitOK, code, stderr)
	target := filepath.Join(e.config, "config.toml")
	assert.Contains(t, stdout, target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Regexp(t, `program = ['"]sh['"]`, string(data))

	code, _, stderr = run("config", "init")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "already exists")

	code, _, _ = run("config", "init", "--force")
	assert.Equal(t, ExitOK, code)

	code, stdout, _ = run("config", "show")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, e.templates)
}

func TestVersion(t *testing.T) {
	setupEnv(t)

	for _, args := range [][]string{{"version"}, {"--version"}} {
		code, stdout, _ := run(args...)
		assert.Equal(t, ExitOK, code)
		assert.Contains(t, stdout, "templatizer version")
	}
}

func TestCompletionAndMan(t *testing.T) {
	setupEnv(t)

	code, stdout, _ := run("completion", "bash")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "templatizer")

	code, stdout, _ = run("man")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "TEMPLATIZER")
}
