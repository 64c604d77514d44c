package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/templatizer/pkg/descriptor"
	"github.com/arthur-debert/templatizer/pkg/discovery"
	"github.com/arthur-debert/templatizer/pkg/errors"
	"github.com/arthur-debert/templatizer/pkg/template"
	"github.com/arthur-debert/templatizer/pkg/types"
	"github.com/arthur-debert/templatizer/pkg/ui"
)

func demoTemplate(t *testing.T) *template.Template {
	t.Helper()
	d, err := descriptor.Parse([]byte(`{
		"name": "demo",
		"description": "Shell project skeleton",
		"variables": {"project": {"%NAME%": "upper(v)"}},
		"constants": {"%SEP%": "'|'"},
		"actions": [["mkdir %NAME%"], ["%NAME%/init.sh", "init.sh.tpl"]]
	}`), descriptor.FormatJSON)
	require.NoError(t, err)
	d.Dir = "/tpl"

	tpl, err := template.Resolve(d, map[string]string{"project": "foo"}, template.Options{
		Now: func() time.Time { return time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return tpl
}

func newRenderer(t *testing.T, format ui.Format) (*ui.Renderer, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	r, err := ui.NewRenderer(format, buf)
	require.NoError(t, err)
	return r, buf
}

func TestNewRenderer(t *testing.T) {
	r, _ := newRenderer(t, ui.FormatAuto)
	assert.Equal(t, ui.FormatText, r.Format(), "non-file writers get plain text")

	_, err := ui.NewRenderer(ui.Format(42), &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown format")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ui.Format
		wantErr bool
	}{
		{"", ui.FormatAuto, false},
		{"terminal", ui.FormatTerminal, false},
		{"plain", ui.FormatText, false},
		{"JSON", ui.FormatJSON, false},
		{"xml", ui.FormatAuto, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEqual(t, "unknown", got.String())
		})
	}
}

func TestRenderList(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tpl/bad.templatizer", []byte(`{"name": "bad"}`), 0644))
	report := discovery.Scan(fs, []string{"/tpl"}, nil)

	r, buf := newRenderer(t, ui.FormatText)
	require.NoError(t, r.RenderList([]*template.Template{demoTemplate(t)}, report))

	out := buf.String()
	assert.Contains(t, out, "demo")
	assert.Contains(t, out, "Shell project skeleton")
	assert.Contains(t, out, "1 descriptor(s) skipped")
	assert.Contains(t, out, "/tpl/bad.templatizer")
}

func TestRenderList_Empty(t *testing.T) {
	r, buf := newRenderer(t, ui.FormatText)
	require.NoError(t, r.RenderList(nil, nil))
	assert.Equal(t, "No templates found\n", buf.String())
}

func TestRenderResult(t *testing.T) {
	result := &types.Result{
		Template: "demo",
		Outcomes: []types.Outcome{
			{Action: types.ShellAction("mkdir FOO"), Status: types.StatusDone},
			{Action: types.EmitFileAction("FOO/init.sh", "/tpl/init.sh.tpl"), Status: types.StatusSkipped},
			{Action: types.ShellAction("false"), Status: types.StatusFailed, Err: &types.ShellError{Command: "false", ExitCode: 1}},
			{Action: types.ShellAction("echo"), Status: types.StatusNotRun},
		},
	}

	t.Run("text", func(t *testing.T) {
		r, buf := newRenderer(t, ui.FormatText)
		require.NoError(t, r.RenderResult(result, true))

		out := buf.String()
		assert.Contains(t, out, "Template demo (dry run)")
		assert.Contains(t, out, `done           Run "mkdir FOO"`)
		assert.Contains(t, out, "skipped        Write FOO/init.sh from /tpl/init.sh.tpl")
		assert.Contains(t, out, "1 done, 1 skipped, 0 missing source, 1 failed, 1 not run")
	})

	t.Run("json", func(t *testing.T) {
		r, buf := newRenderer(t, ui.FormatJSON)
		require.NoError(t, r.RenderResult(result, false))

		var decoded struct {
			Template string `json:"template"`
			Outcomes []struct {
				Status string `json:"status"`
				Error  string `json:"error"`
			} `json:"outcomes"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "demo", decoded.Template)
		require.Len(t, decoded.Outcomes, 4)
		assert.Equal(t, "failed", decoded.Outcomes[2].Status)
		assert.Contains(t, decoded.Outcomes[2].Error, "status 1")
	})
}

func TestRenderTemplate(t *testing.T) {
	tpl := demoTemplate(t)

	md := ui.TemplateMarkdown(tpl)
	assert.Contains(t, md, "# demo")
	assert.Contains(t, md, "| `%NAME%` | FOO |")
	assert.Contains(t, md, "| `%SEP%` | \\| |")
	assert.Contains(t, md, "| `%YEAR%` | 2026 |")
	assert.Contains(t, md, "1. run `mkdir FOO`")
	assert.Contains(t, md, "2. write `FOO/init.sh` from `/tpl/init.sh.tpl`")

	r, buf := newRenderer(t, ui.FormatText)
	require.NoError(t, r.RenderTemplate(tpl))
	assert.Equal(t, md, buf.String())

	r, buf = newRenderer(t, ui.FormatTerminal)
	require.NoError(t, r.RenderTemplate(tpl))
	assert.Contains(t, buf.String(), "demo")
}

func TestRenderError(t *testing.T) {
	err := errors.New(errors.ErrTemplateNotFound, "template rust not found").WithDetail("template", "rust")

	r, buf := newRenderer(t, ui.FormatText)
	require.NoError(t, r.RenderError(err))
	assert.Contains(t, buf.String(), "Error: ")
	assert.Contains(t, buf.String(), "template rust not found")
	assert.Contains(t, buf.String(), "template: rust")

	r, buf = newRenderer(t, ui.FormatJSON)
	require.NoError(t, r.RenderError(err))
	assert.Contains(t, buf.String(), `"code": "TEMPLATE_NOT_FOUND"`)
}
