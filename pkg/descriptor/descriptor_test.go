package descriptor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/templatizer/pkg/errors"
	"github.com/arthur-debert/templatizer/pkg/filesystem"
)

const demoJSON = `{
	// comments are allowed
	"name": "demo",
	"description": "A demo template",
	"variables": {
		"project": {"%NAME%": "upper(v)", "%LOW%": "lower(v)"}
	},
	"constants": {"%AUTHOR%": "\"John Doe\""},
	"actions": [
		["mkdir -p %LOW%"],
		["%NAME%-init.sh", "templates/init.sh.tpl"],
	],
	"unknown": [1, 2, 3]
}`

func TestParse_JSON(t *testing.T) {
	d, err := Parse([]byte(demoJSON), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "demo", d.Name)
	assert.Equal(t, "A demo template", d.Description)
	assert.Equal(t, []string{"project"}, d.Variables.Keys())

	tokens, ok := d.Variables.Get("project")
	require.True(t, ok)
	assert.Equal(t, []string{"%NAME%", "%LOW%"}, tokens.Keys())

	assert.Equal(t, []string{"%AUTHOR%"}, d.Constants.Keys())
	assert.Equal(t, [][]string{
		{"mkdir -p %LOW%"},
		{"%NAME%-init.sh", "templates/init.sh.tpl"},
	}, d.Actions)
}

func TestParse_YAML(t *testing.T) {
	doc := `
name: demo
variables:
  project:
    "%NAME%": upper(v)
    "%ALPHA%": v
constants:
  "%Z%": '"z"'
  "%A%": '"a"'
actions:
  - ["echo hi"]
  - ["%NAME%.txt", "src.tpl"]
`
	d, err := Parse([]byte(doc), FormatYAML)
	require.NoError(t, err)

	tokens, _ := d.Variables.Get("project")
	assert.Equal(t, []string{"%NAME%", "%ALPHA%"}, tokens.Keys())
	assert.Equal(t, []string{"%Z%", "%A%"}, d.Constants.Keys())
	assert.Len(t, d.Actions, 2)
}

func TestParse_MissingRequiredField(t *testing.T) {
	full := map[string]string{
		"name":      `"demo"`,
		"variables": `{}`,
		"constants": `{}`,
		"actions":   `[]`,
	}

	for _, missing := range RequiredFields {
		t.Run(missing, func(t *testing.T) {
			var parts []string
			for _, field := range RequiredFields {
				if field != missing {
					parts = append(parts, `"`+field+`": `+full[field])
				}
			}
			doc := "{" + strings.Join(parts, ",") + "}"

			d, err := Parse([]byte(doc), FormatJSON)
			assert.Nil(t, d)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidTemplate), "got %v", err)
			assert.Equal(t, missing, errors.GetErrorDetails(err)["field"])
		})
	}
}

func TestParse_Aliases(t *testing.T) {
	doc := `{
		"name": "legacy",
		"arguments": {"name": {"%NAME%": "v"}},
		"constants": {},
		"package": [["touch %NAME%"]]
	}`

	d, err := Parse([]byte(doc), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, d.Variables.Keys())
	assert.Equal(t, [][]string{{"touch %NAME%"}}, d.Actions)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		format Format
	}{
		{"not json", `{"name": `, FormatJSON},
		{"top level array", `[1, 2]`, FormatJSON},
		{"top level null", `null`, FormatJSON},
		{"empty name", `{"name": "", "variables": {}, "constants": {}, "actions": []}`, FormatJSON},
		{"name not a string", `{"name": 3, "variables": {}, "constants": {}, "actions": []}`, FormatJSON},
		{"null variables", `{"name": "x", "variables": null, "constants": {}, "actions": []}`, FormatJSON},
		{"variables not nested", `{"name": "x", "variables": {"a": "v"}, "constants": {}, "actions": []}`, FormatJSON},
		{"null argument tokens", `{"name": "x", "variables": {"a": null}, "constants": {}, "actions": []}`, FormatJSON},
		{"constant not a string", `{"name": "x", "variables": {}, "constants": {"%A%": 1}, "actions": []}`, FormatJSON},
		{"empty action", `{"name": "x", "variables": {}, "constants": {}, "actions": [[]]}`, FormatJSON},
		{"three element action", `{"name": "x", "variables": {}, "constants": {}, "actions": [["a", "b", "c"]]}`, FormatJSON},
		{"empty command", `{"name": "x", "variables": {}, "constants": {}, "actions": [[""]]}`, FormatJSON},
		{"yaml scalar document", `just a string`, FormatYAML},
		{"unknown format", `{}`, Format("toml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(tt.doc), tt.format)
			assert.Nil(t, d)
			assert.Error(t, err)
		})
	}
}

func TestParse_ActionArityMessage(t *testing.T) {
	doc := `{"name": "x", "variables": {}, "constants": {}, "actions": [["ok"], ["a", "b", "c"]]}`

	_, err := Parse([]byte(doc), FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidTemplate))
	assert.Equal(t, "actions[1]", errors.GetErrorDetails(err)["field"])
	assert.Contains(t, err.Error(), "at most 2")
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("cpp.templatizer"))
	assert.Equal(t, FormatJSON, FormatFromPath("cpp.jsonc"))
	assert.Equal(t, FormatYAML, FormatFromPath("cpp.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("CPP.YML"))
}

func TestLoad(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/templates", 0755))
	require.NoError(t, fsys.WriteFile("/templates/demo.templatizer", []byte(demoJSON), 0644))

	d, err := Load(fsys, "/templates/demo.templatizer")
	require.NoError(t, err)
	assert.Equal(t, "demo", d.Name)
	assert.Equal(t, "/templates", d.Dir)

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(fsys, "/templates/none.templatizer")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	})

	t.Run("invalid content", func(t *testing.T) {
		require.NoError(t, fsys.WriteFile("/templates/bad.templatizer", []byte(`{"name": "bad"}`), 0644))
		_, err := Load(fsys, "/templates/bad.templatizer")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidTemplate))
		assert.Equal(t, "/templates/bad.templatizer", errors.GetErrorDetails(err)["path"])
	})
}
