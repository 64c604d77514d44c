package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/templatizer/pkg/discovery"
	"github.com/arthur-debert/templatizer/pkg/errors"
	"github.com/arthur-debert/templatizer/pkg/template"
	"github.com/arthur-debert/templatizer/pkg/types"
)

// Renderer writes command output in one format
type Renderer struct {
	out    io.Writer
	format Format
	width  int
}

// NewRenderer creates a renderer. FormatAuto is resolved against output
// when it is a terminal file and falls back to text otherwise.
func NewRenderer(format Format, output io.Writer) (*Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal, FormatText, FormatJSON:
		return &Renderer{out: output, format: format, width: 80}, nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}

// Format returns the resolved output format
func (r *Renderer) Format() Format { return r.format }

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.format != FormatTerminal {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) writeJSON(v interface{}) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderMessage writes a single line
func (r *Renderer) RenderMessage(msg string) error {
	if r.format == FormatJSON {
		return r.writeJSON(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(r.out, msg)
	return err
}

// RenderList writes the registered templates followed by the descriptor
// files that could not be registered
func (r *Renderer) RenderList(templates []*template.Template, report *discovery.Report) error {
	var problems []discovery.Entry
	if report != nil {
		problems = report.Failures()
	}

	if r.format == FormatJSON {
		view := listView{Templates: make([]templateView, 0, len(templates))}
		for _, t := range templates {
			view.Templates = append(view.Templates, newTemplateView(t))
		}
		for _, p := range problems {
			view.Problems = append(view.Problems, problemView{Path: p.Path, Name: p.Name(), Error: p.Err.Error()})
		}
		return r.writeJSON(view)
	}

	if len(templates) == 0 {
		fmt.Fprintln(r.out, r.style(MutedStyle, "No templates found"))
	} else {
		data := pterm.TableData{{"Name", "Actions", "Description", "Directory"}}
		for _, t := range templates {
			data = append(data, []string{
				t.Name(),
				fmt.Sprint(len(t.Actions())),
				t.Description(),
				t.Dir(),
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, table)
	}

	if len(problems) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.style(WarningStyle, fmt.Sprintf("%d descriptor(s) skipped:", len(problems))))
		for _, p := range problems {
			fmt.Fprintf(r.out, "  %s: %s\n", r.style(PathStyle, p.Path), p.Err.Error())
		}
	}
	return nil
}

// RenderResult writes one line per action outcome and a summary
func (r *Renderer) RenderResult(result *types.Result, dryRun bool) error {
	if result == nil {
		return nil
	}

	if r.format == FormatJSON {
		return r.writeJSON(newResultView(result, dryRun))
	}

	title := fmt.Sprintf("Template %s", result.Template)
	if dryRun {
		title += " (dry run)"
	}
	fmt.Fprintln(r.out, r.style(TitleStyle, title))

	for _, o := range result.Outcomes {
		label := fmt.Sprintf("%-14s", string(o.Status))
		line := fmt.Sprintf("  %s %s", r.style(StatusStyle(o.Status), label), o.Action.Description())
		if o.Err != nil && o.Status != types.StatusFailed {
			line += r.style(MutedStyle, " ("+o.Err.Error()+")")
		}
		fmt.Fprintln(r.out, line)
	}

	summary := fmt.Sprintf("%d done, %d skipped, %d missing source, %d failed",
		result.Count(types.StatusDone),
		result.Count(types.StatusSkipped),
		result.Count(types.StatusSourceMissing),
		result.Count(types.StatusFailed))
	if n := result.Count(types.StatusNotRun); n > 0 {
		summary += fmt.Sprintf(", %d not run", n)
	}
	_, err := fmt.Fprintln(r.out, r.style(MutedStyle, summary))
	return err
}

// RenderTemplate writes a markdown summary of t, styled with glamour on terminals
func (r *Renderer) RenderTemplate(t *template.Template) error {
	if r.format == FormatJSON {
		return r.writeJSON(newTemplateView(t))
	}

	md := TemplateMarkdown(t)
	if r.format == FormatTerminal {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(r.width),
		)
		if err == nil {
			if rendered, err := renderer.Render(md); err == nil {
				md = rendered
			}
		}
	}
	_, err := fmt.Fprint(r.out, md)
	return err
}

// RenderError writes err with its code and details
func (r *Renderer) RenderError(err error) error {
	if err == nil {
		return nil
	}

	code := errors.GetErrorCode(err)
	details := errors.GetErrorDetails(err)

	if r.format == FormatJSON {
		return r.writeJSON(errorView{Code: string(code), Error: err.Error(), Details: details})
	}

	fmt.Fprintf(r.out, "%s %s\n", r.style(ErrorStyle, "Error:"), err.Error())
	if len(details) > 0 {
		keys := make([]string, 0, len(details))
		for k := range details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(r.out, "  %s %v\n", r.style(MutedStyle, k+":"), details[k])
		}
	}
	return nil
}

// TemplateMarkdown describes a resolved template as markdown
func TemplateMarkdown(t *template.Template) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t.Name())
	if t.Description() != "" {
		fmt.Fprintf(&b, "%s\n\n", t.Description())
	}
	fmt.Fprintf(&b, "Directory: `%s`\n\n", t.Dir())

	if missing := t.MissingArguments(); len(missing) > 0 {
		b.WriteString("## Arguments\n\n")
		for _, m := range missing {
			fmt.Fprintf(&b, "- `--%s` (not supplied)\n", m)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Placeholders\n\n| Token | Value |\n|---|---|\n")
	t.Placeholders().Range(func(token, value string) bool {
		fmt.Fprintf(&b, "| `%s` | %s |\n", token, markdownCell(value))
		return true
	})

	b.WriteString("\n## Actions\n\n")
	for i, a := range t.Actions() {
		switch a.Kind {
		case types.ActionShell:
			fmt.Fprintf(&b, "%d. run `%s`\n", i+1, a.Command)
		default:
			fmt.Fprintf(&b, "%d. write `%s` from `%s`\n", i+1, a.Destination, a.Source)
		}
	}
	return b.String()
}

func markdownCell(s string) string {
	if s == "" {
		return "_empty_"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
