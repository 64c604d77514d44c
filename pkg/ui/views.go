package ui

import (
	"github.com/arthur-debert/templatizer/pkg/template"
	"github.com/arthur-debert/templatizer/pkg/types"
)

type placeholderView struct {
	Token string `json:"token"`
	Value string `json:"value"`
}

type actionView struct {
	Kind        string `json:"kind"`
	Command     string `json:"command,omitempty"`
	Destination string `json:"destination,omitempty"`
	Source      string `json:"source,omitempty"`
}

type templateView struct {
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	Dir              string            `json:"dir"`
	MissingArguments []string          `json:"missingArguments,omitempty"`
	Placeholders     []placeholderView `json:"placeholders"`
	Actions          []actionView      `json:"actions"`
}

type problemView struct {
	Path  string `json:"path"`
	Name  string `json:"name,omitempty"`
	Error string `json:"error"`
}

type listView struct {
	Templates []templateView `json:"templates"`
	Problems  []problemView  `json:"problems,omitempty"`
}

type outcomeView struct {
	Action actionView `json:"action"`
	Status string     `json:"status"`
	Error  string     `json:"error,omitempty"`
}

type resultView struct {
	Template string        `json:"template"`
	DryRun   bool          `json:"dryRun"`
	Outcomes []outcomeView `json:"outcomes"`
}

type errorView struct {
	Code    string                 `json:"code"`
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func newActionView(a types.Action) actionView {
	return actionView{
		Kind:        a.Kind.String(),
		Command:     a.Command,
		Destination: a.Destination,
		Source:      a.Source,
	}
}

func newTemplateView(t *template.Template) templateView {
	view := templateView{
		Name:             t.Name(),
		Description:      t.Description(),
		Dir:              t.Dir(),
		MissingArguments: t.MissingArguments(),
		Placeholders:     []placeholderView{},
		Actions:          []actionView{},
	}
	t.Placeholders().Range(func(token, value string) bool {
		view.Placeholders = append(view.Placeholders, placeholderView{Token: token, Value: value})
		return true
	})
	for _, a := range t.Actions() {
		view.Actions = append(view.Actions, newActionView(a))
	}
	return view
}

func newResultView(r *types.Result, dryRun bool) resultView {
	view := resultView{Template: r.Template, DryRun: dryRun, Outcomes: []outcomeView{}}
	for _, o := range r.Outcomes {
		ov := outcomeView{Action: newActionView(o.Action), Status: string(o.Status)}
		if o.Err != nil {
			ov.Error = o.Err.Error()
		}
		view.Outcomes = append(view.Outcomes, ov)
	}
	return view
}
