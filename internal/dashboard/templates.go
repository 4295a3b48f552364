package dashboard

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/psantana5/flexdash/pkg/view"
)

//go:embed templates
var templatesFS embed.FS

var funcs = template.FuncMap{
	"stateLabel":   view.StateLabel,
	"flexletLabel": view.FlexletLabel,
	"load":         view.Load,
	"shellquote":   view.CommandLine,
	"resultTime":   view.ResultTime,
	"packageName":  view.PackageName,
}

func mustPage(name string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).ParseFS(templatesFS,
		"templates/base.html", "templates/"+name))
}

var (
	templateIndex    = mustPage("index.html")
	templateJobs     = mustPage("jobs.html")
	templateJob      = mustPage("job.html")
	templateFlexlets = mustPage("flexlets.html")
)

type section string

const (
	sectionIndex    section = "index"
	sectionJobs     section = "jobs"
	sectionFlexlets section = "flexlets"
)

type baseValues struct {
	Section section
	HubURL  string
}

// renderHTML executes into a buffer first so a template failure becomes a
// clean 500 instead of a half-written page. Only execution errors are returned.
func renderHTML(w http.ResponseWriter, tmpl *template.Template, values interface{}) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", values); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
	return nil
}
