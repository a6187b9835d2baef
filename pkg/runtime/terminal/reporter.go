package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/isg-atlas/pkg/models/domain"
)

const plainTemplate = `
{{.Title}}
{{if .Period.Months}}Period: {{.Period.Start}} to {{.Period.End}} ({{.Period.Months}} months)
{{end}}
{{range .Sections}}
=== {{.Title}} ===
{{range $key, $value := .Summary}}{{$key}}: {{$value}}
{{end}}
{{range .Details}}- {{.Name}}: {{.Value}}{{if .Unit}} {{.Unit}}{{end}}
{{if .Description}}  {{.Description}}
{{end}}{{end}}{{end}}`

// Reporter outputs reports to the console in a formatted text form
type Reporter struct {
	writer io.Writer
	tmpl   *template.Template
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		tmpl:   template.Must(template.New("report").Parse(plainTemplate)),
	}
}

func (c *Reporter) Handle(report *domain.Report) error {
	if err := c.tmpl.Execute(c.writer, report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
