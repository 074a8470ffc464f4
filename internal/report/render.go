package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/zlisto/financial-analyst-bot/internal/analysis"
	"github.com/zlisto/financial-analyst-bot/internal/search"
)

//go:embed template.html
var reportTemplate string

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"upper": func(s analysis.Sentiment) string { return strings.ToUpper(string(s)) },
}).Parse(reportTemplate))

// Data is everything one run feeds into the report. GeneratedAt is sampled
// once by the pipeline so rendering stays a pure function of its input.
type Data struct {
	GeneratedAt    time.Time
	Articles       []search.Article
	Overview       analysis.MarketOverview
	Recommendation analysis.Recommendation
}

// Render expands the report template into a self-contained HTML document.
// Identical Data always yields byte-identical output.
func Render(data Data) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

// AttachmentName returns the date-stamped filename the report is attached
// under when emailed.
func AttachmentName(generatedAt time.Time) string {
	return fmt.Sprintf("bitcoin_report_%s.html", generatedAt.Format("2006-01-02"))
}
