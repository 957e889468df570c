package report

import (
	"html/template"
	"io"
	"time"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Lab Validation Report - {{.LabSKU}}</title>
<style>
:root {
  --pass-color: #16a34a;
  --fail-color: #dc2626;
  --warn-color: #ca8a04;
  --info-color: #2563eb;
  --skip-color: #6b7280;
  --fixed-color: #7c3aed;
}
* { box-sizing: border-box; }
body {
  font-family: 'Segoe UI', -apple-system, BlinkMacSystemFont, sans-serif;
  margin: 0; padding: 20px;
  background: #f1f5f9; color: #1e293b; line-height: 1.5;
}
.container { max-width: 1200px; margin: 0 auto; }
header {
  background: white; border-radius: 8px; padding: 24px;
  margin-bottom: 24px; box-shadow: 0 1px 3px rgba(0,0,0,0.1);
}
h1 { margin: 0 0 16px 0; color: #0f172a; font-size: 24px; }
.meta { color: #64748b; font-size: 14px; }
.meta span { margin-right: 24px; }
.banner {
  padding: 16px 24px; border-radius: 8px; margin-bottom: 24px;
  font-weight: 600; font-size: 18px;
  display: flex; align-items: center; gap: 12px;
}
.banner-pass { background: #dcfce7; color: #166534; border: 1px solid #86efac; }
.banner-fail { background: #fee2e2; color: #991b1b; border: 1px solid #fca5a5; }
.banner-warn { background: #fef3c7; color: #92400e; border: 1px solid #fcd34d; }
.summary {
  display: grid; grid-template-columns: repeat(auto-fit, minmax(120px, 1fr));
  gap: 16px; margin-bottom: 24px;
}
.summary-card {
  background: white; border-radius: 8px; padding: 16px;
  text-align: center; box-shadow: 0 1px 3px rgba(0,0,0,0.1);
}
.summary-card .count { font-size: 32px; font-weight: 700; }
.summary-card .label {
  font-size: 12px; text-transform: uppercase; color: #64748b; margin-top: 4px;
}
.summary-card.pass .count { color: var(--pass-color); }
.summary-card.fail .count { color: var(--fail-color); }
.summary-card.warn .count { color: var(--warn-color); }
.summary-card.info .count { color: var(--info-color); }
.summary-card.skip .count { color: var(--skip-color); }
section {
  background: white; border-radius: 8px; margin-bottom: 16px;
  box-shadow: 0 1px 3px rgba(0,0,0,0.1); overflow: hidden;
}
section h2 {
  margin: 0; padding: 16px 24px; background: #f8fafc;
  border-bottom: 1px solid #e2e8f0;
  font-size: 16px; font-weight: 600; color: #334155;
}
.check-list { padding: 0; margin: 0; list-style: none; }
.check-item {
  padding: 12px 24px; border-bottom: 1px solid #f1f5f9;
  display: flex; align-items: flex-start; gap: 12px;
}
.check-item:last-child { border-bottom: none; }
.check-icon { flex-shrink: 0; width: 24px; text-align: center; }
.check-content { flex-grow: 1; min-width: 0; }
.check-name { font-weight: 500; color: #1e293b; }
.check-message { font-size: 14px; color: #64748b; margin-top: 2px; }
.check-status {
  flex-shrink: 0; padding: 2px 8px; border-radius: 4px;
  font-size: 12px; font-weight: 600; text-transform: uppercase;
}
.status-pass { background: #dcfce7; color: #166534; }
.status-fail { background: #fee2e2; color: #991b1b; }
.status-warn { background: #fef3c7; color: #92400e; }
.status-info { background: #dbeafe; color: #1e40af; }
.status-skipped { background: #f1f5f9; color: #475569; }
.status-fixed { background: #ede9fe; color: #5b21b6; }
.status-unknown { background: #f1f5f9; color: #475569; }
footer { text-align: center; padding: 24px; color: #94a3b8; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
  <header>
    <h1>Lab Validation Report: {{.LabSKU}}</h1>
    <div class="meta">
      <span>Generated: {{.Timestamp}}</span>
      <span>Expiration Window: {{.MinExpDate}} to {{.MaxExpDate}}</span>
    </div>
  </header>

  <div class="banner {{.BannerClass}}">
    <span>{{.BannerIcon}}</span>
    <span>Overall Status: {{.OverallStatus}}</span>
  </div>

  <div class="summary">
    <div class="summary-card pass"><div class="count">{{.Summary.Pass}}</div><div class="label">Passed</div></div>
    <div class="summary-card fail"><div class="count">{{.Summary.Fail}}</div><div class="label">Failed</div></div>
    <div class="summary-card warn"><div class="count">{{.Summary.Warn}}</div><div class="label">Warnings</div></div>
    <div class="summary-card info"><div class="count">{{.Summary.Info}}</div><div class="label">Info</div></div>
    <div class="summary-card skip"><div class="count">{{.Summary.Skipped}}</div><div class="label">Skipped</div></div>
  </div>
{{range .Sections}}
  <section>
    <h2>{{.Title}}</h2>
    <ul class="check-list">
{{- range .Checks}}
      <li class="check-item">
        <span class="check-icon">{{.Status.Icon}}</span>
        <div class="check-content">
          <div class="check-name">{{.Name}}</div>
          <div class="check-message">{{.Message}}</div>
        </div>
        <span class="check-status {{.Status.Class}}">{{.Status}}</span>
      </li>
{{- end}}
    </ul>
  </section>
{{end}}
  <footer>labcheck - Lab Validation Tool</footer>
</div>
</body>
</html>
`

var htmlTmpl = template.Must(template.New("report").Parse(htmlTemplate))

type htmlSection struct {
	Title  string
	Checks []CheckResult
}

type htmlData struct {
	LabSKU        string
	Timestamp     string
	MinExpDate    string
	MaxExpDate    string
	OverallStatus Status
	BannerClass   string
	BannerIcon    string
	Summary       Summary
	Sections      []htmlSection
}

// WriteHTML renders the report as a human-readable HTML document. Categories
// with no results are omitted entirely; the remaining sections follow the
// fixed category display order.
func (r *Report) WriteHTML(w io.Writer) error {
	data := htmlData{
		LabSKU:        r.LabSKU,
		Timestamp:     r.Timestamp.Format(time.RFC3339),
		MinExpDate:    r.MinExpDate,
		MaxExpDate:    r.MaxExpDate,
		OverallStatus: r.OverallStatus,
		Summary:       r.GetSummary(),
	}

	switch r.OverallStatus {
	case StatusFail:
		data.BannerClass = "banner-fail"
		data.BannerIcon = StatusFail.Icon()
	case StatusWarn:
		data.BannerClass = "banner-warn"
		data.BannerIcon = StatusWarn.Icon()
	default:
		data.BannerClass = "banner-pass"
		data.BannerIcon = StatusPass.Icon()
	}

	for _, cat := range Categories {
		checks := r.checks[cat]
		if len(checks) == 0 {
			continue
		}
		data.Sections = append(data.Sections, htmlSection{
			Title:  cat.Title(),
			Checks: checks,
		})
	}

	return htmlTmpl.Execute(w, data)
}
