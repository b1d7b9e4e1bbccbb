package health

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
)

var statusPage = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>SEMDEX · API Status</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    :root { --navy: #0F172A; --blue: #1D4ED8; --bg: #F1F5F9; --muted: #64748B; }
    body { background: var(--bg); color: var(--navy); font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; margin: 0; padding: 48px 16px; }
    .card { max-width: 880px; margin: 0 auto; background: #fff; border-radius: 20px; box-shadow: 0 20px 60px -20px rgba(15, 23, 42, 0.2); overflow: hidden; }
    header { padding: 32px 40px 8px 40px; }
    h1 { margin: 0; font-size: 36px; letter-spacing: -1px; }
    h1.issue { color: #B91C1C; }
    .sub { color: var(--muted); font-weight: 600; margin: 8px 0 0 0; }
    .grid { display: grid; grid-template-columns: repeat(3, 1fr); }
    .col { padding: 28px 40px; border-right: 1px solid #E2E8F0; }
    .col:last-child { border-right: none; }
    .label { text-transform: uppercase; font-size: 11px; font-weight: 800; letter-spacing: 2px; color: #94A3B8; margin-bottom: 16px; }
    .row { display: flex; justify-content: space-between; padding: 6px 0; font-size: 14px; font-weight: 600; }
    .ok { color: #047857; }
    .err { color: #DC2626; }
    footer { background: #F8FAFC; padding: 16px 40px; font-family: monospace; font-size: 13px; display: flex; justify-content: space-between; }
    a { color: var(--blue); }
    @media (max-width: 800px) { .grid { grid-template-columns: 1fr; } .col { border-right: none; } }
  </style>
</head>
<body>
  <div class="card">
    <header>
      <h1 class="{{if ne .Status "ok"}}issue{{end}}">{{if eq .Status "ok"}}All Systems Operational{{else}}System Issues Detected{{end}}</h1>
      <p class="sub">SEMDEX shareholder portal API · <a href="/health/json">/health/json</a> · <a href="/health/errors">/health/errors</a> · <a href="/metrics">/metrics</a></p>
    </header>
    <div class="grid">
      <div class="col">
        <div class="label">Traffic</div>
        <div class="row"><span>Requests</span><span>{{.Traffic.TotalRequests}}</span></div>
        <div class="row"><span>Successful</span><span class="ok">{{.Traffic.SuccessCount}}</span></div>
        <div class="row"><span>Failed</span><span class="err">{{.Traffic.FailedCount}}</span></div>
        <div class="row"><span>Success Rate</span><span>{{.Traffic.SuccessRate}}%</span></div>
        <div class="row"><span>Avg Latency</span><span>{{.AvgLatency}} ms</span></div>
      </div>
      <div class="col">
        <div class="label">Runtime</div>
        <div class="row"><span>Uptime</span><span>{{.Uptime}}</span></div>
        <div class="row"><span>Heap Used</span><span>{{.Runtime.Memory.HeapUsed}} MB</span></div>
        <div class="row"><span>Goroutines</span><span>{{.Runtime.Goroutines}}</span></div>
        <div class="row"><span>Go</span><span>{{.Runtime.GoVersion}}</span></div>
        <div class="row"><span>Platform</span><span>{{.Runtime.Platform}}</span></div>
      </div>
      <div class="col">
        <div class="label">Connectivity</div>
        {{range .Deps}}<div class="row"><span>{{.Name}}</span><span class="{{if eq .Status "connected"}}ok{{else}}err{{end}}">{{.Status}}{{if .PingMs}} · {{.PingMs}} ms{{end}}</span></div>
        {{end}}
      </div>
    </div>
    <footer>
      <span>LAST INBOUND</span><span>{{.LastMethod}} {{.LastPath}}</span><span>{{.LastIP}}</span>
    </footer>
  </div>
</body>
</html>`))

type depRow struct {
	Name   string
	Status string
	PingMs interface{}
}

type statusView struct {
	CollectResult
	AvgLatency string
	Uptime     string
	Deps       []depRow
	LastMethod string
	LastPath   string
	LastIP     string
}

// RenderDashboardHTML returns the status page for GET /.
func RenderDashboardHTML(health CollectResult) string {
	view := statusView{
		CollectResult: health,
		AvgLatency:    fmt.Sprint(health.Traffic.AvgResponseTime),
		Uptime:        formatUptime(health.Runtime.UptimeSeconds),
		LastMethod:    "-",
		LastPath:      "-",
		LastIP:        "-",
	}
	names := make([]string, 0, len(health.Dependencies))
	for name := range health.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d := health.Dependencies[name]
		row := depRow{Name: name, Status: d.Status}
		if d.PingMs != nil {
			row.PingMs = *d.PingMs
		}
		view.Deps = append(view.Deps, row)
	}
	if m, ok := health.Traffic.LastRequest.(map[string]interface{}); ok {
		if v, ok := m["method"].(string); ok {
			view.LastMethod = v
		}
		if v, ok := m["path"].(string); ok {
			view.LastPath = v
		}
		if v, ok := m["ip"].(string); ok {
			view.LastIP = v
		}
	}

	var buf bytes.Buffer
	if err := statusPage.Execute(&buf, view); err != nil {
		return "<!DOCTYPE html><html><body>status page unavailable</body></html>"
	}
	return buf.String()
}

func formatUptime(s int64) string {
	d := s / 86400
	h := (s % 86400) / 3600
	m := (s % 3600) / 60
	if d > 0 {
		return fmt.Sprintf("%dd %dh %dm", d, h, m)
	}
	return fmt.Sprintf("%dh %dm %ds", h, m, s%60)
}
