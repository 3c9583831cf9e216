package render

import (
	"text/template"

	"github.com/edp1096/icemos/pkg/device"
)

const header = `{{define "header"}}* {{.Description}} netlist for device {{.Polarity}} using {{.Label}} model
.include "{{.Include}}"
.option verbose=1

* ORIGINAL netlists run at room temperature, MODIFIED at the cryogenic point
.temp {{.Temp}}

* Model: {{.Model}}
.param nf=1
.param w={{.W}}
.param l={{.L}}
{{end}}`

const circuit = `{{define "circuit"}}
{{- range .Elements}}
{{.}}
{{- end}}
.save i({{.Probe}})
{{end}}`

const footer = `{{define "footer"}}
.param mc_mm_switch=0
.param mc_pr_switch=0
{{- range .PDK}}
.include {{.}}
{{- end}}

.GLOBAL GND
.end
{{end}}`

const gateN = `{{template "header" .}}{{template "circuit" .}}
.control
  save all
  dc VGATE_src {{.Gate.Start}} {{.Gate.Stop}} {{.Gate.Step}}
  write {{.Results}}/IV_ID_vs_VG.raw
  wrdata {{.Results}}/IV_ID_vs_VG.csv I(V1_meas)
.endc
{{template "footer" .}}`

const gateP = `{{template "header" .}}{{template "circuit" .}}
.control
  save all
  op
  dc VGATE {{.Gate.Start}} {{.Gate.Stop}} {{.Gate.Step}}
  wrdata {{.Results}}/IV_ID_vs_VG.csv I(vdsM)
  write {{.Results}}/IV_ID_vs_VG.raw
.endc
{{template "footer" .}}`

const drainN = `{{template "header" .}}{{template "circuit" .}}
.control
  save all
{{- range .Steps}}
  echo Sweeping VGS = {{.Value}}
  alter VGATE dc={{.Value}}
  dc VDRAIN {{$.Output.Start}} {{$.Output.Stop}} {{$.Output.Step}}
  wrdata {{$.Results}}/{{.Base}}.csv V(VDS) I(VDRAIN) I(VDSM)
  write {{$.Results}}/{{.Base}}.raw
{{- end}}
.endc
{{template "footer" .}}`

const sourceP = `{{template "header" .}}{{template "circuit" .}}
.control
  save all
{{- range .Steps}}
  echo Sweeping VGS = {{.Value}}
  alter VGATE dc={{.Value}}
  dc VSOURCE {{$.Output.Start}} {{$.Output.Stop}} {{$.Output.Step}}
  wrdata {{$.Results}}/{{.Base}}.csv V(VGATE) I(VSOURCE) I(vdsM)
  write {{$.Results}}/{{.Base}}.raw
{{- end}}
.endc
{{template "footer" .}}`

type templateKey struct {
	family   Family
	polarity device.Polarity
}

var templates = map[templateKey]*template.Template{
	{Gate, device.N}:   mustTemplate("gate_nch", gateN),
	{Gate, device.P}:   mustTemplate("gate_pch", gateP),
	{Drain, device.N}:  mustTemplate("drain_nch", drainN),
	{Source, device.P}: mustTemplate("source_pch", sourceP),
}

func mustTemplate(name, body string) *template.Template {
	t := template.Must(template.New(name).Option("missingkey=error").Parse(header))
	template.Must(t.Parse(circuit))
	template.Must(t.Parse(footer))
	return template.Must(t.Parse(body))
}

// axis is a sweep in netlist text form.
type axis struct {
	Start string
	Stop  string
	Step  string
}

type step struct {
	Value string
	Base  string
}

type templateData struct {
	Description string
	Polarity    string
	Label       string
	Include     string
	Temp        string
	Model       string
	W           string
	L           string
	Elements    []string
	Probe       string
	Gate        axis
	Output      axis
	Steps       []step
	Results     string
	PDK         []string
}
