package service

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"
	"text/template"

	"github.com/shenikar/dispatch_alerts/internal/models"
)

const (
	newCallTitleTemplate = `{{.Type}}{{if .Tac}}  TAC {{.Tac}}{{end}}`
	newCallBodyTemplate  = `{{if not .Medical}}{{or .Location "Location N/A"}}
{{if .MapLinks}}{{.MapLinks}}
{{end}}{{end}}Units: {{.Units}}
Time:  {{.Time}}`

	earlyTitleTemplate = `EARLY: {{.Type}}{{if .Tac}}  TAC {{.Tac}}{{end}}`
	earlyBodyTemplate  = `{{if not .Medical}}{{if .Location}}{{.Location}}
{{end}}{{if .MapLinks}}{{.MapLinks}}
{{end}}{{end}}{{if .Grid}}Grid: {{.Grid}}
{{end}}Units: {{or .Units "none yet"}}
Time:  {{.Time}}`

	companionTitleTemplate = `{{.Label}} {{.Companion}} {{if .Added}}ADDED TO CALL{{else}}REMOVED FROM THE CALL{{end}}`
)

// CallData - поля вызова для шаблонов. Текст ленты уже экранирован для HTML.
type CallData struct {
	Type     string
	Tac      string
	Location string
	Grid     string
	MapLinks string
	Units    string
	Time     string
	Medical  bool
}

// CompanionData - поля уведомления о сопровождающей единице
type CompanionData struct {
	Label     string
	Companion string
	Added     bool
}

// Renderer собирает заголовки и тексты уведомлений
type Renderer struct {
	newCallTitle   *template.Template
	newCallBody    *template.Template
	earlyTitle     *template.Template
	earlyBody      *template.Template
	companionTitle *template.Template
	companionLabel string
}

// NewRenderer разбирает шаблоны уведомлений
func NewRenderer(companionLabel string) *Renderer {
	return &Renderer{
		newCallTitle:   template.Must(template.New("new-call-title").Parse(newCallTitleTemplate)),
		newCallBody:    template.Must(template.New("new-call-body").Parse(newCallBodyTemplate)),
		earlyTitle:     template.Must(template.New("early-title").Parse(earlyTitleTemplate)),
		earlyBody:      template.Must(template.New("early-body").Parse(earlyBodyTemplate)),
		companionTitle: template.Must(template.New("companion-title").Parse(companionTitleTemplate)),
		companionLabel: html.EscapeString(companionLabel),
	}
}

// NewCall - уведомление о новом вызове
func (r *Renderer) NewCall(inc models.Incident) (title, body string, err error) {
	data := callData(inc)
	if title, err = execute(r.newCallTitle, data); err != nil {
		return "", "", err
	}
	if body, err = execute(r.newCallBody, data); err != nil {
		return "", "", err
	}
	return title, body, nil
}

// EarlyAlert - предварительное оповещение по геозоне
func (r *Renderer) EarlyAlert(alert models.EarlyAlert) (title, body string, err error) {
	data := callData(alert.Incident)
	if title, err = execute(r.earlyTitle, data); err != nil {
		return "", "", err
	}
	if body, err = execute(r.earlyBody, data); err != nil {
		return "", "", err
	}
	return title, body, nil
}

// Companion - заголовок уведомления о сопровождающей единице, тело пустое
func (r *Renderer) Companion(change models.CompanionChange) (string, error) {
	return execute(r.companionTitle, CompanionData{
		Label:     r.companionLabel,
		Companion: html.EscapeString(change.Companion),
		Added:     change.Added,
	})
}

func callData(inc models.Incident) CallData {
	units := make([]string, 0, len(inc.Units))
	for _, u := range inc.Units {
		units = append(units, html.EscapeString(u.ID))
	}
	data := CallData{
		Type:     html.EscapeString(inc.Type),
		Tac:      html.EscapeString(inc.Tac),
		Location: html.EscapeString(inc.Location),
		Grid:     html.EscapeString(inc.Grid),
		Units:    strings.Join(units, ", "),
		Time:     "N/A",
		Medical:  inc.IsMedical(),
	}
	if inc.HasCoords {
		data.MapLinks = MapLinks(inc.Latitude, inc.Longitude)
	}
	if !inc.ReceivedAt.IsZero() {
		data.Time = inc.ReceivedAt.Format("15:04")
	}
	return data
}

// MapLinks - ссылки на карты Apple и Google для точки
func MapLinks(lat, lon float64) string {
	ll := strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
	apple := "https://maps.apple.com/?ll=" + ll
	google := "https://www.google.com/maps?q=" + ll
	return fmt.Sprintf(`<a href="%s">View map (Apple)</a> | <a href="%s">Google</a>`, apple, google)
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("service: render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
