package view

import (
	"bytes"
	"html/template"
)

// CopyButtonData provides the dynamic fields required by the button snippet.
type CopyButtonData struct {
	TargetID      string
	Text          string
	Icon          string
	ScriptURL     string
	TrackURL      string
	Token         string
	PageURL       string
	SuccessMS     int
	DisableOnCopy bool
}

var copyButtonTmpl = template.Must(template.New("copy_button").Parse(`
<span class="copy-the-code-wrap" style="display: inline-block; position: relative;">
	<button type="button"
		class="copy-the-code-button"
		data-copy-target="{{.TargetID}}"
		data-track-url="{{.TrackURL}}"
		data-track-token="{{.Token}}"
		data-page-url="{{.PageURL}}"
		data-original-text="{{if .Text}}{{.Text}}{{else}}Copy{{end}}"
		data-success-ms="{{.SuccessMS}}"
		data-disable-on-copy="{{if .DisableOnCopy}}1{{else}}0{{end}}"
		style="cursor: pointer;">
		{{if .Icon}}<span class="copy-the-code-icon {{.Icon}}"></span> {{end}}{{if .Text}}{{.Text}}{{else}}Copy{{end}}
	</button>
	<script src="{{.ScriptURL}}" defer></script>
</span>
`))

// RenderCopyButton expands the button snippet. An empty target selector
// yields no markup at all so a misconfigured shortcode renders nothing.
func RenderCopyButton(data CopyButtonData) (string, error) {
	if data.TargetID == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := copyButtonTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
