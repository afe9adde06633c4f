package mail

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.txt
var templateFS embed.FS

const (
	templateUserActivation = "user_activation.txt"
	templatePasswordReset  = "password_reset.txt"
)

var templates = template.Must(template.ParseFS(templateFS, "templates/*.txt"))

// render 渲染纯文本模板
func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
