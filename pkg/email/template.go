package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// ConfirmationData holds the submitter fields shown in the confirmation email
type ConfirmationData struct {
	FirstName string
	LastName  string
	Message   string
}

// confirmationEmailTemplate is the HTML template for confirmation emails
const confirmationEmailTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="UTF-8">
    <title>Hemos recibido tu mensaje</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Hemos recibido tu mensaje</h1>
        </div>
        <div class="content">
            <p>Hola {{.FirstName}} {{.LastName}},</p>
            <p>Gracias por ponerte en contacto con nosotros. Este es el mensaje que nos enviaste:</p>
            <div class="message-box">{{range $i, $line := .MessageLines}}{{if $i}}<br>
{{end}}{{$line}}{{end}}</div>
            <p>Te responderemos lo antes posible.</p>
        </div>
        <div class="footer">
            <p>Este correo se generó automáticamente desde nuestro formulario de contacto.</p>
            <p>Si no enviaste este mensaje, puedes ignorar este correo.</p>
        </div>
    </div>
</body>
</html>`

// Composer renders the fixed confirmation template. Every submitter field
// is escaped by html/template; the message keeps its text and line breaks.
type Composer struct {
	tmpl *template.Template
}

// NewComposer parses the confirmation template once
func NewComposer() *Composer {
	return &Composer{
		tmpl: template.Must(template.New("confirmation").Parse(confirmationEmailTemplate)),
	}
}

// Compose renders the confirmation document. Output depends only on data.
func (c *Composer) Compose(data ConfirmationData) (string, error) {
	view := struct {
		FirstName    string
		LastName     string
		MessageLines []string
	}{
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		MessageLines: messageLines(data.Message),
	}

	var body bytes.Buffer
	if err := c.tmpl.Execute(&body, view); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	return body.String(), nil
}

func messageLines(message string) []string {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	return strings.Split(message, "\n")
}
