package notification

import (
	"bytes"
	"strings"
	"text/template"

	"dayflow-hrms/internal/events"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(`Hello {{.FullName}},

Your {{.Company}} account is ready.

Login ID:      {{.LoginID}}
Employee code: {{.EmployeeCode}}
Department:    {{.Department}}
Designation:   {{.Designation}}

Your HR contact will share your temporary password separately. You will be
asked to change it after the first sign-in{{if .FrontendURL}} at {{.FrontendURL}}{{end}}.
`))

var leaveReviewTemplate = template.Must(template.New("leave_review").Parse(`Hello {{.EmployeeName}},

Your {{.LeaveType}} leave from {{.StartDate}} to {{.EndDate}} ({{.TotalDays}} day{{if ne .TotalDays 1}}s{{end}}) was {{.Status}}.
{{- if .Comments}}

Reviewer comments: {{.Comments}}
{{- end}}
`))

type welcomeData struct {
	events.EmployeeCreatedEvent
	Company     string
	FrontendURL string
}

func renderWelcome(e events.EmployeeCreatedEvent, company, frontendURL string) (Message, error) {
	var buf bytes.Buffer
	if err := welcomeTemplate.Execute(&buf, welcomeData{e, company, frontendURL}); err != nil {
		return Message{}, err
	}
	return Message{
		To:      e.Email,
		Subject: "Welcome to " + company,
		Body:    buf.String(),
	}, nil
}

func renderLeaveReview(e events.LeaveReviewedEvent) (Message, error) {
	var buf bytes.Buffer
	if err := leaveReviewTemplate.Execute(&buf, e); err != nil {
		return Message{}, err
	}
	return Message{
		To:      e.EmployeeEmail,
		Subject: "Leave request " + strings.ToLower(e.Status),
		Body:    buf.String(),
	}, nil
}
