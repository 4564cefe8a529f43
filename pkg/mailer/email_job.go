package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template+Data or Subject+Text(+HTML) must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome" or "member_added"
	Data     map[string]any `json:"data,omitempty"`
}

// Renderable reports whether the worker can produce a body for the job.
func (j EmailJob) Renderable() bool {
	if j.To == "" {
		return false
	}
	return j.Template != "" || (j.Subject != "" && (j.Text != "" || j.HTML != ""))
}
