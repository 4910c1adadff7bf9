package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/go-user-registration/pkg/mailer"
	mailtpl "github.com/oksasatya/go-user-registration/pkg/mailer/templates"
)

// EnsureRecipientAndEmail fills the recipient fields templates expect from job.To.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}

// MapLegacyTemplate normalizes the template name and maps older
// registration aliases onto the welcome template.
func MapLegacyTemplate(job *mailer.EmailJob) {
	name := strings.ToLower(strings.TrimSpace(job.Template))
	switch name {
	case "registration", "user_registered", "register":
		name = mailtpl.Welcome
	}
	job.Template = name
	if name != "" {
		if job.Data == nil {
			job.Data = map[string]any{}
		}
		if v, ok := job.Data["Type"]; !ok || fmt.Sprintf("%v", v) == "" {
			job.Data["Type"] = name
		}
	}
}
