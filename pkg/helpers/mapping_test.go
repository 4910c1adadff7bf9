package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-user-registration/pkg/mailer"
	mailtpl "github.com/oksasatya/go-user-registration/pkg/mailer/templates"
)

func TestEnsureRecipientAndEmail(t *testing.T) {
	job := mailer.EmailJob{To: "a@b.com"}
	EnsureRecipientAndEmail(&job)
	assert.Equal(t, "a@b.com", job.Data["Email"])
	assert.Equal(t, "a@b.com", job.Data["RecipientEmail"])

	job = mailer.EmailJob{To: "a@b.com", Data: map[string]any{"Email": "other@b.com", "RecipientEmail": ""}}
	EnsureRecipientAndEmail(&job)
	assert.Equal(t, "other@b.com", job.Data["Email"])
	assert.Equal(t, "a@b.com", job.Data["RecipientEmail"])
}

func TestMapLegacyTemplate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"registration", mailtpl.Welcome},
		{" USER_REGISTERED ", mailtpl.Welcome},
		{"register", mailtpl.Welcome},
		{"Welcome", mailtpl.Welcome},
		{"other", "other"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			job := mailer.EmailJob{Template: tc.in}
			MapLegacyTemplate(&job)
			assert.Equal(t, tc.want, job.Template)
			assert.Equal(t, tc.want, job.Data["Type"])
		})
	}
}

func TestMapLegacyTemplateKeepsType(t *testing.T) {
	job := mailer.EmailJob{Template: "register", Data: map[string]any{"Type": "custom"}}
	MapLegacyTemplate(&job)
	assert.Equal(t, "custom", job.Data["Type"])

	raw := mailer.EmailJob{Subject: "hi"}
	MapLegacyTemplate(&raw)
	assert.Equal(t, "", raw.Template)
	assert.Nil(t, raw.Data)
}
