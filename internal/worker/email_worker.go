package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-registration/pkg/helpers"
	"github.com/oksasatya/go-user-registration/pkg/mailer"
	mailtpl "github.com/oksasatya/go-user-registration/pkg/mailer/templates"
)

const sendTimeout = 15 * time.Second

// Decision says what to do with a delivery after handling it.
type Decision int

const (
	Ack Decision = iota
	Reject
	Requeue
)

func (d Decision) String() string {
	switch d {
	case Ack:
		return "ack"
	case Reject:
		return "reject"
	case Requeue:
		return "requeue"
	}
	return "unknown"
}

var errNoContent = errors.New("email job has neither template nor subject")

// Worker turns queued EmailJobs into sent emails.
type Worker struct {
	Sender mailer.Sender
	Logger *logrus.Logger
}

func New(sender mailer.Sender, logger *logrus.Logger) *Worker {
	return &Worker{Sender: sender, Logger: logger}
}

// Handle decodes, renders and sends one job. Malformed or unrenderable jobs
// are rejected; send failures are requeued.
func (w *Worker) Handle(ctx context.Context, body []byte) Decision {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		helpers.LogWarn(w.Logger, "bad email message", err, nil)
		return Reject
	}
	if strings.TrimSpace(job.To) == "" {
		helpers.LogWarn(w.Logger, "email job without recipient", nil, nil)
		return Reject
	}

	helpers.EnsureRecipientAndEmail(&job)
	helpers.MapLegacyTemplate(&job)

	subject, text, html, err := render(job)
	if err != nil {
		helpers.LogWarn(w.Logger, "render email failed", err, logrus.Fields{"template": job.Template})
		return Reject
	}

	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		helpers.LogWarn(w.Logger, "send email failed", err, logrus.Fields{"to": job.To})
		return Requeue
	}
	helpers.LogInfo(w.Logger, "email sent", logrus.Fields{"to": job.To, "template": job.Template})
	return Ack
}

func render(job mailer.EmailJob) (subject, text, html string, err error) {
	if job.Template != "" {
		return mailtpl.Render(job.Template, job.Data)
	}
	if job.Subject == "" || (job.Text == "" && job.HTML == "") {
		return "", "", "", errNoContent
	}
	return job.Subject, job.Text, job.HTML, nil
}

// Run handles deliveries until ctx is done or the channel closes.
func (w *Worker) Run(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var err error
			switch w.Handle(ctx, msg.Body) {
			case Ack:
				err = msg.Ack(false)
			case Reject:
				err = msg.Nack(false, false)
			case Requeue:
				err = msg.Nack(false, true)
			}
			if err != nil {
				helpers.LogError(w.Logger, "settle delivery failed", err, nil)
			}
		}
	}
}
