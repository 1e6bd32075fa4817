package contact

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Zachkp/folio/internal/logging"
)

// Archive stores received messages.
type Archive interface {
	SaveMessage(ctx context.Context, name, email, message string) (int64, error)
	MarkDelivered(ctx context.Context, id int64) error
}

// Mailer forwards a message to the site owner.
type Mailer interface {
	Send(ctx context.Context, s Submission) error
}

// Service is the backend behind POST /api/contact/submit. It also satisfies
// Submitter so the form can use it in-process.
type Service struct {
	Archive Archive
	// Mailer may be nil, in which case messages are only archived.
	Mailer Mailer
	Log    *logging.Logger
}

// Submit validates, archives and mails s.
func (svc *Service) Submit(ctx context.Context, s Submission) error {
	s = s.Normalize()
	if err := Validate(s); err != nil {
		return err
	}

	var id int64
	if svc.Archive != nil {
		var err error
		id, err = svc.Archive.SaveMessage(ctx, s.Name, s.Email, s.Message)
		if err != nil {
			return errors.Wrap(err, "archive message")
		}
	}

	if svc.Mailer == nil {
		svc.Log.Warn("smtp not configured, message archived only", "message_id", id)
		return nil
	}

	if err := svc.Mailer.Send(ctx, s); err != nil {
		return errors.Wrap(err, "send message")
	}

	if svc.Archive != nil {
		if err := svc.Archive.MarkDelivered(ctx, id); err != nil {
			svc.Log.Error(err, "failed to mark message delivered", "message_id", id)
		}
	}

	svc.Log.Info("contact message delivered", "message_id", id)
	return nil
}
