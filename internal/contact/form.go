package contact

import (
	"context"

	"github.com/pkg/errors"
)

// Kind classifies a notification.
type Kind string

const (
	KindInfo       Kind = "info"
	KindSuccess    Kind = "success"
	KindError      Kind = "error"
	KindValidation Kind = "warning"
)

// Notification is a message surfaced to the visitor.
type Notification struct {
	Kind    Kind
	Message string
}

// Notifier receives notifications in the order they are raised.
type Notifier interface {
	Notify(Notification)
}

// Notifications collects notifications in order.
type Notifications []Notification

// Notify implements Notifier.
func (n *Notifications) Notify(x Notification) {
	*n = append(*n, x)
}

// Last returns the most recent notification.
func (n Notifications) Last() (Notification, bool) {
	if len(n) == 0 {
		return Notification{}, false
	}
	return n[len(n)-1], true
}

// Submitter delivers a validated submission.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// Form is the contact form state. Field tags match the posted form.
type Form struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Message string `form:"message"`
	// Submitting disables the submit control while a request is in flight.
	Submitting bool `form:"-"`
}

// Reset clears the three fields.
func (f *Form) Reset() {
	f.Name, f.Email, f.Message = "", "", ""
}

// Submission returns the trimmed form contents.
func (f *Form) Submission() Submission {
	return Submission{Name: f.Name, Email: f.Email, Message: f.Message}.Normalize()
}

// Submit validates the form and hands it to sub. Invalid input raises a
// validation notification without calling sub. A failed delivery raises a
// failure notification and keeps the fields; success clears them.
func (f *Form) Submit(ctx context.Context, sub Submitter, n Notifier) error {
	s := f.Submission()
	if err := Validate(s); err != nil {
		var vErr *ValidationError
		msg := MsgMissingFields
		if errors.As(err, &vErr) {
			msg = vErr.Message
		}
		n.Notify(Notification{Kind: KindValidation, Message: msg})
		return err
	}

	f.Submitting = true
	n.Notify(Notification{Kind: KindInfo, Message: MsgSending})
	err := sub.Submit(ctx, s)
	f.Submitting = false

	if err != nil {
		n.Notify(Notification{Kind: KindError, Message: MsgFailed})
		return errors.Wrap(err, "submit contact form")
	}

	f.Reset()
	n.Notify(Notification{Kind: KindSuccess, Message: MsgSent})
	return nil
}
