package messaging

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	SubjectArtworkCreated = "artwork.created"
	SubjectArtworkUpdated = "artwork.updated"
	SubjectArtworkDeleted = "artwork.deleted"
	SubjectUserRegistered = "user.registered"
	SubjectUserDeleted    = "user.deleted"
	SubjectListCreated    = "list.created"
	SubjectListUpdated    = "list.updated"
	SubjectListDeleted    = "list.deleted"
)

// Event is the envelope published for every catalog change.
type Event struct {
	ID      string    `json:"id"`
	Subject string    `json:"subject"`
	Time    time.Time `json:"time"`
	Data    any       `json:"data"`
}

func NewEvent(subject string, data any) Event {
	return Event{
		ID:      uuid.NewString(),
		Subject: subject,
		Time:    time.Now().UTC(),
		Data:    data,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Fanout delivers each event to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
