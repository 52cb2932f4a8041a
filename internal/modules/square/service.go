package square

import (
	"context"
	"time"

	"github.com/georgemunganga/hospo-ops/internal/logging"
	"github.com/sirupsen/logrus"
)

// Service verifies and records webhook deliveries.
type Service interface {
	// Receive records the delivery and reports whether its signature was valid.
	Receive(ctx context.Context, d Delivery) (bool, error)
}

type service struct {
	repo     Repository
	verifier *Verifier
	storeID  int
	now      func() time.Time
}

// NewService creates a webhook service. Every event is attributed to storeID.
func NewService(repo Repository, verifier *Verifier, storeID int) Service {
	return &service{repo: repo, verifier: verifier, storeID: storeID, now: time.Now}
}

func (s *service) Receive(ctx context.Context, d Delivery) (bool, error) {
	valid := !d.Truncated && s.verifier.Verify(d.Body, d.Signature)
	ev := &Event{
		StoreID:    s.storeID,
		EventType:  d.EventType,
		Signature:  d.Signature,
		Payload:    string(d.Body),
		ReceivedAt: s.now().UTC(),
		Processed:  valid,
	}
	if err := s.repo.Record(ctx, ev); err != nil {
		return false, err
	}

	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"event_id":   ev.ID,
		"event_type": ev.EventType,
	})
	switch {
	case d.Truncated:
		log.WithField("bytes", len(d.Body)).Warn("square webhook body too large; recorded truncated")
	case !s.verifier.Configured() && valid:
		log.Warn("square signature key not set; accepting unsigned webhook")
	case !s.verifier.Configured():
		log.Warn("square signature key not set; rejecting webhook")
	case !valid:
		log.WithField("signature", d.Signature).Warn("invalid square signature")
	default:
		log.Info("square webhook accepted")
	}
	return valid, nil
}
