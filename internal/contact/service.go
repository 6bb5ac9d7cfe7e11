package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSendFailed wraps relay failures returned by Submit.
var ErrSendFailed = errors.New("message could not be sent")

// Recorder stores the outcome of a submission. It never sees the message.
type Recorder interface {
	RecordContact(ctx context.Context, id string, sent bool, at time.Time) error
}

// Result identifies an accepted submission.
type Result struct {
	ID string
}

type Service struct {
	relay    Relay
	recorder Recorder
	log      *zap.Logger
	now      func() time.Time
}

// NewService builds a service sending through relay. recorder may be nil.
func NewService(relay Relay, recorder Recorder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{relay: relay, recorder: recorder, log: log, now: time.Now}
}

// Submit validates s and relays it. Validation failures are returned as
// ValidationErrors without contacting the relay; relay failures wrap
// ErrSendFailed.
func (svc *Service) Submit(ctx context.Context, s Submission) (Result, error) {
	s = s.Normalize()
	if err := Validate(s); err != nil {
		svc.log.Debug("Contact submission rejected", zap.Error(err))
		return Result{}, err
	}

	id := uuid.NewString()
	log := svc.log.With(zap.String("id", id))

	err := svc.relay.Send(ctx, s)
	svc.record(ctx, log, id, err == nil)
	if err != nil {
		log.Warn("Contact submission failed", zap.Error(err))
		return Result{ID: id}, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	log.Info("Contact submission sent", zap.String("project_type", s.ProjectType))
	return Result{ID: id}, nil
}

func (svc *Service) record(ctx context.Context, log *zap.Logger, id string, sent bool) {
	if svc.recorder == nil {
		return
	}
	if err := svc.recorder.RecordContact(ctx, id, sent, svc.now()); err != nil {
		log.Warn("Unable to record contact outcome", zap.Error(err))
	}
}
