package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/logger"
	"github.com/visionhut/visionhut-backend/pkg/metrics"
)

const defaultPublishTimeout = 5 * time.Second

// publisher abstracts the Pub/Sub publisher handle so the recorder can be
// tested without a live broker.
type publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(ctx context.Context) (string, error)
}

// Recorder writes calculation audits to Postgres and publishes the matching
// event. Both sinks are best-effort; failures are logged and counted, never
// returned to the caller.
type Recorder struct {
	repo    Repository
	pub     publisher
	topic   string
	metrics *metrics.CalculationMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewRecorder builds the audit recorder. The publisher may be nil when the
// process runs without Pub/Sub; the database sink is required.
func NewRecorder(repo Repository, pub *gcppubsub.Publisher, topic string, calcMetrics *metrics.CalculationMetrics, logg *logger.Logger) (*Recorder, error) {
	if repo == nil {
		return nil, errors.New("audit repository is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Recorder{
		repo:    repo,
		pub:     newGCPPublisher(pub),
		topic:   topic,
		metrics: calcMetrics,
		logg:    logg,
		now:     time.Now,
	}, nil
}

// Record persists the audit row and publishes the calculation event. It never
// returns an error; the calculation response must not depend on audit health.
func (r *Recorder) Record(ctx context.Context, audit *models.CalculationAudit) {
	if audit == nil {
		return
	}
	if audit.ID == uuid.Nil {
		audit.ID = uuid.New()
	}

	if err := r.repo.Insert(ctx, audit); err != nil {
		r.metrics.IncAuditFailure("db")
		r.logg.Error(r.auditCtx(ctx, audit), "calculation audit insert failed", err)
	}

	if r.pub == nil {
		return
	}
	if err := r.publish(ctx, audit); err != nil {
		r.metrics.IncAuditFailure("pubsub")
		r.logg.Error(r.auditCtx(ctx, audit), "calculation event publish failed", err)
	}
}

func (r *Recorder) publish(ctx context.Context, audit *models.CalculationAudit) error {
	event := eventFromAudit(audit, r.now())
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &gcppubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"audit_id":    event.AuditID,
			"occurred_at": event.OccurredAt.Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, defaultPublishTimeout)
	defer cancel()
	result := r.pub.Publish(publishCtx, msg)
	if result == nil {
		return errors.New("publisher returned nil result")
	}
	_, err = result.Get(publishCtx)
	return err
}

func (r *Recorder) auditCtx(ctx context.Context, audit *models.CalculationAudit) context.Context {
	fields := map[string]any{
		"audit_id":    audit.ID.String(),
		"frame_brand": audit.FrameBrand,
	}
	if r.topic != "" {
		fields["topic"] = r.topic
	}
	return r.logg.WithFields(ctx, fields)
}

func newGCPPublisher(p *gcppubsub.Publisher) publisher {
	if p == nil {
		return nil
	}
	return &gcpPublisher{Publisher: p}
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return p.Publisher.Publish(ctx, msg)
}
