package usecase

import (
	"context"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

type TemplateStore interface {
	GetAll(ctx context.Context) (map[string][]string, error)
}

type RecipientStore interface {
	FindByMessageType(ctx context.Context, t domain.MessageType) ([]domain.Recipient, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) error
}

type Composer interface {
	Compose(rec domain.Recipient, t domain.MessageType, templates map[string][]string) string
}

// Session is one exclusive browser automation session. It is owned by a
// single campaign run; no concurrent use.
type Session interface {
	Deliver(ctx context.Context, rec domain.Recipient, text string) error
	Close() error
}

type SessionOpener interface {
	Open(ctx context.Context, headless bool) (Session, error)
}

// SessionOpenerFunc adapts a function to the SessionOpener interface.
type SessionOpenerFunc func(ctx context.Context, headless bool) (Session, error)

func (f SessionOpenerFunc) Open(ctx context.Context, headless bool) (Session, error) {
	return f(ctx, headless)
}

type RunOptions struct {
	Headless bool
}

// RunResult aggregates one campaign pass. Processed counts every attempted
// recipient, including the failed ones; FailedNumbers lists the phone numbers
// whose delivery could not be confirmed.
type RunResult struct {
	Processed     int
	FailedNumbers []string
}

// SendCampaignUseCase orchestrates one outbound campaign: select recipients
// for a message type, drive the shared browser session through one delivery
// attempt each, and apply the type's status transition on confirmed sends.
type SendCampaignUseCase struct {
	templates  TemplateStore
	recipients RecipientStore
	composer   Composer
	sessions   SessionOpener
	logger     *zap.Logger
	batchSize  int
}

func NewSendCampaignUseCase(
	templates TemplateStore,
	recipients RecipientStore,
	composer Composer,
	sessions SessionOpener,
	logger *zap.Logger,
	batchSize int,
) *SendCampaignUseCase {
	if batchSize < 1 {
		batchSize = 1
	}
	return &SendCampaignUseCase{
		templates:  templates,
		recipients: recipients,
		composer:   composer,
		sessions:   sessions,
		logger:     logger,
		batchSize:  batchSize,
	}
}

// Run executes one campaign pass. Recipients are processed strictly
// sequentially: the session holds one mutable browser context and cannot
// serve two chats at once. Per-recipient failures are recorded and skipped,
// never retried within the run; only session setup aborts the whole campaign.
// On cancellation the partial result accumulated so far is returned alongside
// the context error.
func (uc *SendCampaignUseCase) Run(ctx context.Context, t domain.MessageType, opts RunOptions) (*RunResult, error) {
	uc.logger.Info("campaign started", zap.String("messageType", t.String()))

	templates, err := uc.templates.GetAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("loading message templates", err)
	}

	recipients, err := uc.recipients.FindByMessageType(ctx, t)
	if err != nil {
		return nil, apperrors.NewInternalError("selecting recipients", err)
	}

	session, err := uc.sessions.Open(ctx, opts.Headless)
	if err != nil {
		if _, ok := apperrors.IsSessionError(err); !ok {
			err = apperrors.NewSessionError("opening automation session", err)
		}
		uc.logger.Error("session setup failed", zap.Error(err))
		return nil, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			uc.logger.Warn("closing session", zap.Error(err))
		}
	}()

	result := &RunResult{FailedNumbers: []string{}}
	transition, hasTransition := t.Transition()

	for start := 0; start < len(recipients); start += uc.batchSize {
		end := min(start+uc.batchSize, len(recipients))
		uc.logger.Debug("processing batch", zap.Int("from", start), zap.Int("to", end), zap.Int("total", len(recipients)))

		for _, rec := range recipients[start:end] {
			if err := ctx.Err(); err != nil {
				uc.logger.Warn("campaign cancelled", zap.Int("processed", result.Processed), zap.Int("total", len(recipients)))
				return result, err
			}

			text := uc.composer.Compose(rec, t, templates)

			if err := session.Deliver(ctx, rec, text); err != nil {
				uc.logger.Warn("delivery failed",
					zap.String("phone", rec.Phone),
					zap.String("orderNumber", rec.OrderNumber),
					zap.Error(err),
				)
				result.FailedNumbers = append(result.FailedNumbers, rec.Phone)
				result.Processed++
				continue
			}

			result.Processed++

			if hasTransition {
				// Each transition is its own committed write so a later
				// failure leaves earlier recipients durably updated.
				if err := uc.recipients.UpdateStatus(ctx, rec.OrderID, transition); err != nil {
					uc.logger.Error("status transition failed after delivery",
						zap.Uint("orderId", rec.OrderID),
						zap.String("status", transition),
						zap.Error(err),
					)
				}
			}
		}
	}

	uc.logger.Info("campaign finished",
		zap.String("messageType", t.String()),
		zap.Int("processed", result.Processed),
		zap.Int("failed", len(result.FailedNumbers)),
	)

	return result, nil
}
