package notify

import (
	"context"
	"database/sql"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/config"
	"orderdesk/internal/notify/controller"
	"orderdesk/internal/notify/driver"
	"orderdesk/internal/notify/repository"
	"orderdesk/internal/notify/service"
	"orderdesk/internal/notify/usecase"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.SendController {
	recipientRepo := repository.NewMySQLRecipientRepository(db)
	templateRepo := repository.NewMySQLTemplateRepository(db)

	composer := service.NewComposer(rand.New(rand.NewSource(time.Now().UnixNano())), logger)

	opener := driver.NewChromeSessionOpener(cfg.WhatsApp, logger)

	sendCampaign := usecase.NewSendCampaignUseCase(
		templateRepo,
		recipientRepo,
		composer,
		usecase.SessionOpenerFunc(func(ctx context.Context, headless bool) (usecase.Session, error) {
			return opener.Open(ctx, headless)
		}),
		logger,
		cfg.WhatsApp.BatchSize,
	)

	return controller.NewSendController(sendCampaign, logger)
}
