package driver

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"

	"orderdesk/internal/config"
	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

const (
	homeURL = "https://web.whatsapp.com"

	// Composer box of an open chat. The data-tab attribute has been stable
	// across WhatsApp Web revisions; everything else in that DOM churns.
	messageBoxXPath = `//div[@contenteditable="true" and @data-tab="10"]`

	// Time given to the home tab to restore the persisted login before the
	// first chat tab is opened.
	sessionWarmup = 15 * time.Second
)

// ChromeSessionOpener creates WhatsApp Web sessions on a persistent Chrome
// profile, so the QR-code login from a previous run is reused.
type ChromeSessionOpener struct {
	cfg    config.WhatsAppConfig
	logger *zap.Logger
}

func NewChromeSessionOpener(cfg config.WhatsAppConfig, logger *zap.Logger) *ChromeSessionOpener {
	return &ChromeSessionOpener{
		cfg:    cfg,
		logger: logger,
	}
}

// Open launches the browser and navigates the home tab to WhatsApp Web. Any
// failure here is fatal for the whole campaign and is reported as a
// SessionError.
func (o *ChromeSessionOpener) Open(ctx context.Context, headless bool) (*ChromeSession, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(o.cfg.ProfileDir),
		chromedp.WindowSize(1920, 1080),
		chromedp.Flag("headless", headless),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx, chromedp.Navigate(homeURL)); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, apperrors.NewSessionError("opening whatsapp web session", err)
	}

	o.logger.Info("whatsapp session opened",
		zap.String("profileDir", o.cfg.ProfileDir),
		zap.Bool("headless", headless),
	)

	session := &ChromeSession{
		browserCtx:  browserCtx,
		cancelAlloc: cancelAlloc,
		waitTimeout: o.cfg.InputWaitTimeout,
		pacing:      Pacing{Min: o.cfg.PacingMin, Max: o.cfg.PacingMax},
		logger:      o.logger,
	}

	// Let the persisted login restore before any chat deep link is opened.
	session.pauseFor(browserCtx, sessionWarmup)

	return session, nil
}

// ChromeSession owns one live browser for the duration of a campaign run.
// It is not safe for concurrent use: the simulated keystrokes target whichever
// tab holds focus.
type ChromeSession struct {
	browserCtx  context.Context
	cancelAlloc context.CancelFunc
	waitTimeout time.Duration
	pacing      Pacing
	logger      *zap.Logger
}

// Deliver opens a chat tab for the recipient's phone number, waits for the
// message box, types the message in two chunks and submits each line. The tab
// is closed and focus returns to the home tab on every exit path.
func (s *ChromeSession) Deliver(ctx context.Context, rec domain.Recipient, text string) error {
	tabCtx, closeTab := chromedp.NewContext(s.browserCtx)
	// Closing the tab context tears the tab down and leaves the home tab as
	// the active target, on success and failure alike.
	defer closeTab()

	link := homeURL + "/send?phone=" + url.QueryEscape(rec.Phone)
	if err := chromedp.Run(tabCtx, chromedp.Navigate(link)); err != nil {
		return fmt.Errorf("opening chat for %s: %w", rec.Phone, err)
	}
	s.pacing.pause(ctx)

	// Dominant failure mode: the box never appears (chat still loading,
	// invalid or blocked number, remote rate limiting). Bounded wait.
	waitCtx, cancelWait := context.WithTimeout(tabCtx, s.waitTimeout)
	defer cancelWait()
	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(messageBoxXPath, chromedp.BySearch)); err != nil {
		return fmt.Errorf("message box not found for %s: %w", rec.Phone, err)
	}

	if err := chromedp.Run(tabCtx, chromedp.Click(messageBoxXPath, chromedp.BySearch)); err != nil {
		return fmt.Errorf("focusing message box for %s: %w", rec.Phone, err)
	}
	s.pacing.pause(ctx)

	for _, chunk := range splitChunks(text) {
		for _, line := range strings.Split(chunk, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if err := chromedp.Run(tabCtx,
				chromedp.SendKeys(messageBoxXPath, line, chromedp.BySearch),
				chromedp.KeyEvent(kb.Enter),
			); err != nil {
				return fmt.Errorf("sending message to %s: %w", rec.Phone, err)
			}
			s.pacing.pause(ctx)
		}
		s.pacing.pause(ctx)
	}

	s.logger.Debug("message delivered", zap.String("phone", rec.Phone), zap.Uint("orderId", rec.OrderID))
	return nil
}

// Close shuts the browser down gracefully, then releases the allocator.
func (s *ChromeSession) Close() error {
	err := chromedp.Cancel(s.browserCtx)
	s.cancelAlloc()
	if err != nil {
		return fmt.Errorf("closing whatsapp session: %w", err)
	}
	return nil
}

func (s *ChromeSession) pauseFor(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// splitChunks partitions the composed text into at most two keystroke chunks:
// greeting plus intro first, then everything else.
func splitChunks(text string) []string {
	paragraphs := strings.Split(text, "\n\n")
	if len(paragraphs) <= 2 {
		return []string{strings.Join(paragraphs, "\n")}
	}
	return []string{
		strings.Join(paragraphs[:2], "\n"),
		strings.Join(paragraphs[2:], "\n"),
	}
}
