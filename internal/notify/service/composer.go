package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
)

// RandSource is the subset of math/rand used for fragment selection,
// injectable so tests can pin the draw.
type RandSource interface {
	Intn(n int) int
}

// Per-slot fallbacks. Composition must never fail: a category that is missing
// from the template set, or present but empty, resolves to these.
const (
	defaultGreeting = "Hello"
	defaultIntro    = "We are reaching out regarding your recent order."
	defaultLine     = "We received your order for {product}, order number {order_num}."
	defaultRequest  = "Please confirm your order so we can proceed."
	defaultClosing  = "Thank you."
)

// Composer assembles one outbound message from a recipient snapshot and the
// template set, drawing one fragment per slot at random from the message
// type's categories.
type Composer struct {
	rand   RandSource
	logger *zap.Logger
}

func NewComposer(rand RandSource, logger *zap.Logger) *Composer {
	return &Composer{
		rand:   rand,
		logger: logger,
	}
}

// Compose builds the five-slot message text: greeting with the recipient's
// name, intro, main line, call to action, closing, joined by blank lines.
// Tracking messages embed the literal tracking code as the main line instead
// of a template draw. Deterministic for a fixed random source.
func (c *Composer) Compose(rec domain.Recipient, t domain.MessageType, templates map[string][]string) string {
	cats := t.Categories()
	sub := c.replacer(rec)

	greeting := fmt.Sprintf("%s, *%s*,", c.pick(templates, cats.Greeting, defaultGreeting), rec.DisplayName())
	intro := sub.Replace(c.pick(templates, cats.Intro, defaultIntro))

	var line string
	if cats.Line == "" {
		line = fmt.Sprintf("Your order %s has been shipped. Tracking number: %s.", rec.OrderNumber, rec.TrackingNumber)
	} else {
		line = sub.Replace(c.pick(templates, cats.Line, defaultLine))
	}

	request := sub.Replace(c.pick(templates, cats.Request, defaultRequest))
	closing := sub.Replace(c.pick(templates, cats.Closing, defaultClosing))

	return strings.Join([]string{greeting, intro, line, request, closing}, "\n\n")
}

func (c *Composer) pick(templates map[string][]string, category, fallback string) string {
	fragments := templates[category]
	if len(fragments) == 0 {
		c.logger.Debug("template category empty, using default", zap.String("category", category))
		return fallback
	}
	return fragments[c.rand.Intn(len(fragments))]
}

func (c *Composer) replacer(rec domain.Recipient) *strings.Replacer {
	return strings.NewReplacer(
		"{product}", rec.ProductName(),
		"{order_num}", rec.OrderNumber,
		"{price}", fmt.Sprintf("%.2f", rec.Total),
	)
}
