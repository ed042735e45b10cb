package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/missaelcorm/notas-service/internal/bus"
	"github.com/missaelcorm/notas-service/pkg/logger"
	"github.com/missaelcorm/notas-service/pkg/metrics"
)

// EmailChannel delivers a rendered notification email.
type EmailChannel interface {
	Send(ctx context.Context, to, subject, body string) (string, error)
}

// EmailConsumer subscribes to note-created events and performs delivery:
// it composes the download link from the origin URL and hands the email
// to the channel.
type EmailConsumer struct {
	channel     EmailChannel
	metrics     *metrics.Metrics
	log         *logger.Logger
	environment string
}

func NewEmailConsumer(channel EmailChannel, m *metrics.Metrics, log *logger.Logger, environment string) *EmailConsumer {
	return &EmailConsumer{
		channel:     channel,
		metrics:     m,
		log:         log,
		environment: environment,
	}
}

// Subscribe registers the consumer on the given topic.
func (c *EmailConsumer) Subscribe(b *bus.Bus, topic string) {
	b.Subscribe(topic, c.Handle)
}

// Handle processes one note-created event. Malformed events are dropped
// (retrying cannot fix them); channel failures return an error so the bus
// redelivers.
func (c *EmailConsumer) Handle(ctx context.Context, msg bus.Message) error {
	var event bus.NoteCreatedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.log.WithError(err).Warn("discarding malformed note-created event")
		return nil
	}
	if event.Email == "" || event.Folio == "" || event.RFC == "" {
		c.log.WithFolio(event.Folio).Warn("discarding incomplete note-created event")
		return nil
	}

	downloadURL := fmt.Sprintf("%s/notes/download?owner=%s&reference=%s",
		event.OriginURL, url.QueryEscape(event.RFC), url.QueryEscape(event.Folio))

	subject := fmt.Sprintf("Nueva Nota de Venta - Folio %s", event.Folio)
	body := c.renderBody(event, downloadURL)

	messageID, err := c.channel.Send(ctx, event.Email, subject, body)
	if err != nil {
		c.metrics.NotificationsFailed.Inc()
		c.log.WithFolio(event.Folio).WithError(err).Error("failed to send notification email")
		return err
	}

	c.metrics.NotificationsSent.Inc()
	c.log.WithFolio(event.Folio).WithField("message_id", messageID).Info("notification email sent")
	return nil
}

func (c *EmailConsumer) renderBody(event bus.NoteCreatedEvent, downloadURL string) string {
	var b strings.Builder
	b.WriteString("NOTA DE VENTA GENERADA\n\n")
	b.WriteString("Estimado cliente,\n\n")
	b.WriteString("Se ha generado una nueva nota de venta con los siguientes datos:\n\n")
	fmt.Fprintf(&b, "Folio: %s\n", event.Folio)
	fmt.Fprintf(&b, "RFC: %s\n", event.RFC)
	fmt.Fprintf(&b, "Fecha: %s\n\n", event.Timestamp.Format("02/01/2006 15:04"))
	b.WriteString("Para descargar su nota de venta, acceda al siguiente enlace:\n")
	b.WriteString(downloadURL)
	b.WriteString("\n\nGracias por su preferencia.\n\n---\n")
	b.WriteString("Este es un correo automático, por favor no responda a este mensaje.\n")
	fmt.Fprintf(&b, "Ambiente: %s\n", strings.ToUpper(c.environment))
	return b.String()
}

// logEmailChannel writes the email to the log instead of sending it.
// Used in local environments where no mail provider is configured.
type logEmailChannel struct {
	log *logger.Logger
}

func NewLogEmailChannel(log *logger.Logger) EmailChannel {
	return &logEmailChannel{log: log}
}

func (c *logEmailChannel) Send(ctx context.Context, to, subject, body string) (string, error) {
	c.log.WithField("to", to).WithField("subject", subject).Info("email delivery (log channel)")
	return fmt.Sprintf("log-%d", time.Now().UnixNano()), nil
}
