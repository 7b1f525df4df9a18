package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/choudharyanish1236-cloud/retail-task-manager/pkg/logger"

	"github.com/rs/zerolog"
)

// Messenger delivers a text payload to a phone number. The reminder
// workflow treats delivery as fire-and-forget; no confirmation is awaited.
type Messenger interface {
	Send(ctx context.Context, phone, message string) error
}

// WhatsAppMessenger posts reminders to a WhatsApp gateway.
type WhatsAppMessenger struct {
	gatewayURL string
	client     *http.Client
	log        zerolog.Logger
}

func NewWhatsAppMessenger(gatewayURL string) *WhatsAppMessenger {
	return &WhatsAppMessenger{
		gatewayURL: gatewayURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		log:        logger.WithComponent("whatsapp"),
	}
}

func (m *WhatsAppMessenger) Send(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}
	m.log.Debug().Str("phone", phone).Msg("Reminder handed to gateway")
	return nil
}

// Disabled is used when no gateway is configured; sends vanish silently.
type Disabled struct{}

func (Disabled) Send(context.Context, string, string) error { return nil }
