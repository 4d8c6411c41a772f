package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/marianorefrig/mariano_api/internal/config"
	"github.com/marianorefrig/mariano_api/internal/models"
	"github.com/marianorefrig/mariano_api/internal/repository"
	"github.com/marianorefrig/mariano_api/internal/sse"
)

// SMSSender delivers a text message.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(cfg config.TwilioConfig) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		from: cfg.FromNumber,
	}
}

// SendSMS implements SMSSender.
func (t *TwilioSender) SendSMS(_ context.Context, to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	if resp.Sid != nil {
		log.Debug().Str("sid", *resp.Sid).Msg("sms sent")
	}
	return nil
}

// AlertService warns the shop owner when products fall to their minimum
// stock. A product is reported once until it is restocked above the minimum.
type AlertService struct {
	productRepo *repository.ProductRepository
	sender      SMSSender
	to          string
	notifier    sse.Notifier

	mu       sync.Mutex
	notified map[string]bool
}

func NewAlertService(productRepo *repository.ProductRepository, sender SMSSender, to string) *AlertService {
	return &AlertService{
		productRepo: productRepo,
		sender:      sender,
		to:          to,
		notified:    make(map[string]bool),
		notifier:    sse.NopNotifier{},
	}
}

// SetNotifier sets the SSE notifier for live dashboard updates.
func (s *AlertService) SetNotifier(notifier sse.Notifier) {
	s.notifier = notifier
}

// CheckLowStock sends one message listing newly low products and returns how
// many products it reported.
func (s *AlertService) CheckLowStock(ctx context.Context) (int, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var fresh []models.Product
	low := make(map[string]bool)
	for _, p := range LowStock(products) {
		low[p.ID] = true
		if !s.notified[p.ID] {
			fresh = append(fresh, p)
		}
	}
	// Restocked products are reported again the next time they run low.
	for id := range s.notified {
		if !low[id] {
			delete(s.notified, id)
		}
	}
	if len(fresh) == 0 {
		return 0, nil
	}
	s.notifier.NotifyLowStock(fresh)

	if s.sender != nil {
		if err := s.sender.SendSMS(ctx, s.to, lowStockMessage(fresh)); err != nil {
			return 0, err
		}
	}
	for _, p := range fresh {
		s.notified[p.ID] = true
	}
	log.Info().Int("products", len(fresh)).Msg("low stock alert sent")
	return len(fresh), nil
}

func lowStockMessage(products []models.Product) string {
	var b strings.Builder
	b.WriteString("Estoque baixo:")
	for _, p := range products {
		label := p.Name
		if p.Code != "" {
			label = p.Code + " " + p.Name
		}
		fmt.Fprintf(&b, "\n- %s: %d (mínimo %d)", label, p.Quantity, p.MinStock)
	}
	return b.String()
}
