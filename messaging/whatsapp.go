package messaging

import (
	"context"
	"time"

	"github.com/Zamtas/Zamtas-EMS/logging"

	"github.com/sony/gobreaker"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender dispatches a single message to one recipient. Callers treat errors
// as best-effort failures: log and move on, never propagate.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// TwilioWhatsAppSender sends WhatsApp messages through the Twilio API,
// guarded by a circuit breaker so a flapping gateway does not hold up the
// request path or the sweep.
type TwilioWhatsAppSender struct {
	client  *twilio.RestClient
	from    string
	breaker *gobreaker.CircuitBreaker
}

func NewTwilioWhatsAppSender(accountSID, authToken, from string, timeout time.Duration) *TwilioWhatsAppSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	client.Client.SetTimeout(timeout)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "whatsapp-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &TwilioWhatsAppSender{
		client:  client,
		from:    from,
		breaker: breaker,
	}
}

func (s *TwilioWhatsAppSender) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &openapi.CreateMessageParams{}
	params.SetFrom("whatsapp:" + s.from)
	params.SetTo("whatsapp:" + to)
	params.SetBody(body)

	_, err := s.breaker.Execute(func() (interface{}, error) {
		return s.client.Api.CreateMessage(params)
	})
	return err
}
