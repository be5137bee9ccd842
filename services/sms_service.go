package services

import (
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// SMSSender is the outbound text-message capability. Send reports whether
// the provider accepted the message; it must never panic or block forever.
type SMSSender interface {
	Send(to, body string) bool
}

// TwilioService sends SMS through Twilio. Without credentials it stays in a
// disabled state where every Send reports false, so signups and dispatch
// keep working on an unconfigured deployment.
type TwilioService struct {
	client *twilio.RestClient
	from   string
	log    *zap.Logger
}

// Per-send cap so one hanging provider call cannot stall the dispatch loop.
const sendTimeout = 15 * time.Second

func NewTwilioService(accountSid, authToken, from string, log *zap.Logger) *TwilioService {
	s := &TwilioService{from: from, log: log}
	if accountSid == "" || authToken == "" || from == "" {
		log.Warn("twilio not configured, SMS sending disabled")
		return s
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	client.Client.SetTimeout(sendTimeout)
	s.client = client
	return s
}

func (s *TwilioService) Send(to, body string) bool {
	if s.client == nil {
		return false
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(body)
	params.SetFrom(s.from)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		s.log.Warn("failed to send SMS", zap.String("to", to), zap.Error(err))
		return false
	}
	if resp.Sid != nil {
		s.log.Debug("SMS sent", zap.String("to", to), zap.String("sid", *resp.Sid))
	}
	return true
}
