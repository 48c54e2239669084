package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/pkg/errs"
)

// SMSChannel delivers over an HTTP SMS provider. The destination is
// normalized to E.164 before the call; a number that cannot be normalized
// is a terminal failure, not a retry candidate.
type SMSChannel struct {
	providerURL string
	apiKey      string
	httpClient  *http.Client
}

// NewSMSChannel creates the SMS channel against the given provider.
func NewSMSChannel(providerURL, apiKey string, httpClient *http.Client) *SMSChannel {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SMSChannel{
		providerURL: providerURL,
		apiKey:      apiKey,
		httpClient:  httpClient,
	}
}

// Name identifies the channel.
func (c *SMSChannel) Name() notification.Channel {
	return notification.ChannelSMS
}

// smsRequest is the provider wire format.
type smsRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// smsResponse is the provider's acknowledgement.
type smsResponse struct {
	MessageID string `json:"message_id"`
}

// Send posts the message to the provider. Provider 408/429/5xx and
// network errors are marked transient; other provider rejections are
// terminal.
func (c *SMSChannel) Send(ctx context.Context, target Target, payload Payload) (SendResult, error) {
	to, err := NormalizePhone(target.Phone)
	if err != nil {
		return SendResult{}, err
	}

	body, err := json.Marshal(smsRequest{To: to, Body: payload.Body})
	if err != nil {
		return SendResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.providerURL, bytes.NewReader(body))
	if err != nil {
		return SendResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SendResult{}, MarkTransient(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var ack smsResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&ack); decodeErr != nil {
			// Provider accepted the message; a broken ack body only
			// costs us the message ID.
			return SendResult{}, nil
		}
		return SendResult{ProviderMessageID: ack.MessageID}, nil

	case resp.StatusCode == http.StatusRequestTimeout,
		resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode >= 500:
		return SendResult{}, MarkTransient(providerError(resp))

	default:
		return SendResult{}, providerError(resp)
	}
}

func providerError(resp *http.Response) error {
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("sms provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
}

// NormalizePhone reduces a phone number to E.164: leading plus, digits
// only, 8 to 15 digits. "00" international prefixes are rewritten to "+".
func NormalizePhone(raw string) (string, error) {
	if raw == "" {
		return "", errs.NewValueIsRequiredError("phone number")
	}

	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	number := digits.String()
	if strings.HasPrefix(number, "00") {
		number = number[2:]
	}

	if len(number) < 8 || len(number) > 15 {
		return "", errs.NewValueIsInvalidError("phone number " + raw)
	}

	return "+" + number, nil
}
