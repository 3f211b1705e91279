package trustsdk

import (
	"context"
	"net/http"
)

// SendPaymentNotification posts n to the payment webhook, as the payment
// provider would.
func (c *Client) SendPaymentNotification(ctx context.Context, n PaymentNotification) (*PaymentWebhookResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/payments/webhook", n, nil)
	if err != nil {
		return nil, err
	}

	var out PaymentWebhookResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
