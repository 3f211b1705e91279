package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/aussiebroadwan/trustgate/internal/trust/service"
	"github.com/aussiebroadwan/trustgate/pkg/httpx"
	"github.com/aussiebroadwan/trustgate/pkg/paysig"
	"github.com/aussiebroadwan/trustgate/pkg/slogx"
	"github.com/aussiebroadwan/trustgate/pkg/trustsdk"
)

type PaymentWebhookHandler struct {
	Payments *service.PaymentService
}

// ServeHTTP verifies a payment notification.
//
//	@Summary		Payment webhook
//	@Description	Verifies the provider signature over order id, status code and gross amount, then reports the normalized status.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		trustsdk.PaymentNotification	true	"Provider notification"
//	@Success		200		{object}	trustsdk.PaymentWebhookResponse	"Normalized status"
//	@Failure		400		{object}	trustsdk.ErrorResponse			"Invalid request"
//	@Failure		403		{object}	trustsdk.ErrorResponse			"Signature mismatch"
//	@Router			/v1/payments/webhook [post].
func (h *PaymentWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Providers add fields over time, so unknown fields are accepted here.
	var n paysig.Notification
	if err := json.NewDecoder(io.LimitReader(r.Body, httpx.MaxBodyBytes)).Decode(&n); err != nil {
		slogx.FromContext(r.Context()).Warn("bad webhook body", slogx.Err(err))
		trustsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if n.OrderID == "" || n.StatusCode == "" || n.GrossAmount == "" {
		trustsdk.NewAPIError(http.StatusBadRequest, trustsdk.ErrorCodeInvalidRequest,
			"order_id, status_code and gross_amount are required").WriteError(w)
		return
	}

	status, err := h.Payments.VerifyNotification(n)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("payment notification verified",
		"order_id", n.OrderID,
		"transaction_status", n.TransactionStatus,
		"status", status,
	)

	httpx.WriteJSON(w, http.StatusOK, trustsdk.PaymentWebhookResponse{
		OrderID: n.OrderID,
		Status:  status,
		Final:   status.Final(),
	})
}
