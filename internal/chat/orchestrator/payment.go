package orchestrator

import (
	"context"
	"fmt"
	"time"

	"horticulture-assistant/internal/market"
)

const paymentConfirmTimeout = 10 * time.Second

// schedulePaymentConfirmation simulates the cash-on-delivery payment step:
// after the configured delay the order is marked confirmed and a follow-up
// assistant message lands in the session history, pushed out over the
// notifier. Fire-and-forget relative to the originating turn.
func (o *Orchestrator) schedulePaymentConfirmation(sessionID, orderID string) {
	if orderID == "" {
		return
	}

	time.AfterFunc(o.cfg.PaymentDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), paymentConfirmTimeout)
		defer cancel()

		if err := o.market.ConfirmOrder(ctx, orderID); err != nil {
			o.l.Errorf(ctx, "%s: order %s: %v", logPrefixPayment, orderID, err)
			return
		}

		msg := fmt.Sprintf(msgPaymentConfirmed, orderID)
		if _, err := o.sessions.AppendMessage(ctx, sessionID, "assistant", msg); err != nil {
			o.l.Errorf(ctx, "%s: session %s: persist: %v", logPrefixPayment, sessionID, err)
			return
		}
		o.notifier.Push(sessionID, TextReply(msg))
	})
}

func orderIDOf(data interface{}) string {
	receipt, ok := data.(market.OrderReceipt)
	if !ok {
		return ""
	}
	return receipt.OrderID
}
