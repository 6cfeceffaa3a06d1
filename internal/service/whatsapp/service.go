package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultry-stock/internal/domain/models"
	"github.com/mamadbah2/poultry-stock/internal/service/reporting"
	client "github.com/mamadbah2/poultry-stock/pkg/clients/whatsapp"
)

const sendTimeout = 10 * time.Second

// ErrNoRecipient is returned when neither the request nor the configuration names a recipient.
var ErrNoRecipient = errors.New("no whatsapp recipient")

// Notifier pushes stock notifications to WhatsApp.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
	NotifyReport(ctx context.Context, report models.DailyStockReport) error
}

// MetaWhatsAppNotifier is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppNotifier struct {
	ownerID string
	client  client.Client
	logger  *zap.Logger
}

// NewMetaWhatsAppNotifier wires a new notifier. Messages without an explicit
// recipient go to ownerID.
func NewMetaWhatsAppNotifier(ownerID string, client client.Client, logger *zap.Logger) *MetaWhatsAppNotifier {
	n := &MetaWhatsAppNotifier{
		ownerID: ownerID,
		client:  client,
		logger:  logger,
	}
	if n.logger == nil {
		n.logger = zap.NewNop()
	}
	return n
}

// SendOutbound lets operators push quick notifications via HTTP.
func (n *MetaWhatsAppNotifier) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	to := req.To
	if to == "" {
		to = n.ownerID
	}
	return n.send(ctx, to, req.Message, req.PreviewURL)
}

// NotifyReport sends the closing summary of report to the owner.
func (n *MetaWhatsAppNotifier) NotifyReport(ctx context.Context, report models.DailyStockReport) error {
	if err := n.send(ctx, n.ownerID, reporting.FormatSummary(report), false); err != nil {
		return fmt.Errorf("notify report %s: %w", report.Date.Format(models.DateLayout), err)
	}
	return nil
}

func (n *MetaWhatsAppNotifier) send(ctx context.Context, to, body string, previewURL bool) error {
	if to == "" {
		return ErrNoRecipient
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	id, err := n.client.SendText(ctxWithTimeout, to, body, previewURL)
	if err != nil {
		return err
	}

	n.logger.Info("whatsapp message sent", zap.String("to", to), zap.String("message_id", id))
	return nil
}
