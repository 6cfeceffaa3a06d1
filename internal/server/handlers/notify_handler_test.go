package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/poultry-stock/internal/domain/models"
)

type stubNotifier struct {
	sent []models.OutboundMessageRequest
	err  error
}

func (n *stubNotifier) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, req)
	return nil
}

func (n *stubNotifier) NotifyReport(context.Context, models.DailyStockReport) error {
	return n.err
}

func TestSendMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{name: "accepted", body: `{"message":"feed delivered"}`, want: http.StatusAccepted},
		{name: "missing message", body: `{"to":"221"}`, want: http.StatusBadRequest},
		{name: "send failure", body: `{"message":"x"}`, err: errors.New("down"), want: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &stubNotifier{err: tt.err}
			r := gin.New()
			r.POST("/notify", NewNotifyHandler(n, nil).SendMessage)

			rec := serve(r, http.MethodPost, "/notify", []byte(tt.body))
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusAccepted {
				assert.Len(t, n.sent, 1)
			}
		})
	}
}
