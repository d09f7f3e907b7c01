package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/exam-service/internal/config"
	"github.com/spec-kit/exam-service/internal/events"
)

// NotificationService logs domain events and forwards them to an optional
// webhook. This is the operator-side diagnostics channel; callers only ever
// see the generic error surface.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotifyConfig
	client     *http.Client
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotifyConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventQuestionsIngested, n.handleQuestionsIngested)
	n.dispatcher.Subscribe(events.EventExamScored, n.handleExamScored)
}

func (n *NotificationService) handleQuestionsIngested(ctx context.Context, event events.Event) error {
	n.logger.Info("QuestionsIngested",
		zap.String("subject", event.Subject),
		zap.String("owner_id", event.Actor.UserID),
		zap.Any("payload", event.Payload),
	)
	n.postWebhook(ctx, event)
	return nil
}

func (n *NotificationService) handleExamScored(ctx context.Context, event events.Event) error {
	n.logger.Info("ExamScored",
		zap.String("subject", event.Subject),
		zap.String("user_id", event.Actor.UserID),
		zap.Any("payload", event.Payload),
	)
	n.postWebhook(ctx, event)
	return nil
}

func (n *NotificationService) postWebhook(ctx context.Context, event events.Event) {
	if n.cfg.WebhookURL == "" {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("marshal event for webhook", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("build webhook request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("webhook delivery failed", zap.Error(err))
		return
	}
	_ = resp.Body.Close()
}
