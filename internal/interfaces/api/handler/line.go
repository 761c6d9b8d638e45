package handler

import (
	"context"
	"drnote/internal/application/service"
	"drnote/internal/domain/constant"
	"drnote/internal/infrastructure/line"
	"drnote/internal/pkg/logger"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// Text commands understood by the bot.
const (
	commandHelp      = "help"
	commandReminders = "reminders"
	commandHistory   = "history"
)

const historyLimit = 5

// LineHandler handles incoming LINE webhook events. Following the bot is
// how the practitioner turns reminders on; unfollowing turns them off.
type LineHandler struct {
	lineClient          *line.Client
	notificationService service.NotificationService
	loc                 *time.Location
	log                 logger.Logger
}

// NewLineHandler creates a new LineHandler. Times in replies are shown in loc.
func NewLineHandler(
	lineClient *line.Client,
	notificationService service.NotificationService,
	loc *time.Location,
	log logger.Logger,
) *LineHandler {
	if loc == nil {
		loc = time.Local
	}
	return &LineHandler{
		lineClient:          lineClient,
		notificationService: notificationService,
		loc:                 loc,
		log:                 log,
	}
}

// HandleWebhook is the main entry point for webhook requests.
func (h *LineHandler) HandleWebhook(c echo.Context) error {
	ctx := c.Request().Context()
	events, err := h.lineClient.ParseRequest(c.Request())
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			h.log.Warn("Invalid LINE signature received")
			return c.String(http.StatusBadRequest, "Invalid signature")
		}
		h.log.Error("Failed to parse LINE webhook request", err)
		return c.String(http.StatusInternalServerError, "Error parsing request")
	}

	for _, event := range events {
		h.log.Info(fmt.Sprintf("Processing event type: %s", event.Type))
		if event.Source == nil || event.Source.UserID != h.lineClient.Recipient() {
			h.handleStranger(event)
			continue
		}
		switch event.Type {
		case linebot.EventTypeMessage:
			h.handleMessageEvent(ctx, event)
		case linebot.EventTypeFollow:
			h.handleFollowEvent(ctx, event)
		case linebot.EventTypeUnfollow:
			h.handleUnfollowEvent(ctx, event)
		default:
			h.log.Info(fmt.Sprintf("Unhandled event type: %s", event.Type))
		}
	}

	return c.String(http.StatusOK, "OK")
}

// handleStranger answers users other than the practitioner.
func (h *LineHandler) handleStranger(event *linebot.Event) {
	h.log.Warn(fmt.Sprintf("Ignoring %s event from a user other than the configured recipient", event.Type))
	if event.ReplyToken == "" || event.Type == linebot.EventTypeUnfollow {
		return
	}
	msg := linebot.NewTextMessage("This bot only sends appointment reminders to its practice owner.")
	if err := h.lineClient.SendMessages(event.ReplyToken, msg); err != nil {
		h.log.Error("Failed to reply to unknown user", err)
	}
}

// handleFollowEvent turns notifications on.
func (h *LineHandler) handleFollowEvent(ctx context.Context, event *linebot.Event) {
	h.log.Info("Recipient followed the bot.")
	if _, err := h.notificationService.SetAuthorization(ctx, constant.AuthorizationAuthorized); err != nil {
		h.replyWithError(event.ReplyToken, "Could not turn reminders on. Please try again later.")
		return
	}
	welcome := linebot.NewTextMessage("Appointment reminders are on. You will be notified one day before each appointment.")
	if err := h.lineClient.SendMessages(event.ReplyToken, welcome, h.helpMessage()); err != nil {
		h.log.Error("Failed to send follow reply", err)
	}
}

// handleUnfollowEvent turns notifications off. No reply is possible.
func (h *LineHandler) handleUnfollowEvent(ctx context.Context, _ *linebot.Event) {
	h.log.Info("Recipient unfollowed or blocked the bot.")
	if _, err := h.notificationService.SetAuthorization(ctx, constant.AuthorizationDenied); err != nil {
		h.log.Error("Failed to record revoked notification authorization", err)
	}
}

// handleMessageEvent processes message events.
func (h *LineHandler) handleMessageEvent(ctx context.Context, event *linebot.Event) {
	message, ok := event.Message.(*linebot.TextMessage)
	if !ok {
		h.log.Info("Received non-text message from recipient")
		return
	}

	switch strings.ToLower(strings.TrimSpace(message.Text)) {
	case commandReminders:
		h.sendPendingList(ctx, event.ReplyToken)
	case commandHistory:
		h.sendHistory(ctx, event.ReplyToken)
	default:
		if err := h.lineClient.SendMessages(event.ReplyToken, h.helpMessage()); err != nil {
			h.log.Error("Failed to send help message", err)
		}
	}
}

func (h *LineHandler) helpMessage() linebot.SendingMessage {
	text := `Send "reminders" to see upcoming appointment reminders.
Send "history" to see the latest delivered reminders.`
	quickReply := linebot.NewQuickReplyItems(
		linebot.NewQuickReplyButton("", linebot.NewMessageAction(commandReminders, commandReminders)),
		linebot.NewQuickReplyButton("", linebot.NewMessageAction(commandHistory, commandHistory)),
		linebot.NewQuickReplyButton("", linebot.NewMessageAction(commandHelp, commandHelp)),
	)
	return linebot.NewTextMessage(text).WithQuickReplies(quickReply)
}

func (h *LineHandler) sendPendingList(ctx context.Context, replyToken string) {
	pending, err := h.notificationService.ListPending(ctx)
	if err != nil {
		h.replyWithError(replyToken, "Could not load reminders.")
		return
	}
	if len(pending) == 0 {
		h.reply(replyToken, "No reminders are scheduled.")
		return
	}

	var builder strings.Builder
	for _, r := range pending {
		builder.WriteString(fmt.Sprintf("%s\n%s\n\n", r.FireAt.In(h.loc).Format("2006/01/02 15:04"), r.Body))
	}
	h.reply(replyToken, strings.TrimSuffix(builder.String(), "\n\n"))
}

func (h *LineHandler) sendHistory(ctx context.Context, replyToken string) {
	delivered, err := h.notificationService.ListDelivered(ctx, historyLimit)
	if err != nil {
		h.replyWithError(replyToken, "Could not load delivered reminders.")
		return
	}
	if len(delivered) == 0 {
		h.reply(replyToken, "No reminders have been delivered yet.")
		return
	}

	var builder strings.Builder
	for _, d := range delivered {
		builder.WriteString(fmt.Sprintf("%s\n%s\n\n", d.DeliveredAt.In(h.loc).Format("2006/01/02 15:04"), d.Body))
	}
	h.reply(replyToken, strings.TrimSuffix(builder.String(), "\n\n"))
}

func (h *LineHandler) reply(replyToken, text string) {
	if err := h.lineClient.SendMessages(replyToken, linebot.NewTextMessage(text)); err != nil {
		h.log.Error("Failed to send reply", err)
	}
}

func (h *LineHandler) replyWithError(replyToken, text string) {
	if replyToken == "" {
		return
	}
	h.reply(replyToken, text)
}
