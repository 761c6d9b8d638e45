package line

import (
	"context"
	"drnote/internal/domain/constant"
	"drnote/internal/domain/entity"
	appErrors "drnote/internal/pkg/errors"
	"drnote/internal/pkg/logger"
	"errors"
	"fmt"
	"net/http"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// Client wraps the linebot.Client. It pushes reminders to the practitioner
// and asks LINE whether the practitioner still follows the bot.
type Client struct {
	*linebot.Client
	recipient string
	log       logger.Logger
}

// NewClient creates a LINE Bot client. recipient is the user ID reminders
// are pushed to.
func NewClient(channelSecret, channelToken, recipient string, log logger.Logger, opts ...linebot.ClientOption) (*Client, error) {
	if channelSecret == "" || channelToken == "" {
		return nil, fmt.Errorf("%w: channel secret and access token are required", appErrors.ErrInvalidInput)
	}
	if recipient == "" {
		return nil, fmt.Errorf("%w: recipient user ID is required", appErrors.ErrInvalidInput)
	}
	bot, err := linebot.New(channelSecret, channelToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrLineAPI, err)
	}
	log.Info("Successfully created LINE Bot client.")
	return &Client{
		Client:    bot,
		recipient: recipient,
		log:       log,
	}, nil
}

// Recipient returns the user ID reminders are pushed to.
func (c *Client) Recipient() string {
	return c.recipient
}

// SendMessages sends one or more messages using the ReplyMessage API.
func (c *Client) SendMessages(replyToken string, messages ...linebot.SendingMessage) error {
	_, err := c.ReplyMessage(replyToken, messages...).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrLineAPI, err)
	}
	c.log.Debug("Successfully sent reply message.")
	return nil
}

// PushMessages sends one or more messages using the PushMessage API.
func (c *Client) PushMessages(ctx context.Context, to string, silent bool, messages ...linebot.SendingMessage) error {
	call := c.PushMessage(to, messages...).WithContext(ctx)
	if silent {
		call = call.WithNotificationDisabled()
	}
	if _, err := call.Do(); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrLineAPI, err)
	}
	c.log.Debug("Successfully sent push message.")
	return nil
}

// ParseRequest parses incoming webhook requests.
func (c *Client) ParseRequest(r *http.Request) ([]*linebot.Event, error) {
	return c.Client.ParseRequest(r)
}

// Deliver pushes a fired reminder to the recipient. Without sound the push
// is sent silently.
func (c *Client) Deliver(ctx context.Context, reminder *entity.PendingReminder, sound bool) error {
	text := fmt.Sprintf("%s\n%s", reminder.Title, reminder.Body)
	if err := c.PushMessages(ctx, c.recipient, !sound, linebot.NewTextMessage(text)); err != nil {
		return err
	}
	c.log.Info(fmt.Sprintf("Pushed reminder %s to %s", reminder.NotificationID, c.recipient))
	return nil
}

// Prompt reports whether the recipient can receive pushes: a profile lookup
// succeeds only while the user follows the bot.
func (c *Client) Prompt(ctx context.Context, _ constant.AuthorizationOptions) (bool, error) {
	profile, err := c.GetProfile(c.recipient).WithContext(ctx).Do()
	if err != nil {
		var apiErr *linebot.APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			c.log.Warn(fmt.Sprintf("Recipient %s does not follow the bot", c.recipient))
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", appErrors.ErrLineAPI, err)
	}
	c.log.Info(fmt.Sprintf("Recipient %s (%s) follows the bot", profile.DisplayName, c.recipient))
	return true, nil
}
