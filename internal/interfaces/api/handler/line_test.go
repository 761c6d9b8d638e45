package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"drnote/internal/application/dto"
	"drnote/internal/domain/constant"
	"drnote/internal/infrastructure/line"
	"drnote/internal/pkg/logger"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "test-channel-secret"
	testRecipient = "U-owner"
)

type fakeNotificationService struct {
	mu      sync.Mutex
	set     []constant.AuthorizationStatus
	pending []dto.PendingReminderResponse
}

func (f *fakeNotificationService) ListPending(context.Context) ([]dto.PendingReminderResponse, error) {
	return f.pending, nil
}

func (f *fakeNotificationService) ListDelivered(context.Context, int) ([]dto.DeliveredReminderResponse, error) {
	return nil, nil
}

func (f *fakeNotificationService) GetAuthorization(context.Context) (*dto.AuthorizationResponse, error) {
	return &dto.AuthorizationResponse{}, nil
}

func (f *fakeNotificationService) SetAuthorization(_ context.Context, status constant.AuthorizationStatus) (*dto.AuthorizationResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set = append(f.set, status)
	return &dto.AuthorizationResponse{Status: status.String()}, nil
}

// replyRecorder stands in for the LINE Messaging API.
type replyRecorder struct {
	mu      sync.Mutex
	replies []string
}

func (r *replyRecorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	body, _ := io.ReadAll(req.Body)
	if req.URL.Path == "/v2/bot/message/reply" {
		var payload struct {
			Messages []struct {
				Text string `json:"text"`
			} `json:"messages"`
		}
		_ = json.Unmarshal(body, &payload)
		r.mu.Lock()
		for _, m := range payload.Messages {
			r.replies = append(r.replies, m.Text)
		}
		r.mu.Unlock()
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{}`))
}

func (r *replyRecorder) texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.replies...)
}

func newLineHandler(t *testing.T, svc *fakeNotificationService) (*LineHandler, *replyRecorder) {
	t.Helper()
	api := &replyRecorder{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	client, err := line.NewClient(testSecret, "token", testRecipient, logger.Nop(), linebot.WithEndpointBase(srv.URL))
	require.NoError(t, err)
	return NewLineHandler(client, svc, time.UTC, logger.Nop()), api
}

func webhook(t *testing.T, h *LineHandler, events string, sign bool) *httptest.ResponseRecorder {
	t.Helper()
	body := fmt.Sprintf(`{"destination":"bot","events":[%s]}`, events)
	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(body))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	if !sign {
		sig = "invalid"
	}
	req.Header.Set("X-Line-Signature", sig)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	require.NoError(t, h.HandleWebhook(c))
	return rec
}

func event(typ, userID, extra string) string {
	return fmt.Sprintf(`{"type":%q,"replyToken":"reply-token","mode":"active","timestamp":1700000000000,"source":{"type":"user","userId":%q}%s}`, typ, userID, extra)
}

func textEvent(userID, text string) string {
	return event("message", userID, fmt.Sprintf(`,"message":{"type":"text","id":"1","text":%q}`, text))
}

func TestLineHandler_InvalidSignature(t *testing.T) {
	h, _ := newLineHandler(t, &fakeNotificationService{})
	rec := webhook(t, h, event("follow", testRecipient, ""), false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLineHandler_FollowAndUnfollowSetAuthorization(t *testing.T) {
	svc := &fakeNotificationService{}
	h, api := newLineHandler(t, svc)

	rec := webhook(t, h, event("follow", testRecipient, ""), true)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = webhook(t, h, event("unfollow", testRecipient, ""), true)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []constant.AuthorizationStatus{constant.AuthorizationAuthorized, constant.AuthorizationDenied}, svc.set)
	replies := api.texts()
	require.NotEmpty(t, replies)
	assert.Contains(t, replies[0], "reminders are on")
}

func TestLineHandler_IgnoresOtherUsers(t *testing.T) {
	svc := &fakeNotificationService{}
	h, api := newLineHandler(t, svc)

	webhook(t, h, event("follow", "U-stranger", ""), true)
	webhook(t, h, event("unfollow", "U-stranger", ""), true)

	assert.Empty(t, svc.set)
	replies := api.texts()
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "practice owner")
}

func TestLineHandler_RemindersCommand(t *testing.T) {
	svc := &fakeNotificationService{pending: []dto.PendingReminderResponse{{
		NotificationID: "n1",
		Body:           "Follow-up with J. Smith at 9:00AM (tomorrow).",
		FireAt:         time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}}}
	h, api := newLineHandler(t, svc)

	webhook(t, h, textEvent(testRecipient, " Reminders "), true)

	replies := api.texts()
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "2026/05/01 09:00")
	assert.Contains(t, replies[0], "Follow-up with J. Smith")
}

func TestLineHandler_EmptyListsAndHelp(t *testing.T) {
	h, api := newLineHandler(t, &fakeNotificationService{})

	webhook(t, h, textEvent(testRecipient, "reminders"), true)
	webhook(t, h, textEvent(testRecipient, "history"), true)
	webhook(t, h, textEvent(testRecipient, "what can you do?"), true)

	replies := api.texts()
	require.Len(t, replies, 3)
	assert.Equal(t, "No reminders are scheduled.", replies[0])
	assert.Equal(t, "No reminders have been delivered yet.", replies[1])
	assert.Contains(t, replies[2], `Send "reminders"`)
}
