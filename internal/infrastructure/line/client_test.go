package line

import (
	"context"
	"drnote/internal/domain/constant"
	"drnote/internal/domain/entity"
	appErrors "drnote/internal/pkg/errors"
	"drnote/internal/pkg/logger"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLineAPI struct {
	mu            sync.Mutex
	pushes        []map[string]interface{}
	profileStatus int
}

func (f *fakeLineAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case r.URL.Path == "/v2/bot/message/push":
		body, _ := io.ReadAll(r.Body)
		var payload map[string]interface{}
		_ = json.Unmarshal(body, &payload)
		f.pushes = append(f.pushes, payload)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	case r.URL.Path == "/v2/bot/profile/U-owner":
		if f.profileStatus != http.StatusOK {
			w.WriteHeader(f.profileStatus)
			_, _ = w.Write([]byte(`{"message":"Not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"userId":"U-owner","displayName":"Dr. Owner"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestClient(t *testing.T, api *fakeLineAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	c, err := NewClient("secret", "token", "U-owner", logger.Nop(), linebot.WithEndpointBase(srv.URL))
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient("", "token", "U", logger.Nop())
	assert.ErrorIs(t, err, appErrors.ErrInvalidInput)
	_, err = NewClient("secret", "token", "", logger.Nop())
	assert.ErrorIs(t, err, appErrors.ErrInvalidInput)
}

func TestClient_Deliver(t *testing.T) {
	api := &fakeLineAPI{profileStatus: http.StatusOK}
	c := newTestClient(t, api)
	r := &entity.PendingReminder{NotificationID: "n1", Title: "Appointment Reminder", Body: "Visit with A at 9:00AM (tomorrow)."}

	require.NoError(t, c.Deliver(context.Background(), r, true))
	require.NoError(t, c.Deliver(context.Background(), r, false))

	api.mu.Lock()
	defer api.mu.Unlock()
	require.Len(t, api.pushes, 2)
	assert.Equal(t, "U-owner", api.pushes[0]["to"])
	assert.NotEqual(t, true, api.pushes[0]["notificationDisabled"])
	assert.Equal(t, true, api.pushes[1]["notificationDisabled"])

	messages, ok := api.pushes[0]["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].(map[string]interface{})["text"], "Visit with A")
}

func TestClient_Prompt(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		granted bool
		wantErr bool
	}{
		{"follows the bot", http.StatusOK, true, false},
		{"not a follower", http.StatusNotFound, false, false},
		{"LINE failure", http.StatusInternalServerError, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, &fakeLineAPI{profileStatus: tt.status})
			granted, err := c.Prompt(context.Background(), constant.AuthorizeAlert)
			if tt.wantErr {
				assert.ErrorIs(t, err, appErrors.ErrLineAPI)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.granted, granted)
		})
	}
}
