package contact

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingSender struct {
	sent []Email
	err  error
}

func (r *recordingSender) Send(ctx context.Context, email Email) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, email)
	return nil
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST("/api/contact", h.Submit)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{"name": " Ann ", "email": "ann@example.com", "message": "Hello <there>\nSecond line"}`

func TestSubmit_Validation(t *testing.T) {
	sender := &recordingSender{}
	h := &Handler{Sender: sender, ToEmail: "to@example.com", FromEmail: "from@example.com", Timeout: time.Second}

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"invalid json", `{"name":`, "Invalid request payload."},
		{"missing name", `{"email": "a@example.com", "message": "long enough text"}`, "Name, email, and message are required."},
		{"blank message", `{"name": "A", "email": "a@example.com", "message": "   "}`, "Name, email, and message are required."},
		{"bad email", `{"name": "A", "email": "not-an-email", "message": "long enough text"}`, "Please provide a valid email address."},
		{"short message", `{"name": "A", "email": "a@example.com", "message": "  too short  "}`, "Message is too short."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(h, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"`+tt.expected+`"}`, w.Body.String())
		})
	}
	assert.Empty(t, sender.sent)
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"ann@example.com", true},
		{"o'brien+tag@example.co", true},
		{"josé@example.com", true},
		{"a@b.c", true},
		{"not-an-email", false},
		{"user@", false},
		{"@example.com", false},
		{"user@example", false},
		{"us er@example.com", false},
		{"a@b@c.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidEmail(tt.email))
		})
	}
}

func TestSubmit_AcceptsUnusualAddresses(t *testing.T) {
	for _, email := range []string{"o'brien+tag@example.co", "josé@example.com", "a@b.c"} {
		t.Run(email, func(t *testing.T) {
			sender := &recordingSender{}
			h := &Handler{Sender: sender, ToEmail: "to@example.com", FromEmail: "from@example.com", Timeout: time.Second}

			body, err := json.Marshal(Request{Name: "Ann", Email: email, Message: "long enough text"})
			require.NoError(t, err)
			w := post(h, string(body))

			assert.Equal(t, http.StatusOK, w.Code)
			require.Len(t, sender.sent, 1)
			assert.Equal(t, email, sender.sent[0].ReplyTo)
		})
	}
}

func TestSubmit_NotConfigured(t *testing.T) {
	w := post(&Handler{Timeout: time.Second}, validBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Email service is not configured.")
}

func TestSubmit_Success(t *testing.T) {
	sender := &recordingSender{}
	h := &Handler{Sender: sender, ToEmail: "to@example.com", FromEmail: "Site <from@example.com>", Timeout: time.Second}

	w := post(h, validBody)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	require.Len(t, sender.sent, 1)
	email := sender.sent[0]
	assert.Equal(t, "New inquiry from Ann", email.Subject)
	assert.Equal(t, []string{"to@example.com"}, email.To)
	assert.Equal(t, "ann@example.com", email.ReplyTo)
	assert.Equal(t, "Name: Ann\nEmail: ann@example.com\n\nMessage:\nHello <there>\nSecond line", email.Text)
	assert.Contains(t, email.HTML, "Hello &lt;there&gt;<br/>Second line")
}

func TestSubmit_UpstreamFailure(t *testing.T) {
	h := &Handler{Sender: &recordingSender{err: errors.New("boom")}, Timeout: time.Second}

	w := post(h, validBody)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send message."}`, w.Body.String())
}

func TestResendClient_Send(t *testing.T) {
	var gotAuth string
	var got Email
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer server.Close()

	client := &ResendClient{Endpoint: server.URL, APIKey: "re_test"}
	err := client.Send(context.Background(), Email{From: "f@example.com", To: []string{"t@example.com"}, Subject: "Hi"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer re_test", gotAuth)
	assert.Equal(t, "Hi", got.Subject)
}

func TestResendClient_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer server.Close()

	client := &ResendClient{Endpoint: server.URL, APIKey: "re_test"}
	err := client.Send(context.Background(), Email{})

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnprocessableEntity, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "invalid from")
}

func TestSubmit_TimeoutIsBadGateway(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	h := &Handler{
		Sender:  &ResendClient{Endpoint: server.URL, APIKey: "re_test"},
		Timeout: 50 * time.Millisecond,
	}

	start := time.Now()
	w := post(h, validBody)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Less(t, time.Since(start), 5*time.Second)
}
