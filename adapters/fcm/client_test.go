package fcm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadcrm/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresServerKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestSendDeliversDataMessage(t *testing.T) {
	var got fcmRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":1,"failure":0}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{Endpoint: server.URL, ServerKey: "secret"})
	require.NoError(t, err)

	err = client.Send(context.Background(), "tok-1", ports.PushMessage{
		Title: "New Lead",
		Body:  "Ravi Kumar",
		Data:  map[string]string{"lead_id": "abc"},
	})
	require.NoError(t, err)

	assert.Equal(t, "key=secret", auth)
	assert.Equal(t, "tok-1", got.To)
	assert.Equal(t, "high", got.Priority)
	assert.Equal(t, "New Lead", got.Data["title"])
	assert.Equal(t, "Ravi Kumar", got.Data["body"])
	assert.Equal(t, "abc", got.Data["lead_id"])
}

func TestSendSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(Config{Endpoint: server.URL, ServerKey: "bad"})
	require.NoError(t, err)

	err = client.Send(context.Background(), "tok-1", ports.PushMessage{Title: "x"})
	assert.Error(t, err)
}

func TestSendSurfacesRejectedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":0,"failure":1}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{Endpoint: server.URL, ServerKey: "secret"})
	require.NoError(t, err)

	err = client.Send(context.Background(), "tok-stale", ports.PushMessage{Title: "x"})
	assert.Error(t, err)
}
