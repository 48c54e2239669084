package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/pkg/errs"
)

func Test_NormalizePhone(t *testing.T) {
	t.Run("should keep a clean E.164 number", func(t *testing.T) {
		got, err := NormalizePhone("+4915112345678")
		require.NoError(t, err)
		assert.Equal(t, "+4915112345678", got)
	})

	t.Run("should strip formatting characters", func(t *testing.T) {
		got, err := NormalizePhone("+1 (555) 010-0199")
		require.NoError(t, err)
		assert.Equal(t, "+15550100199", got)
	})

	t.Run("should rewrite the 00 international prefix", func(t *testing.T) {
		got, err := NormalizePhone("004915112345678")
		require.NoError(t, err)
		assert.Equal(t, "+4915112345678", got)
	})

	t.Run("should reject empty input", func(t *testing.T) {
		_, err := NormalizePhone("")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject numbers outside E.164 length", func(t *testing.T) {
		_, err := NormalizePhone("12345")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = NormalizePhone("12345678901234567890")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func Test_SMSChannel_Send(t *testing.T) {
	target := Target{Phone: "+15550100199"}
	payload := Payload{Body: "your order is ready"}

	t.Run("should deliver and return the provider message id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"message_id":"sms-123"}`))
		}))
		defer server.Close()

		ch := NewSMSChannel(server.URL, "test-key", server.Client())
		result, err := ch.Send(context.Background(), target, payload)

		require.NoError(t, err)
		assert.Equal(t, "sms-123", result.ProviderMessageID)
	})

	t.Run("should classify 429 as transient", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		ch := NewSMSChannel(server.URL, "test-key", server.Client())
		_, err := ch.Send(context.Background(), target, payload)

		require.Error(t, err)
		assert.True(t, IsTransient(err))
	})

	t.Run("should classify 500 as transient", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		ch := NewSMSChannel(server.URL, "test-key", server.Client())
		_, err := ch.Send(context.Background(), target, payload)

		require.Error(t, err)
		assert.True(t, IsTransient(err))
	})

	t.Run("should classify 400 as terminal", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"unknown recipient"}`))
		}))
		defer server.Close()

		ch := NewSMSChannel(server.URL, "test-key", server.Client())
		_, err := ch.Send(context.Background(), target, payload)

		require.Error(t, err)
		assert.False(t, IsTransient(err))
		assert.Contains(t, err.Error(), "unknown recipient")
	})

	t.Run("should classify connection failure as transient", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close()

		ch := NewSMSChannel(server.URL, "test-key", nil)
		_, err := ch.Send(context.Background(), target, payload)

		require.Error(t, err)
		assert.True(t, IsTransient(err))
	})

	t.Run("should fail terminally on a bad destination without calling the provider", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			called = true
		}))
		defer server.Close()

		ch := NewSMSChannel(server.URL, "test-key", server.Client())
		_, err := ch.Send(context.Background(), Target{Phone: "123"}, payload)

		require.Error(t, err)
		assert.False(t, IsTransient(err))
		assert.False(t, called)
	})
}
