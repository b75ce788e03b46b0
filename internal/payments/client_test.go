package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateSession(t *testing.T) {
	var gotForm map[string]string
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())

		gotAuth = r.Header.Get("Authorization")
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_123","url":"https://pay.example.com/cs_test_123"}`))
	}))
	defer server.Close()

	client := NewClient(Config{SecretKey: "sk_test_abc", BaseURL: server.URL})

	session, err := client.CreateSession(context.Background(), SessionRequest{
		LineItems: []LineItem{
			{Currency: "inr", Name: "Oak Table", UnitAmount: 10000, Quantity: 2},
		},
		SuccessURL:    "https://shop.example.com/checkout/success",
		CancelURL:     "https://shop.example.com/checkout/cancel",
		CustomerEmail: "buyer@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", session.ID)
	assert.Equal(t, "https://pay.example.com/cs_test_123", session.URL)
	assert.Equal(t, "Bearer sk_test_abc", gotAuth)
	assert.Equal(t, "payment", gotForm["mode"])
	assert.Equal(t, "buyer@example.com", gotForm["customer_email"])
	assert.Equal(t, "inr", gotForm["line_items[0][price_data][currency]"])
	assert.Equal(t, "Oak Table", gotForm["line_items[0][price_data][product_data][name]"])
	assert.Equal(t, "10000", gotForm["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, "2", gotForm["line_items[0][quantity]"])
}

func TestClient_CreateSession_ProcessorRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid currency: xyz"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{SecretKey: "sk", BaseURL: server.URL})

	_, err := client.CreateSession(context.Background(), SessionRequest{})
	require.Error(t, err)

	var procErr *ProcessorError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, http.StatusBadRequest, procErr.Status)
	assert.Equal(t, "Invalid currency: xyz", procErr.Message)
}

func TestClient_CreateSession_MissingRedirectURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"cs_test_123"}`))
	}))
	defer server.Close()

	client := NewClient(Config{SecretKey: "sk", BaseURL: server.URL})

	_, err := client.CreateSession(context.Background(), SessionRequest{})
	var procErr *ProcessorError
	require.ErrorAs(t, err, &procErr)
	assert.Contains(t, procErr.Message, "redirect url")
}

func TestClient_CreateSession_Timeout(t *testing.T) {
	// The handler must outlive the client's 50ms timeout but still
	// return on its own so the server can shut down cleanly.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClient(Config{SecretKey: "sk", BaseURL: server.URL, Timeout: 50 * time.Millisecond})

	_, err := client.CreateSession(context.Background(), SessionRequest{})

	var procErr *ProcessorError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, 0, procErr.Status)
}
