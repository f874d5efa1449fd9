package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnconfigured_AlwaysUnavailable(t *testing.T) {
	var a Adapter = Unconfigured{}
	_, err := a.Generate(context.Background(), "describe a suspicious login", nil)
	require.ErrorAs(t, err, &ErrUnavailable{})
}

func TestHTTPAdapter_NoEndpointIsUnavailable(t *testing.T) {
	a := NewHTTPAdapter(HTTPAdapterConfig{})
	_, err := a.Generate(context.Background(), "prompt", nil)
	require.ErrorAs(t, err, &ErrUnavailable{})
}

func TestHTTPAdapter_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"title: Suspicious Login\n"}`))
	}))
	defer srv.Close()

	a := NewHTTPAdapter(HTTPAdapterConfig{Endpoint: srv.URL})
	text, err := a.Generate(context.Background(), "describe a suspicious login", map[string]string{"product": "windows"})
	require.NoError(t, err)
	require.Contains(t, text, "Suspicious Login")
}

func TestHTTPAdapter_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := NewHTTPAdapter(HTTPAdapterConfig{Endpoint: srv.URL})
	_, err := a.Generate(context.Background(), "prompt", nil)
	require.Error(t, err)
	var reqErr ErrRequestFailed
	require.ErrorAs(t, err, &reqErr)
	require.Equal(t, http.StatusInternalServerError, reqErr.Status)
}
