package adapter

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTrustClient_Post(t *testing.T) {
	t.Run("sends a single multipart name field", func(t *testing.T) {
		var (
			gotMethod  string
			gotPayload string
			gotParts   int
		)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method

			reader, err := r.MultipartReader()
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			for {
				part, err := reader.NextPart()
				if errors.Is(err, io.EOF) {
					break
				}

				if err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}

				gotParts++

				if part.FormName() == "name" && part.FileName() == "" {
					data, _ := io.ReadAll(part)
					gotPayload = string(data)
				}
			}

			_, _ = w.Write([]byte(`["official","cheat"]`))
		}))
		defer server.Close()

		client := NewHTTPTrustClient(server.URL, 0)
		body, err := client.Post(context.Background(), "aaa,bbb")

		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, 1, gotParts)
		assert.Equal(t, "aaa,bbb", gotPayload)
		assert.Equal(t, `["official","cheat"]`, string(body))
	})

	t.Run("empty payload is still sent", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true

			assert.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "", r.FormValue("name"))

			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		body, err := NewHTTPTrustClient(server.URL, time.Second).Post(context.Background(), "")
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "[]", string(body))
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := NewHTTPTrustClient(server.URL, 0).Post(context.Background(), "aaa")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("transport failure is returned", func(t *testing.T) {
		client := NewHTTPTrustClientWith("http://trust.invalid/maps/", failingHTTPClient{err: errors.New("connection refused")})

		_, err := client.Post(context.Background(), "aaa")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("cancelled context aborts the request", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		_, err := NewHTTPTrustClient(server.URL, 0).Post(ctx, "aaa")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewHTTPTrustClient_DefaultEndpoint(t *testing.T) {
	client := NewHTTPTrustClient("", 0)
	assert.Equal(t, DefaultEndpoint, client.Endpoint())
	assert.True(t, strings.HasSuffix(client.Endpoint(), "/maps/"))
}

type failingHTTPClient struct {
	err error
}

func (f failingHTTPClient) Do(_ *http.Request) (*http.Response, error) {
	return nil, f.err
}
