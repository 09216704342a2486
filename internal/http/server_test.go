package httpserver

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServerRun(t *testing.T) {
	t.Run("cancelled context drains and returns nil", func(t *testing.T) {
		srv := NewServer("127.0.0.1:0", http.NewServeMux(), zap.NewNop())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- srv.Run(ctx)
		}()

		// Give the listener a moment to come up before shutting down.
		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not shut down")
		}
	})

	t.Run("listener failure surfaces as an error", func(t *testing.T) {
		srv := NewServer("127.0.0.1:-1", http.NewServeMux(), zap.NewNop())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- srv.Run(ctx)
		}()

		select {
		case err := <-done:
			require.Error(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("expected a listen error")
		}
	})
}
