package notification

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_Deliver(t *testing.T) {
	payload := []byte(`{"type":"checkin_rejected","data":{}}`)

	t.Run("posts signed payload", func(t *testing.T) {
		var gotSignature, gotEvent string
		var gotBody []byte

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotSignature = r.Header.Get("X-Aviva-Signature")
			gotEvent = r.Header.Get("X-Aviva-Event")
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		d := NewDispatcher(nil, server.URL, "secret", time.Second, testLogger())
		err := d.deliver(context.Background(), &QueuedNotification{
			ID:      uuid.New(),
			Type:    "checkin_rejected",
			Payload: payload,
		})

		require.NoError(t, err)
		assert.Equal(t, payload, gotBody)
		assert.Equal(t, "checkin_rejected", gotEvent)
		assert.True(t, Verify("secret", payload, gotSignature))
	})

	t.Run("non-2xx response is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		d := NewDispatcher(nil, server.URL, "secret", time.Second, testLogger())
		err := d.deliver(context.Background(), &QueuedNotification{
			ID:      uuid.New(),
			Payload: payload,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 502")
	})

	t.Run("unreachable endpoint is an error", func(t *testing.T) {
		d := NewDispatcher(nil, "http://127.0.0.1:1", "secret", time.Second, testLogger())
		err := d.deliver(context.Background(), &QueuedNotification{
			ID:      uuid.New(),
			Payload: payload,
		})

		assert.Error(t, err)
	})
}

func TestDispatcher_ProcessQueue(t *testing.T) {
	notificationID := uuid.New()
	payload := []byte(`{"type":"checkin_rejected"}`)

	t.Run("delivers pending rows and marks them delivered", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "type", "payload", "attempts", "max_attempts"}).
			AddRow(notificationID, "checkin_rejected", payload, 0, 5)

		mock.ExpectQuery(`FROM notifications`).WillReturnRows(rows)
		mock.ExpectExec(`SET status = 'delivered'`).
			WithArgs(notificationID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		d := NewDispatcher(mock, server.URL, "secret", time.Second, testLogger())
		err = d.processQueue(context.Background())

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed delivery schedules a retry with backoff", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "type", "payload", "attempts", "max_attempts"}).
			AddRow(notificationID, "checkin_rejected", payload, 1, 5)

		mock.ExpectQuery(`FROM notifications`).WillReturnRows(rows)
		mock.ExpectExec(`SET attempts = attempts \+ 1`).
			WithArgs(pgxmock.AnyArg(), "HTTP 500", notificationID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		d := NewDispatcher(mock, server.URL, "secret", time.Second, testLogger())
		err = d.processQueue(context.Background())

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exhausted attempts mark the row failed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "type", "payload", "attempts", "max_attempts"}).
			AddRow(notificationID, "checkin_rejected", payload, 4, 5)

		mock.ExpectQuery(`FROM notifications`).WillReturnRows(rows)
		mock.ExpectExec(`SET status = 'failed'`).
			WithArgs("HTTP 500", notificationID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		d := NewDispatcher(mock, server.URL, "secret", time.Second, testLogger())
		err = d.processQueue(context.Background())

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty queue is a no-op", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "type", "payload", "attempts", "max_attempts"})
		mock.ExpectQuery(`FROM notifications`).WillReturnRows(rows)

		d := NewDispatcher(mock, "http://localhost", "secret", time.Second, testLogger())
		err = d.processQueue(context.Background())

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDispatcher_RunStopsOnStop(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	d := NewDispatcher(mock, "http://localhost", "secret", time.Hour, testLogger())

	done := make(chan struct{})
	go func() {
		d.Run(context.Background())
		close(done)
	}()

	d.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}

func TestDispatcher_RunStopsOnContextCancel(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	d := NewDispatcher(mock, "http://localhost", "secret", time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}
