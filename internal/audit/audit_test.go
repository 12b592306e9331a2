package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_Log(t *testing.T) {
	tests := []struct {
		name          string
		event         Event
		wantEventType string
		wantHasError  bool
	}{
		{
			name: "photo annotated event",
			event: Event{
				EventType: EventPhotoAnnotated,
				CheckInID: uuid.New().String(),
				Provider:  "rekognition",
				Success:   true,
				Metadata: map[string]string{
					"labels_count": "12",
				},
			},
			wantEventType: string(EventPhotoAnnotated),
		},
		{
			name: "failed annotation event",
			event: Event{
				EventType: EventPhotoAnnotated,
				CheckInID: uuid.New().String(),
				Provider:  "rekognition",
				Success:   false,
				Error:     "image not found in bucket",
			},
			wantEventType: string(EventPhotoAnnotated),
			wantHasError:  true,
		},
		{
			name: "review applied event",
			event: Event{
				EventType: EventReviewApplied,
				CheckInID: uuid.New().String(),
				ActorID:   uuid.New().String(),
				Success:   true,
			},
			wantEventType: string(EventReviewApplied),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			auditLogger := NewSlogLogger(logger)
			err := auditLogger.Log(context.Background(), tt.event)

			require.NoError(t, err)

			output := buf.String()
			assert.Contains(t, output, tt.wantEventType)
			assert.Contains(t, output, "audit_event")
			assert.Contains(t, output, tt.event.CheckInID)

			if tt.wantHasError {
				assert.Contains(t, output, tt.event.Error)
			}
		})
	}
}

func TestSlogLogger_Log_GeneratesIDAndTimestamp(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	auditLogger := NewSlogLogger(logger)
	err := auditLogger.Log(context.Background(), Event{
		EventType: EventPhotoScored,
		Success:   true,
	})
	require.NoError(t, err)

	var logEntry map[string]interface{}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &logEntry))

	eventID, ok := logEntry["event_id"].(string)
	assert.True(t, ok)

	_, err = uuid.Parse(eventID)
	assert.NoError(t, err)
}

func TestSlogLogger_Log_UsesProvidedID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	auditLogger := NewSlogLogger(logger)
	expectedID := uuid.New()

	err := auditLogger.Log(context.Background(), Event{
		ID:        expectedID,
		Timestamp: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EventType: EventNotificationSent,
		Success:   true,
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), expectedID.String())
}

func TestNoOpLogger_Log(t *testing.T) {
	logger := &NoOpLogger{}

	err := logger.Log(context.Background(), Event{
		EventType: EventPhotoAnnotated,
		Provider:  "rekognition",
		Success:   true,
	})

	assert.NoError(t, err)
}

func TestLoggerInterface_Compliance(t *testing.T) {
	var _ Logger = (*SlogLogger)(nil)
	var _ Logger = (*NoOpLogger)(nil)
}

func TestEvent_JSONSerialization_OmitsEmptyFields(t *testing.T) {
	event := Event{
		EventType: EventPhotoAnnotated,
		Success:   true,
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	jsonStr := string(data)
	assert.NotContains(t, jsonStr, "check_in_id")
	assert.NotContains(t, jsonStr, "actor_id")
	assert.NotContains(t, jsonStr, "provider")
	assert.NotContains(t, jsonStr, "error")
}
