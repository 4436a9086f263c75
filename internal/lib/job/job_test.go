package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	to, name string
	err      error
}

func (f *fakeSender) SendWelcomeEmail(to, name string) error {
	f.to, f.name = to, name
	return f.err
}

func newTestService(s welcomeSender) *JobService {
	logger := zerolog.Nop()
	return &JobService{email: s, logger: &logger}
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("alice@example.com", "Alice A")
	require.NoError(t, err)
	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "alice@example.com", Name: "Alice A"}, p)
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	t.Run("sends", func(t *testing.T) {
		s := &fakeSender{}
		task, err := NewWelcomeEmailTask("alice@example.com", "Alice A")
		require.NoError(t, err)

		require.NoError(t, newTestService(s).handleWelcomeEmailTask(context.Background(), task))
		assert.Equal(t, "alice@example.com", s.to)
		assert.Equal(t, "Alice A", s.name)
	})

	t.Run("send failure is retried", func(t *testing.T) {
		task, err := NewWelcomeEmailTask("alice@example.com", "Alice A")
		require.NoError(t, err)

		err = newTestService(&fakeSender{err: errors.New("boom")}).handleWelcomeEmailTask(context.Background(), task)
		require.Error(t, err)
		assert.False(t, errors.Is(err, asynq.SkipRetry))
	})

	t.Run("bad payload is not retried", func(t *testing.T) {
		task := asynq.NewTask(TaskWelcome, []byte("{"))

		err := newTestService(&fakeSender{}).handleWelcomeEmailTask(context.Background(), task)
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}
