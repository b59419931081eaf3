package bot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskloop/internal/core/chat"
	"github.com/colonyops/taskloop/internal/core/convo"
	"github.com/colonyops/taskloop/internal/stores"
)

type recordSender struct {
	mu   sync.Mutex
	sent []string
}

func (r *recordSender) Send(ctx context.Context, userID int64, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, text)
	return nil
}

func (r *recordSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

type nopReminders struct{}

func (nopReminders) Register(userID int64, taskID string, at *time.Time, message string) {}
func (nopReminders) Cancel(userID int64, taskID string)                                  {}

func newTestService(t *testing.T) (*Service, *recordSender) {
	t.Helper()
	sender := &recordSender{}
	store := stores.NewTaskStore(t.TempDir() + "/tasks.json")
	engine := convo.NewEngine(store, nopReminders{}, sender, convo.Options{}, zerolog.Nop())
	return NewService(engine, zerolog.Nop()), sender
}

func TestService_HandleUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("routes known commands", func(t *testing.T) {
		svc, sender := newTestService(t)

		svc.HandleUpdate(ctx, chat.Update{UserID: 1, Command: "start"})
		assert.Equal(t, 1, sender.count())
	})

	t.Run("ignores unknown commands", func(t *testing.T) {
		svc, sender := newTestService(t)

		svc.HandleUpdate(ctx, chat.Update{UserID: 1, Command: "weather"})
		assert.Equal(t, 0, sender.count())
	})

	t.Run("text without conversation is a no-op", func(t *testing.T) {
		svc, sender := newTestService(t)

		svc.HandleUpdate(ctx, chat.Update{UserID: 1, Text: "hello"})
		assert.Equal(t, 0, sender.count())
	})

	t.Run("full creation through dispatch", func(t *testing.T) {
		svc, sender := newTestService(t)

		svc.HandleUpdate(ctx, chat.Update{UserID: 1, Command: "add"})
		svc.HandleUpdate(ctx, chat.Update{UserID: 1, Text: "Buy milk"})
		svc.HandleUpdate(ctx, chat.Update{UserID: 1, Text: "skip"})
		svc.HandleUpdate(ctx, chat.Update{UserID: 1, Text: "medium"})

		svc.HandleUpdate(ctx, chat.Update{UserID: 1, Command: "tasks"})

		sender.mu.Lock()
		last := sender.sent[len(sender.sent)-1]
		sender.mu.Unlock()
		assert.Contains(t, last, "Buy milk")
	})
}

func TestService_Run(t *testing.T) {
	t.Run("drains channel until closed", func(t *testing.T) {
		svc, sender := newTestService(t)

		updates := make(chan chat.Update, 2)
		updates <- chat.Update{UserID: 1, Command: "start"}
		updates <- chat.Update{UserID: 2, Command: "start"}
		close(updates)

		svc.Run(context.Background(), updates)
		assert.Equal(t, 2, sender.count())
	})

	t.Run("stops on context cancel", func(t *testing.T) {
		svc, _ := newTestService(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		done := make(chan struct{})
		go func() {
			svc.Run(ctx, make(chan chat.Update))
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			require.Fail(t, "Run did not stop on cancel")
		}
	})
}
