package consumer_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Sedmeq/WorkTrack/internal/bootstrap"
	"github.com/Sedmeq/WorkTrack/internal/events"
	"github.com/Sedmeq/WorkTrack/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafkago.Message
	committed []kafkago.Message
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	f.mu.Lock()
	if len(f.msgs) == 0 {
		f.mu.Unlock()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := f.msgs[0]
	f.msgs = f.msgs[1:]
	f.mu.Unlock()
	return m, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = append(f.committed, msgs...)
	return nil
}

func (f *fakeReader) commits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.committed)
}

type fakeAudit struct {
	entries []bootstrap.AuditLog
	err     error
}

func (f *fakeAudit) Log(_ context.Context, entry bootstrap.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func leaveMessage(t *testing.T) kafkago.Message {
	t.Helper()
	return kafkago.Message{
		Topic:  events.LeaveLifecycleTopic,
		Offset: 7,
		Value: []byte(`{"event_type":"leave.approved","kind":"vacation","request_id":"r-1",` +
			`"employee_id":"e-1","status":"Approved","occurred_at":"2026-03-02T10:00:00Z"}`),
		Headers: []kafkago.Header{{Key: "request_id", Value: []byte("req-42")}},
	}
}

func TestToAuditLog(t *testing.T) {
	entry, err := consumer.ToAuditLog(leaveMessage(t))
	require.NoError(t, err)

	assert.Equal(t, events.LeaveApproved, entry.Action)
	assert.Equal(t, "req-42", entry.RequestID)
	assert.Equal(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), entry.Timestamp)
	assert.Equal(t, "vacation", entry.Meta["kind"])
	assert.Equal(t, events.LeaveLifecycleTopic, entry.Meta["topic"])
}

func TestToAuditLog_Malformed(t *testing.T) {
	_, err := consumer.ToAuditLog(kafkago.Message{Value: []byte("not json")})
	assert.ErrorIs(t, err, consumer.ErrMalformedEvent)

	_, err = consumer.ToAuditLog(kafkago.Message{Value: []byte(`{"employee_id":"x"}`)})
	assert.ErrorIs(t, err, consumer.ErrMalformedEvent)
}

func TestHandleMessage(t *testing.T) {
	log := zap.NewNop()

	t.Run("records then commits", func(t *testing.T) {
		reader := &fakeReader{}
		audit := &fakeAudit{}
		msg := leaveMessage(t)

		require.NoError(t, consumer.HandleMessage(context.Background(), reader, audit, msg, log))
		assert.Len(t, audit.entries, 1)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("malformed is committed without audit", func(t *testing.T) {
		reader := &fakeReader{}
		audit := &fakeAudit{}

		require.NoError(t, consumer.HandleMessage(context.Background(), reader, audit, kafkago.Message{Value: []byte("{")}, log))
		assert.Empty(t, audit.entries)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("audit failure leaves offset uncommitted", func(t *testing.T) {
		reader := &fakeReader{}
		boom := errors.New("mongo down")
		audit := &fakeAudit{err: boom}

		err := consumer.HandleMessage(context.Background(), reader, audit, leaveMessage(t), log)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, reader.committed)
	})
}

func TestConsumeLifecycle_StopsOnCancel(t *testing.T) {
	reader := &fakeReader{msgs: []kafkago.Message{leaveMessage(t), leaveMessage(t)}}
	audit := &fakeAudit{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		consumer.ConsumeLifecycle(ctx, reader, audit, zap.NewNop())
		close(done)
	}()

	require.Eventually(t, func() bool { return reader.commits() == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
	assert.Len(t, audit.entries, 2)
}
