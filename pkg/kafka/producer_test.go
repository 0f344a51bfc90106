package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
)

type mockWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *mockWriter) Close() error {
	w.closed = true
	return nil
}

func header(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func buildMessage(t *testing.T) Message {
	t.Helper()
	msg, err := NewMessage().WithKey("b1").WithValue(map[string]string{"a": "b"}).WithEventType("test").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return msg
}

func TestProducer_Publish(t *testing.T) {
	w := &mockWriter{}
	p := NewProducerWithWriters(w, nil, "bookings", "")

	if err := p.Publish(context.Background(), buildMessage(t)); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(w.messages) != 1 {
		t.Fatalf("written = %d, want 1", len(w.messages))
	}
	got := w.messages[0]
	if string(got.Key) != "b1" || string(got.Value) != `{"a":"b"}` {
		t.Errorf("unexpected message %q=%q", got.Key, got.Value)
	}
	if header(got, HeaderEventType) != "test" || header(got, HeaderEventID) == "" {
		t.Errorf("headers missing: %+v", got.Headers)
	}
}

func TestProducer_RejectsInvalidMessages(t *testing.T) {
	p := NewProducerWithWriters(&mockWriter{}, nil, "bookings", "")

	if err := p.Publish(context.Background(), Message{Value: []byte("x")}); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("empty key: got %v", err)
	}
	if err := p.Publish(context.Background(), Message{Key: "k"}); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("empty value: got %v", err)
	}
}

func TestProducer_DeadLetterOnFailure(t *testing.T) {
	writeErr := errors.New("leader not available")
	w := &mockWriter{err: writeErr}
	dlq := &mockWriter{}
	p := NewProducerWithWriters(w, dlq, "bookings", "bookings.dlq")

	err := p.Publish(context.Background(), buildMessage(t))
	if !errors.Is(err, writeErr) {
		t.Fatalf("Publish() error = %v, want original error", err)
	}
	if len(dlq.messages) != 1 {
		t.Fatalf("dlq messages = %d, want 1", len(dlq.messages))
	}
	dead := dlq.messages[0]
	if header(dead, HeaderOriginalTopic) != "bookings" {
		t.Errorf("original-topic = %q", header(dead, HeaderOriginalTopic))
	}
	if !strings.Contains(header(dead, HeaderDLQError), "leader not available") {
		t.Errorf("dlq-error = %q", header(dead, HeaderDLQError))
	}
}

func TestProducer_MiddlewareOrder(t *testing.T) {
	p := NewProducerWithWriters(&mockWriter{}, nil, "bookings", "")

	var order []string
	for _, name := range []string{"outer", "inner"} {
		name := name
		p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
			order = append(order, name)
			if msg.Topic != "bookings" {
				t.Errorf("topic not defaulted: %q", msg.Topic)
			}
			return next(ctx, msg)
		})
	}

	if err := p.Publish(context.Background(), buildMessage(t)); err != nil {
		t.Fatal(err)
	}
	if strings.Join(order, ",") != "outer,inner" {
		t.Errorf("order = %v", order)
	}
}

func TestProducer_Close(t *testing.T) {
	w, dlq := &mockWriter{}, &mockWriter{}
	p := NewProducerWithWriters(w, dlq, "bookings", "bookings.dlq")

	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if !w.closed || !dlq.closed {
		t.Error("writers not closed")
	}
	if err := p.Publish(context.Background(), buildMessage(t)); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("publish after close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestMessageBuilder_EncodingError(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	if err == nil {
		t.Fatal("expected encoding error")
	}
}
