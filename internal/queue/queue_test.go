package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

func TestEnqueueWithRetrySucceedsAfterFailure(t *testing.T) {
	q := new(MockQueue)
	task := Task{Type: TaskTypeAnswer, Payload: []byte(`{}`)}

	q.On("Enqueue", mock.Anything, task).Return(errors.New("nats down")).Once()
	q.On("Enqueue", mock.Anything, task).Return(nil).Once()

	if err := EnqueueWithRetry(context.Background(), q, task, 3, time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q.AssertNumberOfCalls(t, "Enqueue", 2)
}

func TestEnqueueWithRetryExhaustsAttempts(t *testing.T) {
	q := new(MockQueue)
	task := Task{Type: TaskTypeSummarize}

	q.On("Enqueue", mock.Anything, task).Return(errors.New("nats down"))

	if err := EnqueueWithRetry(context.Background(), q, task, 3, time.Millisecond); err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	q.AssertNumberOfCalls(t, "Enqueue", 3)
}
