package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := new(mockWriter)
	publisher := NewKafkaPublisher(writer)
	ctx := context.Background()

	var sent []kafka.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).([]kafka.Message)
	}).Return(nil).Once()

	event := New(TypeOrderPlaced, "ORD-123456789", map[string]any{"total": 1800})
	require.NoError(t, publisher.Publish(ctx, event))
	writer.AssertExpectations(t)

	require.Len(t, sent, 1)
	assert.Equal(t, "ORD-123456789", string(sent[0].Key))
	assert.Equal(t, TypeOrderPlaced, string(sent[0].Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(sent[0].Value, &decoded))
	assert.Equal(t, TypeOrderPlaced, decoded["type"])
	assert.Equal(t, float64(1800), decoded["data"].(map[string]any)["total"])
}

func TestKafkaPublisher_PropagatesWriteError(t *testing.T) {
	writer := new(mockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	err := NewKafkaPublisher(writer).Publish(context.Background(), New(TypeReservationCreated, "1", nil))
	assert.EqualError(t, err, "broker down")
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), New(TypeOrderPlaced, "k", nil)))
}

func TestKafkaPublisher_BoundsEachWrite(t *testing.T) {
	writer := new(mockWriter)
	writer.On("WriteMessages", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= PublishTimeout
	}), mock.Anything).Return(nil).Once()

	require.NoError(t, NewKafkaPublisher(writer).Publish(context.Background(), New(TypeOrderPlaced, "ORD-1", nil)))
	writer.AssertExpectations(t)
}

func TestKafkaPublisher_ReturnsWhenBrokerHangs(t *testing.T) {
	writer := new(mockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		<-args.Get(0).(context.Context).Done()
	}).Return(context.DeadlineExceeded).Once()

	publisher := &KafkaPublisher{Writer: writer, Timeout: 20 * time.Millisecond}
	start := time.Now()
	err := publisher.Publish(context.Background(), New(TypeReservationCreated, "7", nil))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewKafkaWriter_IsBounded(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092"}, "restaurant.events")
	assert.Equal(t, "restaurant.events", w.Topic)
	assert.Equal(t, PublishTimeout, w.WriteTimeout)
	assert.Equal(t, 3, w.MaxAttempts)
}
