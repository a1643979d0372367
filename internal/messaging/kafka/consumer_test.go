package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockConsumerGroup struct {
	consumeFn func(context.Context, []string, sarama.ConsumerGroupHandler) error
	errorsCh  chan error
	closeFn   func() error
}

func (m *mockConsumerGroup) Consume(ctx context.Context, topics []string, handler sarama.ConsumerGroupHandler) error {
	if m.consumeFn != nil {
		return m.consumeFn(ctx, topics, handler)
	}
	return nil
}

func (m *mockConsumerGroup) Errors() <-chan error {
	return m.errorsCh
}

func (m *mockConsumerGroup) Close() error {
	if m.closeFn != nil {
		return m.closeFn()
	}
	if m.errorsCh != nil {
		close(m.errorsCh)
	}
	return nil
}

func (m *mockConsumerGroup) Pause(map[string][]int32)  {}
func (m *mockConsumerGroup) Resume(map[string][]int32) {}
func (m *mockConsumerGroup) PauseAll()                 {}
func (m *mockConsumerGroup) ResumeAll()                {}

type mockSession struct {
	ctx    context.Context
	marked []*sarama.ConsumerMessage
}

func (m *mockSession) Claims() map[string][]int32               { return nil }
func (m *mockSession) MemberID() string                         { return "member" }
func (m *mockSession) GenerationID() int32                      { return 1 }
func (m *mockSession) MarkOffset(string, int32, int64, string)  {}
func (m *mockSession) Commit()                                  {}
func (m *mockSession) ResetOffset(string, int32, int64, string) {}
func (m *mockSession) Context() context.Context                 { return m.ctx }
func (m *mockSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	m.marked = append(m.marked, msg)
}

type mockClaim struct {
	topic     string
	partition int32
	messages  chan *sarama.ConsumerMessage
}

func (m *mockClaim) Topic() string                            { return m.topic }
func (m *mockClaim) Partition() int32                         { return m.partition }
func (m *mockClaim) InitialOffset() int64                     { return 0 }
func (m *mockClaim) HighWaterMarkOffset() int64               { return 0 }
func (m *mockClaim) Messages() <-chan *sarama.ConsumerMessage { return m.messages }

func quietEntry() *log.Entry {
	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	return log.NewEntry(logger)
}

func retryHeader(count string) []*sarama.RecordHeader {
	return []*sarama.RecordHeader{{Key: []byte(HeaderRetryCount), Value: []byte(count)}}
}

func TestNewConsumerErrors(t *testing.T) {
	_, err := NewConsumer([]string{"invalid-broker:9092"}, "group", []string{"topic"},
		func(context.Context, *sarama.ConsumerMessage) error { return nil })
	assert.Error(t, err)
}

func TestConsumerStartStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	consumeCalls := 0
	errorsCh := make(chan error, 1)
	group := &mockConsumerGroup{
		errorsCh: errorsCh,
		consumeFn: func(_ context.Context, topics []string, _ sarama.ConsumerGroupHandler) error {
			consumeCalls++
			assert.Equal(t, []string{TopicWarehouseReceipts}, topics)
			cancel()
			return nil
		},
		closeFn: func() error {
			close(errorsCh)
			return nil
		},
	}

	consumer := NewConsumerFromGroup(group, []string{TopicWarehouseReceipts},
		func(context.Context, *sarama.ConsumerMessage) error { return nil },
		WithConsumerLogger(quietEntry()))

	errorsCh <- errors.New("background error")
	require.NoError(t, consumer.Run(ctx))
	assert.Positive(t, consumeCalls)
}

func TestConsumerStopError(t *testing.T) {
	errorsCh := make(chan error)
	group := &mockConsumerGroup{errorsCh: errorsCh, closeFn: func() error {
		close(errorsCh)
		return errors.New("close failed")
	}}
	consumer := NewConsumerFromGroup(group, nil, nil, WithConsumerLogger(quietEntry()))
	assert.Error(t, consumer.Stop())
}

func TestConsumerSetupCleanup(t *testing.T) {
	consumer := &Consumer{}
	assert.NoError(t, consumer.Setup(nil))
	assert.NoError(t, consumer.Cleanup(nil))
}

func TestConsumeClaim(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := NewConsumerFromGroup(nil, nil,
		func(context.Context, *sarama.ConsumerMessage) error { return nil },
		WithConsumerLogger(quietEntry()))

	session := &mockSession{ctx: ctx}
	claim := &mockClaim{topic: "topic", messages: make(chan *sarama.ConsumerMessage, 2)}
	claim.messages <- &sarama.ConsumerMessage{Topic: "topic", Offset: 1, Key: []byte("k"), Value: []byte("v")}
	close(claim.messages)

	require.NoError(t, consumer.ConsumeClaim(session, claim))
	assert.Len(t, session.marked, 1)
}

func TestConsumeClaimFailedHandler(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := NewConsumerFromGroup(nil, nil,
		func(context.Context, *sarama.ConsumerMessage) error { return errors.New("failed") },
		WithConsumerLogger(quietEntry()), WithRetries(1, 0))

	session := &mockSession{ctx: ctx}
	claim := &mockClaim{topic: "topic", messages: make(chan *sarama.ConsumerMessage, 1)}
	claim.messages <- &sarama.ConsumerMessage{Topic: "topic", Offset: 1, Key: []byte("k"), Value: []byte("v")}
	close(claim.messages)

	require.NoError(t, consumer.ConsumeClaim(session, claim))
	assert.Empty(t, session.marked, "failed message must not be marked")
}

func TestHandleMessageWithRetry(t *testing.T) {
	msg := &sarama.ConsumerMessage{Topic: "topic", Key: []byte("key"), Value: []byte(`{"a":1}`)}

	t.Run("success", func(t *testing.T) {
		consumer := NewConsumerFromGroup(nil, nil,
			func(context.Context, *sarama.ConsumerMessage) error { return nil },
			WithConsumerLogger(quietEntry()))
		assert.NoError(t, consumer.handleMessageWithRetry(context.Background(), msg))
	})

	t.Run("retries remaining attempts", func(t *testing.T) {
		attempts := 0
		consumer := NewConsumerFromGroup(nil, nil,
			func(context.Context, *sarama.ConsumerMessage) error {
				attempts++
				return errors.New("temporary")
			},
			WithConsumerLogger(quietEntry()), WithRetries(3, 0))

		retrying := &sarama.ConsumerMessage{Topic: "topic", Key: []byte("key"), Headers: retryHeader("1")}
		assert.Error(t, consumer.handleMessageWithRetry(context.Background(), retrying))
		assert.Equal(t, 2, attempts)
	})

	t.Run("permanent error skips retries", func(t *testing.T) {
		attempts := 0
		mockProducer := mocks.NewSyncProducer(t, nil)
		mockProducer.ExpectSendMessageAndSucceed()
		consumer := NewConsumerFromGroup(nil, nil,
			func(context.Context, *sarama.ConsumerMessage) error {
				attempts++
				return Permanent(errors.New("bad payload"))
			},
			WithConsumerLogger(quietEntry()), WithRetries(5, 0), WithDLQ(NewProducerFromSync(mockProducer)))

		assert.NoError(t, consumer.handleMessageWithRetry(context.Background(), msg))
		assert.Equal(t, 1, attempts)
		require.NoError(t, mockProducer.Close())
	})

	t.Run("dlq failure", func(t *testing.T) {
		mockProducer := mocks.NewSyncProducer(t, nil)
		mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
		consumer := NewConsumerFromGroup(nil, nil,
			func(context.Context, *sarama.ConsumerMessage) error { return errors.New("permanent") },
			WithConsumerLogger(quietEntry()), WithRetries(3, 0), WithDLQ(NewProducerFromSync(mockProducer)))

		retrying := &sarama.ConsumerMessage{Topic: "topic", Key: []byte("key"), Headers: retryHeader("3")}
		assert.Error(t, consumer.handleMessageWithRetry(context.Background(), retrying))
		require.NoError(t, mockProducer.Close())
	})
}

func TestGetRetryCount(t *testing.T) {
	consumer := &Consumer{}

	assert.Equal(t, 5, consumer.getRetryCount(&sarama.ConsumerMessage{Headers: retryHeader("5")}))
	assert.Zero(t, consumer.getRetryCount(&sarama.ConsumerMessage{Headers: retryHeader("bad")}))
	assert.Zero(t, consumer.getRetryCount(&sarama.ConsumerMessage{}))
}

func TestSendToDLQ(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var letter DeadLetter
		if err := json.Unmarshal(value, &letter); err != nil {
			return err
		}
		if letter.OriginalTopic != TopicWarehouseReceipts || letter.OriginalOffset != 42 || letter.RetryCount != 2 {
			return fmt.Errorf("unexpected dead letter: %+v", letter)
		}
		return nil
	})

	consumer := NewConsumerFromGroup(nil, nil, nil,
		WithConsumerLogger(quietEntry()), WithDLQ(NewProducerFromSync(mockProducer)))

	msg := &sarama.ConsumerMessage{Topic: TopicWarehouseReceipts, Partition: 1, Offset: 42, Key: []byte("k"), Value: []byte("v")}
	require.NoError(t, consumer.sendToDLQ(context.Background(), msg, errors.New("boom"), 2))
	require.NoError(t, mockProducer.Close())
}

func TestConsumeClaimStopsOnContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	consumer := NewConsumerFromGroup(nil, nil,
		func(context.Context, *sarama.ConsumerMessage) error { return nil },
		WithConsumerLogger(quietEntry()))
	session := &mockSession{ctx: ctx}
	claim := &mockClaim{topic: "topic", messages: make(chan *sarama.ConsumerMessage)}

	done := make(chan struct{})
	go func() {
		_ = consumer.ConsumeClaim(session, claim)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ConsumeClaim did not stop after context cancellation")
	}
}
