package lifecycle_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/lifecycle"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/mocks"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

var (
	testContract = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testAccount  = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

// testListenerMocks contains all the mocks needed for testing the listener
type testListenerMocks struct {
	ctrl      *gomock.Controller
	natsJS    *mocks.MockNatsJetStream
	natsConn  *mocks.MockNatsConn
	jetStream *mocks.MockJetStream
	tracker   *mocks.MockCollectionTracker
	config    lifecycle.Config
}

func setupTestListener(t *testing.T) *testListenerMocks {
	ctrl := gomock.NewController(t)

	return &testListenerMocks{
		ctrl:      ctrl,
		natsJS:    mocks.NewMockNatsJetStream(ctrl),
		natsConn:  mocks.NewMockNatsConn(ctrl),
		jetStream: mocks.NewMockJetStream(ctrl),
		tracker:   mocks.NewMockCollectionTracker(ctrl),
		config: lifecycle.Config{
			URL:            "nats://localhost:4222",
			StreamName:     "transactions",
			ConsumerName:   "marketplace-lifecycle",
			MaxReconnects:  10,
			ReconnectWait:  time.Second,
			ConnectionName: "test-marketplace",
			AckWaitTimeout: 30 * time.Second,
			MaxDeliver:     5,
			ChainID:        1043,
		},
	}
}

func (tm *testListenerMocks) newListener(t *testing.T) lifecycle.Listener {
	tm.natsJS.
		EXPECT().
		Connect(tm.config.URL, gomock.Any()).
		Return(tm.natsConn, tm.jetStream, nil)

	l, err := lifecycle.NewListener(tm.config, tm.natsJS, tm.tracker, adapter.NewJSON())
	require.NoError(t, err)
	return l
}

// deliver runs the listener, hands msg to its consume handler and returns
// once the message was acked or terminated
func (tm *testListenerMocks) deliver(t *testing.T, l lifecycle.Listener, msg *mocks.MockJetStreamMessage, settled <-chan string) string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handlers := make(chan adapter.MessageHandler, 1)
	consumer := mocks.NewMockNatsConsumer(tm.ctrl)
	consumeContext := mocks.NewMockConsumeContext(tm.ctrl)
	consumeContext.EXPECT().Stop().AnyTimes()

	consumer.EXPECT().
		Info(gomock.Any()).
		Return(&jetstream.ConsumerInfo{Name: tm.config.ConsumerName}, nil)
	consumer.EXPECT().
		Consume(gomock.Any()).
		DoAndReturn(func(handler adapter.MessageHandler, opts ...jetstream.PullConsumeOpt) (adapter.ConsumeContext, error) {
			handlers <- handler
			return consumeContext, nil
		})
	tm.jetStream.EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(consumer, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = l.Run(ctx)
	}()

	select {
	case handler := <-handlers:
		handler(msg)
	case <-time.After(5 * time.Second):
		t.Fatal("listener never subscribed")
	}

	var outcome string
	select {
	case outcome = <-settled:
	case <-time.After(5 * time.Second):
		t.Fatal("message was never settled")
	}

	cancel()
	<-done
	return outcome
}

// message builds a mock message whose Ack and Term report on the returned channel
func (tm *testListenerMocks) message(data string) (*mocks.MockJetStreamMessage, <-chan string) {
	settled := make(chan string, 1)
	msg := mocks.NewMockJetStreamMessage(tm.ctrl)
	msg.EXPECT().Data().Return([]byte(data)).AnyTimes()
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil).AnyTimes()
	msg.EXPECT().Ack().DoAndReturn(func() error {
		settled <- "ack"
		return nil
	}).MaxTimes(1)
	msg.EXPECT().Term().DoAndReturn(func() error {
		settled <- "term"
		return nil
	}).MaxTimes(1)
	return msg, settled
}

func TestListener_NewListener_ConnectError(t *testing.T) {
	tm := setupTestListener(t)

	tm.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(nil, nil, assert.AnError)

	l, err := lifecycle.NewListener(tm.config, tm.natsJS, tm.tracker, adapter.NewJSON())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to NATS")
	assert.Nil(t, l)
}

func TestListener_Run_CreateConsumerError(t *testing.T) {
	tm := setupTestListener(t)
	l := tm.newListener(t)

	tm.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(),
			"transactions",
			jetstream.ConsumerConfig{
				Durable:       tm.config.ConsumerName,
				AckPolicy:     jetstream.AckExplicitPolicy,
				AckWait:       tm.config.AckWaitTimeout,
				MaxDeliver:    tm.config.MaxDeliver,
				FilterSubject: lifecycle.DEFAULT_SUBJECT,
			}).
		Return(nil, assert.AnError)

	err := l.Run(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create/update consumer")
}

func TestListener_Run_ConsumerInfoError(t *testing.T) {
	tm := setupTestListener(t)
	l := tm.newListener(t)

	consumer := mocks.NewMockNatsConsumer(tm.ctrl)
	consumer.EXPECT().
		Info(gomock.Any()).
		Return(nil, assert.AnError)
	tm.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(consumer, nil)

	err := l.Run(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get consumer info")
}

func TestListener_Run_ContextCancellation(t *testing.T) {
	tm := setupTestListener(t)
	l := tm.newListener(t)

	ctx, cancel := context.WithCancel(context.Background())

	consumer := mocks.NewMockNatsConsumer(tm.ctrl)
	consumeContext := mocks.NewMockConsumeContext(tm.ctrl)
	consumeContext.EXPECT().Stop()
	consumer.EXPECT().
		Info(gomock.Any()).
		Return(&jetstream.ConsumerInfo{Name: tm.config.ConsumerName}, nil)
	consumer.EXPECT().
		Consume(gomock.Any()).
		DoAndReturn(func(handler adapter.MessageHandler, opts ...jetstream.PullConsumeOpt) (adapter.ConsumeContext, error) {
			cancel()
			return consumeContext, nil
		})
	tm.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(consumer, nil)

	errChan := make(chan error, 1)
	go func() {
		errChan <- l.Run(ctx)
	}()

	select {
	case err := <-errChan:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out")
	}
}

func TestListener_ConfirmedRefreshesViews(t *testing.T) {
	tm := setupTestListener(t)
	l := tm.newListener(t)

	tm.tracker.EXPECT().
		RefreshAccount(gomock.Any(), testContract, testAccount).
		Return(2)

	msg, settled := tm.message(`{"status":"confirmed","chain_id":1043,"contract":"` + testContract.Hex() + `","account":"0x2222222222222222222222222222222222222222","tx_hash":"0xabc"}`)
	assert.Equal(t, "ack", tm.deliver(t, l, msg, settled))
}

func TestListener_SentAndFailedAreAcked(t *testing.T) {
	for _, status := range []string{"sent", "failed"} {
		t.Run(status, func(t *testing.T) {
			tm := setupTestListener(t)
			l := tm.newListener(t)

			msg, settled := tm.message(`{"status":"` + status + `","chain_id":1043,"contract":"` + testContract.Hex() + `","account":"` + testAccount.Hex() + `","tx_hash":"0xabc"}`)
			assert.Equal(t, "ack", tm.deliver(t, l, msg, settled))
		})
	}
}

func TestListener_OtherChainIsIgnored(t *testing.T) {
	tm := setupTestListener(t)
	l := tm.newListener(t)

	msg, settled := tm.message(`{"status":"confirmed","chain_id":1,"contract":"` + testContract.Hex() + `","account":"` + testAccount.Hex() + `","tx_hash":"0xabc"}`)
	assert.Equal(t, "ack", tm.deliver(t, l, msg, settled))
}

func TestListener_BadMessagesAreTerminated(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "invalid JSON", data: `{invalid json}`},
		{name: "unknown status", data: `{"status":"pending","chain_id":1043}`},
		{name: "confirmed without account", data: `{"status":"confirmed","chain_id":1043,"contract":"` + testContract.Hex() + `"}`},
		{name: "confirmed with bad contract", data: `{"status":"confirmed","chain_id":1043,"contract":"0x12","account":"` + testAccount.Hex() + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestListener(t)
			l := tm.newListener(t)

			msg, settled := tm.message(tt.data)
			assert.Equal(t, "term", tm.deliver(t, l, msg, settled))
		})
	}
}

func TestListener_Close(t *testing.T) {
	tm := setupTestListener(t)
	l := tm.newListener(t)

	tm.natsConn.EXPECT().Close()
	l.Close()
}
