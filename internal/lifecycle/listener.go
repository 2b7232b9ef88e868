package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/collection"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
)

const DEFAULT_SUBJECT = "transactions.>"

// Status is the lifecycle stage reported for a submitted transaction
type Status string

const (
	StatusSent      Status = "sent"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// Event is a transaction lifecycle notification published by the wallet side
type Event struct {
	Status   Status `json:"status"`
	ChainID  uint64 `json:"chain_id"`
	Contract string `json:"contract"`
	Account  string `json:"account"`
	TxHash   string `json:"tx_hash"`
}

// Config holds the configuration for the lifecycle listener
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	Subject        string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
	// ChainID filters out events for other networks
	ChainID uint64
}

// Listener defines the interface for the lifecycle listener
type Listener interface {
	// Run consumes lifecycle events until ctx is done
	Run(ctx context.Context) error
	// Close closes the NATS connection
	Close()
}

type listener struct {
	nc      adapter.NatsConn
	js      adapter.JetStream
	tracker collection.Tracker
	json    adapter.JSON
	config  Config
}

// NewListener connects to NATS and creates a lifecycle listener
func NewListener(
	cfg Config,
	natsJS adapter.NatsJetStream,
	tracker collection.Tracker,
	jsonAdapter adapter.JSON,
) (Listener, error) {
	if cfg.Subject == "" {
		cfg.Subject = DEFAULT_SUBJECT
	}

	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &listener{
		nc:      nc,
		js:      js,
		tracker: tracker,
		json:    jsonAdapter,
		config:  cfg,
	}, nil
}

// Run starts consuming lifecycle events
func (l *listener) Run(ctx context.Context) error {
	logger.Info("Starting lifecycle listener",
		zap.String("stream", l.config.StreamName),
		zap.String("consumer", l.config.ConsumerName),
		zap.String("subject", l.config.Subject))

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       l.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       l.config.AckWaitTimeout,
		MaxDeliver:    l.config.MaxDeliver,
		FilterSubject: l.config.Subject,
	}

	consumer, err := l.js.CreateOrUpdateConsumer(ctx, l.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.Info("Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming lifecycle events")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down lifecycle listener")
			return ctx.Err()
		case msg := <-msgChan:
			go l.handleMessage(ctx, msg)
		}
	}
}

// handleMessage processes a single lifecycle message
func (l *listener) handleMessage(ctx context.Context, msg adapter.Message) {
	var delivered uint64
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		delivered = metadata.NumDelivered
	}

	var event Event
	if err := l.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.Error(err, zap.String("message", "Failed to unmarshal lifecycle event"))
		l.term(msg)
		return
	}

	logger.Info("Received lifecycle event",
		zap.String("status", string(event.Status)),
		zap.Uint64("chainID", event.ChainID),
		zap.String("contract", event.Contract),
		zap.String("account", event.Account),
		zap.String("txHash", event.TxHash),
		zap.Uint64("deliveryCount", delivered),
	)

	if l.config.ChainID != 0 && event.ChainID != l.config.ChainID {
		logger.Debug("Ignoring lifecycle event for another chain",
			zap.Uint64("chainID", event.ChainID),
			zap.Uint64("expected", l.config.ChainID))
		l.ack(msg)
		return
	}

	switch event.Status {
	case StatusSent:
		logger.Info("Transaction submitted", zap.String("txHash", event.TxHash))
	case StatusFailed:
		logger.Warn("Transaction failed", zap.String("txHash", event.TxHash), zap.String("account", event.Account))
	case StatusConfirmed:
		contractAddress, account, err := parsePair(event)
		if err != nil {
			logger.Error(err, zap.String("message", "Invalid confirmed lifecycle event"), zap.String("txHash", event.TxHash))
			l.term(msg)
			return
		}
		refreshed := l.tracker.RefreshAccount(ctx, contractAddress, account)
		logger.Info("Transaction confirmed",
			zap.String("txHash", event.TxHash),
			zap.Int("viewsRefreshed", refreshed))
	default:
		logger.Error(fmt.Errorf("unknown lifecycle status: %s", event.Status), zap.String("txHash", event.TxHash))
		l.term(msg)
		return
	}

	l.ack(msg)
}

func parsePair(event Event) (common.Address, common.Address, error) {
	contractAddress, err := domain.ParseAddress(event.Contract)
	if err != nil {
		return common.Address{}, common.Address{}, fmt.Errorf("contract: %w", err)
	}
	account, err := domain.ParseAddress(event.Account)
	if err != nil {
		return common.Address{}, common.Address{}, fmt.Errorf("account: %w", err)
	}
	return contractAddress, account, nil
}

func (l *listener) ack(msg adapter.Message) {
	if err := msg.Ack(); err != nil {
		logger.Error(err, zap.String("message", "Failed to ACK message"))
	}
}

func (l *listener) term(msg adapter.Message) {
	if err := msg.Term(); err != nil {
		logger.Error(err, zap.String("message", "Failed to terminate message"))
	}
}

// Close closes the listener and cleans up resources
func (l *listener) Close() {
	if l.nc == nil {
		return
	}

	l.nc.Close()
}
