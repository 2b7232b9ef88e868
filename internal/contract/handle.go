package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
)

// Config holds the read policy shared by every handle of a provider
type Config struct {
	ChainID uint64
	// ReadTimeout bounds a single eth_call attempt
	ReadTimeout time.Duration
	// RetryMaxElapsed bounds the total time spent retrying transient RPC failures
	RetryMaxElapsed time.Duration
	// MaxRetries bounds the number of retries after the first attempt
	MaxRetries uint64
}

// Overrides carries the optional transaction fields of a write
type Overrides struct {
	// Value is the native amount in wei attached to a payable call
	Value *big.Int
}

// TransactionIntent is an unsigned call the user's wallet signs and submits
type TransactionIntent struct {
	ChainID   string `json:"chain_id"`
	To        string `json:"to"`
	Data      string `json:"data"`
	Value     string `json:"value"`
	Method    string `json:"method"`
	Signature string `json:"signature"`
}

// Handle is a contract bound to an address on the provider's chain
//
//go:generate mockgen -source=handle.go -destination=../mocks/contract.go -package=mocks -mock_names=Handle=MockContractHandle,Provider=MockContractProvider
type Handle interface {
	// Address returns the contract address
	Address() common.Address

	// ChainID returns the chain the contract lives on
	ChainID() uint64

	// Read performs a read-only call of the method described by signature
	// and returns the decoded outputs in declaration order
	Read(ctx context.Context, signature string, params ...interface{}) ([]interface{}, error)

	// Prepare encodes a state changing call without sending it
	Prepare(signature string, params []interface{}, overrides *Overrides) (*TransactionIntent, error)
}

// Provider creates handles for contracts on a single chain
type Provider interface {
	// Handle returns a handle for the contract at address
	Handle(address common.Address) Handle

	// VerifyChain checks the node serves the configured chain id
	VerifyChain(ctx context.Context) error
}

type provider struct {
	client  adapter.EthClient
	cfg     Config
	methods *methodCache
}

// NewProvider creates a provider bound to one client for the lifetime of the process
func NewProvider(client adapter.EthClient, cfg Config) Provider {
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.RetryMaxElapsed <= 0 {
		cfg.RetryMaxElapsed = 5 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	return &provider{client: client, cfg: cfg, methods: &methodCache{}}
}

func (p *provider) Handle(address common.Address) Handle {
	return &handle{provider: p, address: address}
}

func (p *provider) VerifyChain(ctx context.Context) error {
	chainID, err := p.client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain id: %w", err)
	}
	if !chainID.IsUint64() || chainID.Uint64() != p.cfg.ChainID {
		return fmt.Errorf("node serves chain %s, expected %d", chainID.String(), p.cfg.ChainID)
	}
	return nil
}

type handle struct {
	provider *provider
	address  common.Address
}

func (h *handle) Address() common.Address {
	return h.address
}

func (h *handle) ChainID() uint64 {
	return h.provider.cfg.ChainID
}

func (h *handle) Read(ctx context.Context, signature string, params ...interface{}) ([]interface{}, error) {
	method, err := h.provider.methods.get(signature)
	if err != nil {
		return nil, err
	}

	args, err := method.Inputs.Pack(params...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method.Sig, err)
	}
	data := append(append([]byte{}, method.ID...), args...)

	result, err := h.call(ctx, method.Sig, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s on %s: %v", domain.ErrContractRead, method.Sig, h.address.Hex(), err)
	}

	outputs, err := method.Outputs.Unpack(result)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unpack %s on %s: %v", domain.ErrContractRead, method.Sig, h.address.Hex(), err)
	}

	return outputs, nil
}

// call runs eth_call, retrying transient failures. Reverts are final.
func (h *handle) call(ctx context.Context, method string, data []byte) ([]byte, error) {
	cfg := h.provider.cfg

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = cfg.RetryMaxElapsed
	policy := backoff.WithContext(backoff.WithMaxRetries(b, cfg.MaxRetries), ctx)

	msg := ethereum.CallMsg{To: &h.address, Data: data}

	var result []byte
	operation := func() error {
		callCtx, cancel := context.WithTimeout(ctx, cfg.ReadTimeout)
		defer cancel()

		out, err := h.provider.client.CallContract(callCtx, msg, nil)
		if err != nil {
			if isRevert(err) || ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		result = out
		return nil
	}

	notify := func(err error, next time.Duration) {
		logger.DebugCtx(ctx, "Contract read failed, retrying",
			zap.String("contract", h.address.Hex()),
			zap.String("method", method),
			zap.Duration("next_retry_in", next),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, err
	}

	return result, nil
}

func (h *handle) Prepare(signature string, params []interface{}, overrides *Overrides) (*TransactionIntent, error) {
	method, err := h.provider.methods.get(signature)
	if err != nil {
		return nil, err
	}

	value := big.NewInt(0)
	if overrides != nil && overrides.Value != nil {
		if overrides.Value.Sign() < 0 {
			return nil, fmt.Errorf("negative value for %s", method.Sig)
		}
		value = overrides.Value
	}
	if value.Sign() > 0 && !method.IsPayable() {
		return nil, fmt.Errorf("%s is not payable", method.Sig)
	}

	args, err := method.Inputs.Pack(params...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method.Sig, err)
	}
	data := append(append([]byte{}, method.ID...), args...)

	return &TransactionIntent{
		ChainID:   fmt.Sprintf("%d", h.provider.cfg.ChainID),
		To:        h.address.Hex(),
		Data:      hexutil.Encode(data),
		Value:     value.String(),
		Method:    method.RawName,
		Signature: method.Sig,
	}, nil
}

// isRevert checks if the node rejected the call itself rather than failing to serve it
func isRevert(err error) bool {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) && dataErr.ErrorData() != nil {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "execution reverted") ||
		strings.Contains(msg, "invalid opcode") ||
		strings.Contains(msg, "out of gas")
}
