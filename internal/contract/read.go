package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ReadBigInt reads a method returning a single integer
func ReadBigInt(ctx context.Context, h Handle, signature string, params ...interface{}) (*big.Int, error) {
	v, err := readSingle(ctx, h, signature, params...)
	if err != nil {
		return nil, err
	}
	return toBigInt(signature, v)
}

// ReadString reads a method returning a single string
func ReadString(ctx context.Context, h Handle, signature string, params ...interface{}) (string, error) {
	v, err := readSingle(ctx, h, signature, params...)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s returned %T, expected string", signature, v)
	}
	return s, nil
}

// ReadAddress reads a method returning a single address
func ReadAddress(ctx context.Context, h Handle, signature string, params ...interface{}) (common.Address, error) {
	v, err := readSingle(ctx, h, signature, params...)
	if err != nil {
		return common.Address{}, err
	}
	addr, ok := v.(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("%s returned %T, expected address", signature, v)
	}
	return addr, nil
}

// ReadBigInts reads a method returning a single uint256[]
func ReadBigInts(ctx context.Context, h Handle, signature string, params ...interface{}) ([]*big.Int, error) {
	v, err := readSingle(ctx, h, signature, params...)
	if err != nil {
		return nil, err
	}
	values, ok := v.([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s returned %T, expected uint256[]", signature, v)
	}
	return values, nil
}

// ReadBigIntPair reads a method returning two integers
func ReadBigIntPair(ctx context.Context, h Handle, signature string, params ...interface{}) (*big.Int, *big.Int, error) {
	out, err := h.Read(ctx, signature, params...)
	if err != nil {
		return nil, nil, err
	}
	if len(out) != 2 {
		return nil, nil, fmt.Errorf("%s returned %d values, expected 2", signature, len(out))
	}
	first, err := toBigInt(signature, out[0])
	if err != nil {
		return nil, nil, err
	}
	second, err := toBigInt(signature, out[1])
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func readSingle(ctx context.Context, h Handle, signature string, params ...interface{}) (interface{}, error) {
	out, err := h.Read(ctx, signature, params...)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("%s returned %d values, expected 1", signature, len(out))
	}
	return out[0], nil
}

// toBigInt widens the fixed size integers go-ethereum decodes small types into
func toBigInt(signature string, v interface{}) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		return n, nil
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case int8:
		return big.NewInt(int64(n)), nil
	case int16:
		return big.NewInt(int64(n)), nil
	case int32:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	default:
		return nil, fmt.Errorf("%s returned %T, expected integer", signature, v)
	}
}
