package domain

import "errors"

var (
	// ErrInvalidScanRange is returned when a scan range is empty, inverted or over budget
	ErrInvalidScanRange = errors.New("invalid scan range")

	// ErrUnknownAsset is returned when an asset name is not in the contract registry
	ErrUnknownAsset = errors.New("unknown asset")

	// ErrUnsupportedStandard is returned for token standards the service cannot probe
	ErrUnsupportedStandard = errors.New("unsupported standard")

	// ErrInvalidSignature is returned when a method signature cannot be parsed
	ErrInvalidSignature = errors.New("invalid method signature")

	// ErrInvalidAddress is returned when a string is not a hex address
	ErrInvalidAddress = errors.New("invalid address")

	// ErrMetadataUnavailable is returned when off-chain metadata cannot be fetched or parsed
	ErrMetadataUnavailable = errors.New("metadata unavailable")

	// ErrContractRead is returned when a contract call fails or reverts
	ErrContractRead = errors.New("contract read failed")

	// ErrUnknownAction is returned for transaction actions the service cannot prepare
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidParams is returned when action parameters are missing or malformed
	ErrInvalidParams = errors.New("invalid action parameters")
)
