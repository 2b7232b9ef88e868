package domain

const (
	// Gateway constants
	DEFAULT_IPFS_GATEWAY    = "https://ipfs.io/ipfs/"
	DEFAULT_ARWEAVE_GATEWAY = "https://arweave.net/"

	// Display fallbacks used when off-chain metadata is missing
	FALLBACK_NAME_FORMAT = "NFT #%d"
	FALLBACK_DESCRIPTION = "No description available."
	PLACEHOLDER_IMAGE    = "/images/placeholder.png"

	// Scan range constants
	DEFAULT_SCAN_SIZE = 10
	MAX_SCAN_SIZE     = 100

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
)
