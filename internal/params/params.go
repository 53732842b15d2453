package params

// Key agreement group
const (
	GENERATOR = 9  // Public base G
	MODULUS   = 23 // Public prime P
)

// Steganography constants
const (
	LENGTH_BITS   = 32 // Bits for storing payload length
	LENGTH_SIZE   = 4
	FLAGS_SIZE    = 1                         // Kind nibble + option bits
	HEADER_SIZE   = LENGTH_SIZE + FLAGS_SIZE  // Clear-text frame header
	HEADER_BITS   = HEADER_SIZE * BITS_PER_BYTE
	BITS_PER_BYTE = 8 // Standard byte size
	CHANNELS      = 3 // RGB channels, alpha is never touched
)

// Frame flag layout
const (
	KIND_MASK       = 0x0F
	FLAG_COMPRESSED = 0x80
	KNOWN_FLAGS     = KIND_MASK | FLAG_COMPRESSED
)

// Keyed transform constants
const (
	KEY_SIZE     = 32 // ChaCha20 key size
	PBKDF2_ITERS = 4096
	KEY_SALT     = "stegokey/keystream/v1"
)
