package session

// Config defines stream pumping behavior.
type Config struct {
	// ReadChunkBytes is the largest fragment read from the source at once.
	ReadChunkBytes int
}

func DefaultConfig() Config {
	return Config{
		ReadChunkBytes: 4096,
	}
}
