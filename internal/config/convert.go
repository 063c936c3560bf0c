package config

import (
	"github.com/danmuck/tlvcodec/internal/protocol/frame"
	"github.com/danmuck/tlvcodec/internal/protocol/session"
)

// Limits converts the size keys into handler limits.
func (c CodecConfig) Limits() frame.Limits {
	return frame.Limits{
		MaxBodyBytes:     uint32(c.MaxBodyBytes),
		MaxBufferedBytes: int(c.MaxBufferedBytes),
		RetainWriteBytes: int(c.RetainWriteBytes),
	}
}

func (c CodecConfig) Session() session.Config {
	return session.Config{ReadChunkBytes: c.ReadChunkBytes}
}
