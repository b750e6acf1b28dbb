package providers

import (
	"fmt"
	"scopewatch/internal/structures"

	"github.com/klauspost/compress/zstd"
)

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
}

type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func NewZstdCompressor() (CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}

// NewCompressorProvider compresses cached response bodies only when
// cache.compress is set; otherwise values pass through untouched.
func NewCompressorProvider(conf *structures.Config) (CompressorInterface, error) {
	if !conf.Cache.Compress {
		return &identityCompressor{}, nil
	}
	return NewZstdCompressor()
}

type identityCompressor struct{}

func (i *identityCompressor) Compress(val []byte) ([]byte, error)   { return val, nil }
func (i *identityCompressor) Decompress(val []byte) ([]byte, error) { return val, nil }
