package rest

import (
	"io"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/zstd"
)

/*
NewCompressor response compressor gzip/deflate bawaan chi + zstd. dipanggil sekali waktu router dibuat,
content type selain json tidak dikompres.
*/
func NewCompressor(level int) *middleware.Compressor {
	compressor := middleware.NewCompressor(level, "application/json")
	compressor.SetEncoder("zstd", func(w io.Writer, level int) io.Writer {
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		if err != nil {
			return nil
		}
		return enc
	})
	return compressor
}
