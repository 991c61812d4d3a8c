package restapi

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/klauspost/compress/gzip"
)

// reportMinGzipSize skips compression for JSON error bodies and other tiny responses;
// report pages and delta listings are well above it.
const reportMinGzipSize = 512

// CompressionMiddleware gzips report pages and API responses for clients that accept it.
func CompressionMiddleware(next http.Handler) http.Handler {
	wrapper, err := gzhttp.NewWrapper(
		gzhttp.MinSize(reportMinGzipSize),
		gzhttp.CompressionLevel(gzip.DefaultCompression),
	)
	if err != nil {
		return gzhttp.GzipHandler(next)
	}
	return wrapper(next)
}
