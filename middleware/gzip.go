package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

var gzipWriterPool = sync.Pool{
	New: func() any {
		w := gzip.NewWriter(nil)
		return w
	},
}

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// GZip transparently decompresses gzip-encoded request bodies and
// compresses response bodies for clients that advertise gzip support.
// Reader and writer instances are pooled across requests.
func GZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		acceptEncoding := req.Header.Get("Accept-Encoding")
		supportsGzip := strings.Contains(acceptEncoding, "gzip")

		contentEncoding := req.Header.Get("Content-Encoding")
		isGzipRequest := strings.Contains(contentEncoding, "gzip")

		if isGzipRequest && req.Body != nil {
			gzipReader := gzipReaderPool.Get().(*gzip.Reader)
			if err := gzipReader.Reset(req.Body); err != nil {
				gzipReaderPool.Put(gzipReader)
				http.Error(w, "Invalid gzip data", http.StatusBadRequest)
				return
			}

			req.Body = &wrappedReadCloser{
				Reader: gzipReader,
				OnClose: func() {
					gzipReader.Close()
					gzipReaderPool.Put(gzipReader)
				},
			}
			req.Header.Del("Content-Encoding")
			req.Header.Del("Content-Length")
		}

		if !supportsGzip {
			next.ServeHTTP(w, req)
			return
		}

		gzipWriter := gzipWriterPool.Get().(*gzip.Writer)
		gzipWriter.Reset(w)

		gzipRW := &gzipResponseWriter{
			ResponseWriter: w,
			gzipWriter:     gzipWriter,
		}

		next.ServeHTTP(gzipRW, req)

		gzipWriter.Close()
		gzipWriterPool.Put(gzipWriter)
	})
}

type wrappedReadCloser struct {
	io.Reader
	OnClose func()
}

func (w *wrappedReadCloser) Close() error {
	if w.OnClose != nil {
		w.OnClose()
	}
	return nil
}

type gzipResponseWriter struct {
	http.ResponseWriter
	gzipWriter  *gzip.Writer
	wroteHeader bool
}

// WriteHeader marks the response as gzip-encoded exactly once. The
// Content-Length of the uncompressed payload no longer applies and is
// dropped.
func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Add("Vary", "Accept-Encoding")
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.gzipWriter.Write(data)
}

func (w *gzipResponseWriter) Close() error {
	return w.gzipWriter.Close()
}
