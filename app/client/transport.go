package client

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// newTransport returns a pooled transport shared by every fetch of a run.
func newTransport(connectTimeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	t.MaxIdleConnsPerHost = 64
	return t
}

// loggingTransport logs every request with its status and duration.
// With logBodies set it also logs response bodies.
type loggingTransport struct {
	base      http.RoundTripper
	logger    *zap.Logger
	logBodies bool
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, err
	}

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
	}
	if t.logBodies && resp.Body != nil {
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, readErr
		}
		resp.Body = io.NopCloser(bytes.NewReader(body))
		fields = append(fields, zap.ByteString("body", body))
	}
	t.logger.Debug("request", fields...)

	return resp, nil
}
