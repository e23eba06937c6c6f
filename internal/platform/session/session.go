package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cp_stats/internal/platform/metrics"

	log "github.com/sirupsen/logrus"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxBytes = 5 * 1024 * 1024
)

// Options configures a Session. Zero values get sensible defaults.
type Options struct {
	Platform         string
	UserAgent        string
	Timeout          time.Duration
	MaxResponseBytes int64
	Client           *http.Client
	Logger           log.FieldLogger
}

// Session is the HTTP client a platform handler keeps for its lifetime: one
// connection pool, default headers and a bounded wait per outbound call.
type Session struct {
	platform string
	client   *http.Client
	headers  http.Header
	timeout  time.Duration
	maxBytes int64
	log      log.FieldLogger
}

type Response struct {
	StatusCode int
	Body       []byte
}

func New(opts Options) *Session {
	s := &Session{
		platform: opts.Platform,
		client:   opts.Client,
		headers:  http.Header{},
		timeout:  opts.Timeout,
		maxBytes: opts.MaxResponseBytes,
		log:      opts.Logger,
	}
	if s.client == nil {
		s.client = &http.Client{}
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	if s.maxBytes <= 0 {
		s.maxBytes = defaultMaxBytes
	}
	if s.log == nil {
		discard := log.New()
		discard.SetOutput(io.Discard)
		s.log = discard
	}
	if opts.UserAgent != "" {
		s.headers.Set("User-Agent", opts.UserAgent)
	}
	return s
}

func (s *Session) Get(ctx context.Context, call, url string, header http.Header) (*Response, error) {
	return s.Do(ctx, call, http.MethodGet, url, nil, header)
}

func (s *Session) PostJSON(ctx context.Context, call, url string, payload any, header http.Header) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", call, err)
	}
	h := header.Clone()
	if h == nil {
		h = http.Header{}
	}
	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", "application/json")
	}
	return s.Do(ctx, call, http.MethodPost, url, bytes.NewReader(body), h)
}

// Do sends one request. An error means no usable response arrived (transport
// failure, timeout or oversized body); any HTTP status is returned as a Response.
func (s *Session) Do(ctx context.Context, call, method, url string, body io.Reader, header http.Header) (*Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", call, err)
	}
	for k, v := range s.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	for k, v := range header {
		req.Header[k] = append([]string(nil), v...)
	}

	entry := s.log.WithFields(log.Fields{"platform": s.platform, "call": call})
	entry.WithField("url", url).Debug("upstream call issued")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		metrics.ObserveUpstream(s.platform, call, metrics.OutcomeTransport, time.Since(start))
		entry.WithError(err).Warn("upstream call failed")
		return nil, fmt.Errorf("%s request failed: %w", call, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	took := time.Since(start)
	if err == nil && int64(len(data)) > s.maxBytes {
		err = fmt.Errorf("response exceeds %d bytes", s.maxBytes)
	}
	if err != nil {
		metrics.ObserveUpstream(s.platform, call, metrics.OutcomeTransport, took)
		entry.WithError(err).Warn("upstream body unreadable")
		return nil, fmt.Errorf("failed to read %s response: %w", call, err)
	}

	outcome := metrics.OutcomeOK
	if resp.StatusCode != http.StatusOK {
		outcome = metrics.OutcomeHTTPError
	}
	metrics.ObserveUpstream(s.platform, call, outcome, took)
	entry.WithFields(log.Fields{"status": resp.StatusCode, "latency_ms": took.Milliseconds(), "bytes": len(data)}).
		Debug("upstream call returned")

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

func (r *Response) DecodeJSON(v any) error {
	return json.Unmarshal(r.Body, v)
}
