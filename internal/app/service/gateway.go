package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dodomains/dodomains/internal/models"
)

// GeneratePath is appended to the configured generator base URL.
const GeneratePath = "/api/generate"

// maxResponseSize caps the generation response body at 4MB.
const maxResponseSize = 4 << 20

// ErrRequestFailed covers every way a generation call can fail: transport
// errors, non-2xx statuses and undecodable bodies.
var ErrRequestFailed = errors.New("generation request failed")

type HTTPGateway struct {
	client  *http.Client
	url     string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGateway builds a gateway posting to baseURL + GeneratePath. A zero
// timeout means the call may take as long as the backend needs.
func NewGateway(baseURL string, timeout time.Duration, client *http.Client, l *zap.Logger) *HTTPGateway {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPGateway{
		client:  client,
		url:     strings.TrimRight(baseURL, "/") + GeneratePath,
		timeout: timeout,
		logger:  l,
	}
}

// Generate posts req as JSON and decodes the suggestion list. The call is
// detached from ctx cancellation; only the configured timeout can cut it.
func (g *HTTPGateway) Generate(ctx context.Context, req models.GenerationRequest) ([]models.SuggestionRecord, error) {
	ctx = context.WithoutCancel(ctx)
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if req.Keywords == nil {
		req.Keywords = []string{}
	}
	if req.TLDs == nil {
		req.TLDs = []string{}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encode body: %v", ErrRequestFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	g.logger.Debug("generation response",
		zap.String("url", g.url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var out *models.GenerateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrRequestFailed, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: null body", ErrRequestFailed)
	}
	if out.Results == nil {
		out.Results = []models.SuggestionRecord{}
	}

	return out.Results, nil
}
