package refine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/valpere/promptlight/internal/metrics"
)

// Dispatcher routes refinement requests to the provider adapters.
// It keeps no per-request state and is safe for concurrent use.
type Dispatcher struct {
	client   *http.Client
	baseURLs map[Provider]string
	log      zerolog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the HTTP client used for provider calls.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) { d.client = c }
}

// WithBaseURL points a provider at a different host, e.g. an
// OpenAI-compatible gateway. The route is still appended.
func WithBaseURL(p Provider, baseURL string) Option {
	return func(d *Dispatcher) {
		if baseURL != "" {
			d.baseURLs[p] = baseURL
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// NewDispatcher creates a dispatcher with a 120s client timeout.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		client:   &http.Client{Timeout: 120 * time.Second},
		baseURLs: make(map[Provider]string),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Refine issues exactly one POST to the selected provider and returns the
// model's text verbatim. Failures are always *Error.
func (d *Dispatcher) Refine(ctx context.Context, req Request) (string, error) {
	a, ok := adapters[req.Provider]
	if !ok {
		return "", &Error{Kind: KindUnsupportedProvider, Provider: req.Provider}
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return "", &Error{Kind: KindEmptyPrompt, Provider: req.Provider}
	}
	if a.credentialRequired && req.Credential == "" {
		return "", &Error{Kind: KindMissingCredential, Provider: req.Provider}
	}

	model := req.Model
	if model == "" {
		model = a.defaultModel
	}

	base := a.baseURL
	if override, ok := d.baseURLs[req.Provider]; ok {
		base = override
	}
	url := a.url(base, req.Endpoint)

	start := time.Now()
	text, err := d.call(ctx, a, req, model, url)
	elapsed := time.Since(start)

	result := "success"
	ev := d.log.Debug()
	if err != nil {
		result = string(err.Kind)
		ev = d.log.Warn().Err(err)
	}
	metrics.ObserveProvider(string(req.Provider), metricModel(a, model), result, elapsed)
	ev.Str("provider", string(req.Provider)).
		Str("model", model).
		Str("url", url).
		Dur("elapsed", elapsed).
		Msg("refinement finished")

	if err != nil {
		return "", err
	}
	return text, nil
}

// metricModel bounds the model label. Callers choose models freely, so
// anything other than the provider default is reported as "custom".
func metricModel(a adapter, model string) string {
	if model == a.defaultModel {
		return model
	}
	return "custom"
}

func (d *Dispatcher) call(ctx context.Context, a adapter, req Request, model, url string) (string, *Error) {
	body, err := json.Marshal(a.build(model, req.Prompt))
	if err != nil {
		return "", requestFailed(req.Provider, fmt.Errorf("marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", requestFailed(req.Provider, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", contentType)
	a.authorize(httpReq.Header, req.Credential)

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return "", requestFailed(req.Provider, err)
	}
	defer resp.Body.Close()

	// Status codes are not inspected: an error body that is not JSON fails
	// here, one that is JSON fails extraction below.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", requestFailed(req.Provider, fmt.Errorf("read response: %w", err))
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", requestFailed(req.Provider, fmt.Errorf("decode response: %w", err))
	}

	text, ok := a.extract(doc)
	if !ok {
		return "", &Error{
			Kind:     KindMalformedResponse,
			Provider: req.Provider,
			Detail:   fmt.Sprintf("missing string at %s", describePath(a.responsePath)),
		}
	}
	return text, nil
}
