// Package gateway wraps outbound calls to the text and image generation
// providers. It owns the cross-cutting call policy: credential check, bounded
// concurrency, provider pacing, per-call timeout, and a single retry on
// transient transport failure. Content errors (empty reply, malformed JSON,
// provider 4xx) are never retried.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"jongubooks/pkg/inference"
	"jongubooks/pkg/utils"
)

type Gateway struct {
	inferencer inference.Inferencer
	painter    inference.Painter

	// Text and image providers carry separate credentials; either side can be
	// configured without the other.
	textConfigured  bool
	imageConfigured bool

	sem     *semaphore.Weighted
	limiter *rate.Limiter
	timeout time.Duration
}

type Options struct {
	// MaxConcurrent caps simultaneous outbound provider calls. Zero means the
	// default of 4.
	MaxConcurrent int
	// Timeout bounds each individual provider call. Zero means 60s.
	Timeout time.Duration
}

// New builds a gateway. textConfigured and imageConfigured report whether a
// credential was supplied for the respective provider; calls on an
// unconfigured path fail with a ConfigError.
func New(inf inference.Inferencer, painter inference.Painter, textConfigured, imageConfigured bool, opts Options) *Gateway {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Gateway{
		inferencer:      inf,
		painter:         painter,
		textConfigured:  textConfigured,
		imageConfigured: imageConfigured,
		sem:             semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		limiter:         rate.NewLimiter(rate.Every(time.Second), opts.MaxConcurrent),
		timeout:         opts.Timeout,
	}
}

// Complete sends a system instruction and user prompt to the chat provider
// and returns the raw reply text.
func (g *Gateway) Complete(ctx context.Context, op, system, user string, params *openai.ChatCompletionNewParams) (string, error) {
	g.logTokens(op, system+user)
	return g.call(ctx, op, g.textConfigured, func(cctx context.Context) (string, error) {
		return g.inferencer.Infer(cctx, params, system, user)
	})
}

// Structured runs Complete, strips any markdown code fence from the reply,
// and parses the remainder as JSON into out. An empty reply or invalid JSON
// is a GenerationError; there is no re-ask.
func (g *Gateway) Structured(ctx context.Context, op, system, user string, params *openai.ChatCompletionNewParams, out any) error {
	reply, err := g.Complete(ctx, op, system, user, params)
	if err != nil {
		return err
	}
	cleaned := utils.CleanJSON(reply)
	if cleaned == "" {
		return &GenerationError{Op: op, Err: errors.New("empty reply")}
	}
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		log.Debug("unparseable structured reply", "op", op, "reply", utils.LimitStr(cleaned, 200))
		return &GenerationError{Op: op, Err: err}
	}
	return nil
}

// Chat prepends the persona system message to a caller-supplied conversation
// history and returns the single reply.
func (g *Gateway) Chat(ctx context.Context, op, system string, history []inference.Message) (string, error) {
	return g.call(ctx, op, g.textConfigured, func(cctx context.Context) (string, error) {
		return g.inferencer.Chat(cctx, nil, system, history)
	})
}

// PaintURL requests one image and returns the provider URL verbatim. The URL
// is not fetched, cached, or copied locally and may expire.
func (g *Gateway) PaintURL(ctx context.Context, op, prompt string) (string, error) {
	g.logTokens(op, prompt)
	return g.call(ctx, op, g.imageConfigured, func(cctx context.Context) (string, error) {
		return g.painter.Paint(cctx, prompt)
	})
}

func (g *Gateway) call(ctx context.Context, op string, configured bool, fn func(context.Context) (string, error)) (string, error) {
	if !configured {
		return "", &ConfigError{Op: op}
	}
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return "", &GenerationError{Op: op, Err: err}
	}
	defer g.sem.Release(1)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", &GenerationError{Op: op, Err: err}
		}
		cctx, cancel := context.WithTimeout(ctx, g.timeout)
		out, err := fn(cctx)
		cancel()
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil || !transient(err) {
			break
		}
		log.Warn("transient provider failure, retrying once", "op", op, "error", err)
	}
	return "", &GenerationError{Op: op, Err: lastErr}
}

// transient reports whether a failure is worth the single retry: transport
// trouble, timeouts, and provider overload. Content errors are final.
func transient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError || apiErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

func (g *Gateway) logTokens(op, text string) {
	if n, err := utils.NumTokensFromMessages(text); err == nil {
		log.Debug("dispatching provider call", "op", op, "tokens", n)
	}
}
