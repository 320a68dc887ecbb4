package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	ai "github.com/mchlmayer/thumbpro"
	"github.com/mchlmayer/thumbpro/internal/prompt"
	"github.com/mchlmayer/thumbpro/internal/provider/anthropic"
	"github.com/mchlmayer/thumbpro/internal/provider/google"
	"github.com/mchlmayer/thumbpro/internal/provider/openai"
	"github.com/mchlmayer/thumbpro/internal/provider/vertex"
	"github.com/mchlmayer/thumbpro/internal/retry"
	"github.com/mchlmayer/thumbpro/internal/selector"
	"github.com/mchlmayer/thumbpro/model"
)

// Operation names reported in events and logs.
const (
	OperationTextToImage   = "text_to_image"
	OperationReferenceEdit = "reference_edit"
)

// Backends holds the provider adapters a client routes candidates to.
// A candidate whose provider has no adapter for its role is treated as unavailable.
type Backends struct {
	Synthesizers map[ai.Provider]ai.ImageSynthesizer
	Editors      map[ai.Provider]ai.ImageEditor
	Describers   map[ai.Provider]ai.VisionDescriber
}

// Client generates and edits thumbnail images across the configured candidate
// models. It holds only immutable configuration and thread-safe SDK clients, so
// concurrent operations need no locking.
type Client struct {
	backends    Backends
	table       *model.Table
	strategy    EditStrategy
	retryConfig retry.Config
	events      chan<- Event
	logger      *slog.Logger
}

// New validates cfg and creates a client with SDK backends for every configured
// provider. A missing Google credential is a configuration error.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var g *google.Client
	var err error
	if cfg.Vertex.Project != "" {
		g, err = vertex.New(ctx, cfg.Vertex.Project, cfg.Vertex.Location)
	} else {
		g, err = google.New(ctx, cfg.APIKeys.Google)
	}
	if err != nil {
		return nil, err
	}

	b := Backends{
		Synthesizers: map[ai.Provider]ai.ImageSynthesizer{ai.ProviderGoogle: g},
		Editors:      map[ai.Provider]ai.ImageEditor{ai.ProviderGoogle: g},
		Describers:   map[ai.Provider]ai.VisionDescriber{ai.ProviderGoogle: g},
	}
	if cfg.APIKeys.OpenAI != "" {
		b.Synthesizers[ai.ProviderOpenAI] = openai.New(cfg.APIKeys.OpenAI)
	}
	if cfg.APIKeys.Anthropic != "" {
		b.Describers[ai.ProviderAnthropic] = anthropic.New(cfg.APIKeys.Anthropic)
	}

	return NewWithBackends(cfg, b), nil
}

// NewWithBackends creates a client over the given backends. Credentials in cfg
// are ignored.
func NewWithBackends(cfg Config, backends Backends) *Client {
	table := cfg.Models
	if table == nil {
		table = model.DefaultTable()
	}
	strategy := cfg.EditStrategy
	if strategy == "" {
		strategy = EditStrategyDirect
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		backends:    backends,
		table:       table,
		strategy:    strategy,
		retryConfig: toInternalRetryConfig(cfg.RetryConfig),
		events:      cfg.Events,
		logger:      logger,
	}
}

// GenerateImageWithText generates an image from a text prompt.
// Quota errors are retried with backoff; unavailable models fall back to the
// next candidate. Failures are returned as *ai.Error.
func (c *Client) GenerateImageWithText(ctx context.Context, text string, ratio ai.AspectRatio) (*ai.Image, error) {
	return c.Generate(ctx, ai.GenerationRequest{
		Kind:        ai.RequestTextToImage,
		Prompt:      text,
		AspectRatio: ratio,
	})
}

// GenerateImageWithReference generates an image from a prompt and one or more
// reference images, preserving the reference subject. The configured
// EditStrategy decides the pipeline; either way the whole pipeline is the
// unit that is retried.
func (c *Client) GenerateImageWithReference(ctx context.Context, text string, refs []ai.ReferenceImage, ratio ai.AspectRatio) (*ai.Image, error) {
	return c.Generate(ctx, ai.GenerationRequest{
		Kind:        ai.RequestReferenceEdit,
		Prompt:      text,
		AspectRatio: ratio,
		References:  refs,
	})
}

// Generate runs one logical generation request.
func (c *Client) Generate(ctx context.Context, req ai.GenerationRequest) (*ai.Image, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	op := OperationTextToImage
	if req.Kind == ai.RequestReferenceEdit {
		op = OperationReferenceEdit
	}
	r := &request{Client: c, op: op, id: uuid.NewString(), skips: selector.NewSkips()}

	var attempt func() (*ai.Image, error)
	switch {
	case req.Kind == ai.RequestTextToImage:
		text := prompt.ComposeTextToImage(req.Prompt, req.AspectRatio)
		attempt = func() (*ai.Image, error) {
			return r.synthesize(ctx, text, req.AspectRatio)
		}
	case c.strategy == EditStrategyDescribe:
		attempt = func() (*ai.Image, error) {
			return r.describeThenSynthesize(ctx, req)
		}
	default:
		text := prompt.ComposeReferenceEdit(req.Prompt, req.AspectRatio)
		attempt = func() (*ai.Image, error) {
			return r.edit(ctx, text, req.References, req.AspectRatio)
		}
	}

	return r.run(ctx, attempt)
}

// request carries the per-call state of one logical request.
type request struct {
	*Client
	op    string
	id    string
	skips *selector.Skips
}

// run executes attempt under the backoff scheduler and classifies the outcome.
func (r *request) run(ctx context.Context, attempt func() (*ai.Image, error)) (*ai.Image, error) {
	start := time.Now()
	log := r.logger.With("operation", r.op, "request_id", r.id)
	log.Debug("generation started")
	emit(r.events, Event{Type: EventRequestStart, Operation: r.op, RequestID: r.id})

	retryEvents := make(chan retry.Event, 10)
	done := make(chan struct{})
	go r.forwardRetryEvents(retryEvents, done, log)

	img, err := retry.DoWithEvents(ctx, r.retryConfig, retryEvents, attempt)

	close(retryEvents)
	<-done

	if err != nil {
		classified := retry.Classify(err)
		log.Error("generation failed",
			"kind", classified.Kind(),
			"model", classified.Model,
			"duration", time.Since(start),
			"error", classified)
		emit(r.events, Event{
			Type:      EventRequestError,
			Operation: r.op,
			RequestID: r.id,
			Model:     classified.Model,
			Duration:  time.Since(start),
			Error:     classified,
		})
		return nil, classified
	}

	log.Info("generation complete", "model", img.Model, "bytes", len(img.Data), "duration", time.Since(start))
	var provider ai.Provider
	if m, ok := model.LookupImageModel(img.Model); ok {
		provider = m.Provider()
	}
	emit(r.events, Event{
		Type:      EventRequestComplete,
		Operation: r.op,
		RequestID: r.id,
		Provider:  provider,
		Model:     img.Model,
		Duration:  time.Since(start),
	})
	return img, nil
}

// synthesize runs the image synthesis candidates with a composed prompt.
func (r *request) synthesize(ctx context.Context, text string, ratio ai.AspectRatio) (*ai.Image, error) {
	return selector.Run(ctx, model.RoleImageSynthesis, r.table.Candidates(model.RoleImageSynthesis), r.policy(selector.DefaultPolicy()), r.skips,
		func(ctx context.Context, cand model.Candidate) (*ai.Image, error) {
			s, ok := r.backends.Synthesizers[cand.Provider]
			if !ok {
				return nil, noBackend(cand)
			}
			return s.SynthesizeImage(ctx, cand.ID, text, ratio)
		})
}

// edit runs the multimodal edit candidates with the references and a composed prompt.
func (r *request) edit(ctx context.Context, text string, refs []ai.ReferenceImage, ratio ai.AspectRatio) (*ai.Image, error) {
	return selector.Run(ctx, model.RoleImageEdit, r.table.Candidates(model.RoleImageEdit), r.policy(selector.DefaultPolicy()), r.skips,
		func(ctx context.Context, cand model.Candidate) (*ai.Image, error) {
			e, ok := r.backends.Editors[cand.Provider]
			if !ok {
				return nil, noBackend(cand)
			}
			return e.EditImage(ctx, cand.ID, text, refs, ratio)
		})
}

// describeThenSynthesize obtains a description of the references and folds it
// into a fresh synthesis prompt. The description belongs to this attempt only.
func (r *request) describeThenSynthesize(ctx context.Context, req ai.GenerationRequest) (*ai.Image, error) {
	description, err := selector.Run(ctx, model.RoleVisionDescribe, r.table.Candidates(model.RoleVisionDescribe), r.policy(selector.VisionPolicy()), r.skips,
		func(ctx context.Context, cand model.Candidate) (string, error) {
			d, ok := r.backends.Describers[cand.Provider]
			if !ok {
				return "", noBackend(cand)
			}
			return d.DescribeImages(ctx, cand.ID, prompt.DescribeInstruction(), req.References)
		})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("reference described", "request_id", r.id, "chars", len(description))
	return r.synthesize(ctx, prompt.ComposeFromDescription(description, req.Prompt, req.AspectRatio), req.AspectRatio)
}

// policy attaches fallback logging and events to p.
func (r *request) policy(p selector.Policy) selector.Policy {
	return p.WithOnAdvance(func(cand model.Candidate, err error) {
		r.logger.Info("falling back to next model",
			"operation", r.op,
			"request_id", r.id,
			"role", cand.Role,
			"model", cand.ID,
			"kind", ai.KindOf(err),
			"error", err)
		emit(r.events, Event{
			Type:      EventFallback,
			Operation: r.op,
			RequestID: r.id,
			Provider:  cand.Provider,
			Model:     cand.ID,
			Error:     err,
		})
	})
}

// forwardRetryEvents logs retry events and forwards them to the client's
// event channel as EventRetry events. It closes done when retryEvents is drained.
func (r *request) forwardRetryEvents(retryEvents <-chan retry.Event, done chan<- struct{}, log *slog.Logger) {
	defer close(done)
	for re := range retryEvents {
		if re.Type == retry.EventRetrying {
			log.Warn("backend busy, backing off",
				"attempt", re.Attempt,
				"max_attempts", re.MaxAttempts,
				"delay", re.Delay,
				"kind", re.Kind)
		}
		reCopy := re
		emit(r.events, Event{
			Type:       EventRetry,
			Operation:  r.op,
			RequestID:  r.id,
			RetryEvent: &reCopy,
		})
	}
}

func noBackend(cand model.Candidate) error {
	return ai.NewModelUnavailableError(fmt.Sprintf("no %s backend configured", cand.Provider), 0, nil).WithModel(cand.ID)
}
