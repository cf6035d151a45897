package pipeline

import (
	"fmt"
	"strings"

	"github.com/ppiankov/evadvisor/internal/classify"
	"github.com/ppiankov/evadvisor/internal/intent"
	"github.com/ppiankov/evadvisor/internal/model"
	"github.com/ppiankov/evadvisor/internal/respond"
)

// Pipeline composes intent resolution and response selection.
// It holds no per-message state and is safe for concurrent use.
type Pipeline struct {
	resolver intent.Resolver
	selector *respond.Selector
	config   *model.Config
}

// NewPipeline creates a new pipeline with the given configuration.
// In learned mode the classifier is trained here, before any message is seen.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	resolverCfg := cfg.Resolver
	resolverCfg.Mode = normalizeMode(resolverCfg.Mode)

	var m *classify.Model
	if resolverCfg.Mode == model.ModeLearned {
		trained, err := trainModel(cfg.Training)
		if err != nil {
			return nil, fmt.Errorf("train classifier: %w", err)
		}
		m = trained
	}

	resolver, err := intent.NewResolver(resolverCfg, m)
	if err != nil {
		return nil, err
	}

	selector := respond.NewSelector()
	if err := selector.Verify(); err != nil {
		return nil, fmt.Errorf("response table: %w", err)
	}

	return New(resolver, selector, cfg), nil
}

// New creates a pipeline from already-built parts
func New(resolver intent.Resolver, selector *respond.Selector, cfg *model.Config) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		selector: selector,
		config:   cfg,
	}
}

// Handle resolves and answers one message
func (p *Pipeline) Handle(message string, role model.Role) model.Reply {
	// 1. Resolve intent
	res := p.resolver.Resolve(message)

	// 2. Select response
	resp := p.selector.Respond(res.Intent, message, role)

	source := res.Source
	if resp.Fallback {
		source = model.SourceFallback
	}

	return model.Reply{
		Message:    message,
		Intent:     res.Intent,
		Source:     source,
		Trigger:    res.Trigger,
		Confidence: res.Confidence,
		Role:       role,
		Cluster:    resp.Cluster,
		Response:   resp.Text,
	}
}

// ResolveIntent is the resolver half of Handle
func (p *Pipeline) ResolveIntent(message string) model.Intent {
	return p.resolver.Resolve(message).Intent
}

// GenerateResponse is the selector half of Handle
func (p *Pipeline) GenerateResponse(in model.Intent, message string, role model.Role) string {
	return p.selector.Respond(in, message, role).Text
}

// Mode returns the configured resolver mode
func (p *Pipeline) Mode() string {
	if p.config == nil {
		return model.ModeRules
	}
	return normalizeMode(p.config.Resolver.Mode)
}

// normalizeMode maps "", " Learned " and the like onto the mode constants
func normalizeMode(mode string) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		return model.ModeRules
	}
	return mode
}

// trainModel reuses the process-wide model when the options match the
// defaults, so the default fit happens at most once per process
func trainModel(cfg model.TrainingConfig) (*classify.Model, error) {
	opts := classify.OptionsFromConfig(cfg)
	if opts == classify.DefaultTrainOptions() {
		return classify.Default()
	}
	return classify.Fit(classify.DefaultExamples(), opts)
}
