// Package analysis builds a taste profile from the watch history via one of
// several interchangeable text-generation providers.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/baiwei666/CineTrack/internal/model"
)

// State is the orchestrator lifecycle: Idle -> Running -> Success|Failure,
// re-enterable from either terminal state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateSuccess State = "success"
	StateFailure State = "failure"
)

// Pre-flight rejections. They leave the orchestrator state untouched.
var (
	ErrNoRecords = errors.New("no watch records to analyze, add some first")
	ErrNoAPIKey  = errors.New("no API key configured for the selected provider")
	ErrRunning   = errors.New("analysis already running")
)

// promptLimit caps how many records are embedded in the prompt.
const promptLimit = 30

// Status is the externally visible orchestrator state. Result and Message
// are mutually exclusive: a Success carries a structured result, a Failure
// carries a message, never both.
type Status struct {
	State   State                 `json:"state"`
	Result  *model.AnalysisResult `json:"result,omitempty"`
	Message string                `json:"message,omitempty"`
}

// Orchestrator dispatches analysis runs to the configured provider and
// normalizes the heterogeneous responses into one result shape.
type Orchestrator struct {
	// Client is shared by all live providers.
	Client *http.Client
	// MockDelay is the simulated latency of the mock provider.
	MockDelay time.Duration
	// Endpoints can be overridden per provider (tests point them at local
	// servers). For Gemini the value is the models base, the full URL is
	// derived from the configured model and key.
	Endpoints map[string]string

	mu     sync.Mutex
	status Status
}

func New() *Orchestrator {
	return &Orchestrator{
		Client:    &http.Client{Timeout: 60 * time.Second},
		MockDelay: 2 * time.Second,
		Endpoints: map[string]string{
			model.ProviderOpenAI:   "https://api.openai.com/v1/chat/completions",
			model.ProviderDeepSeek: "https://api.deepseek.com/chat/completions",
			model.ProviderGemini:   "https://generativelanguage.googleapis.com/v1beta/models",
		},
		status: Status{State: StateIdle},
	}
}

// Status returns the current lifecycle state.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Run executes one analysis pass and blocks until it reaches a terminal
// state. Pre-flight rejections (empty record list, missing key, already
// running) are returned as errors without touching the state machine.
func (o *Orchestrator) Run(ctx context.Context, records []model.WatchRecord, settings model.AppSettings) (Status, error) {
	if len(records) == 0 {
		return o.Status(), ErrNoRecords
	}
	if settings.AIProvider != model.ProviderMock && settings.AIAPIKey == "" {
		return o.Status(), ErrNoAPIKey
	}
	o.mu.Lock()
	if o.status.State == StateRunning {
		o.mu.Unlock()
		return Status{State: StateRunning}, ErrRunning
	}
	o.status = Status{State: StateRunning}
	o.mu.Unlock()

	st := o.execute(ctx, records, settings)
	o.mu.Lock()
	o.status = st
	o.mu.Unlock()
	return st, nil
}

func (o *Orchestrator) execute(ctx context.Context, records []model.WatchRecord, settings model.AppSettings) Status {
	if settings.AIProvider == model.ProviderMock {
		res := o.runMock(ctx, records)
		return Status{State: StateSuccess, Result: &res}
	}

	ad, ok := o.adapterFor(settings.AIProvider)
	if !ok {
		return Status{State: StateFailure, Message: fmt.Sprintf("unknown provider %q", settings.AIProvider)}
	}

	p := buildPrompt(records)
	req, err := ad.buildRequest(ctx, settings, p)
	if err != nil {
		return Status{State: StateFailure, Message: err.Error()}
	}
	resp, err := o.Client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("provider", settings.AIProvider).Msg("analysis request failed")
		return Status{State: StateFailure, Message: err.Error()}
	}
	defer resp.Body.Close()
	raw, err := ad.parseResponse(resp)
	if err != nil {
		log.Error().Err(err).Str("provider", settings.AIProvider).Msg("analysis response rejected")
		return Status{State: StateFailure, Message: err.Error()}
	}

	result, err := decodeResult(raw)
	if err != nil {
		return Status{State: StateFailure, Message: "model returned unparseable analysis: " + err.Error()}
	}
	return Status{State: StateSuccess, Result: &result}
}

// decodeResult strips any fenced code-block markers the model wrapped
// around the JSON, then decodes the strict result shape. A decode failure
// is a Failure, never a partial result.
func decodeResult(raw string) (model.AnalysisResult, error) {
	var res model.AnalysisResult
	if err := json.Unmarshal([]byte(stripFences(raw)), &res); err != nil {
		return model.AnalysisResult{}, err
	}
	return res, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return s
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
