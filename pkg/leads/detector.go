package leads

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	langchainprompts "github.com/tmc/langchaingo/prompts"

	"github.com/replyloop/engine-go/pkg/llm"
)

// Temperature is the heat classification for a detected sales lead.
// It is only meaningful when a comment actually is a lead.
type Temperature string

const (
	TemperatureHot  Temperature = "hot"
	TemperatureWarm Temperature = "warm"
	TemperatureCold Temperature = "cold"
)

// Signal is the lead detector's verdict for one comment
type Signal struct {
	IsLead      bool
	Temperature Temperature
}

// DefaultSignal is substituted on any backend failure; a missed lead
// is preferable to a blocked pipeline.
var DefaultSignal = Signal{
	IsLead:      false,
	Temperature: TemperatureCold,
}

// Detector decides whether free text indicates purchase intent.
// Implementations absorb all failures and always return a usable value.
type Detector interface {
	DetectLead(ctx context.Context, text string) Signal
}

var validTemperatures = map[Temperature]bool{
	TemperatureHot:  true,
	TemperatureWarm: true,
	TemperatureCold: true,
}

var detectPrompt = langchainprompts.NewPromptTemplate(
	`Decide whether the following social media comment indicates purchase intent
(asking about price, availability, how to buy, booking, etc).

Comment: {{.comment}}

Respond with ONLY a JSON object in this exact shape, no other text:
{"is_lead": <true|false>, "temperature": "<hot|warm|cold>"}

Use "hot" for explicit buying intent, "warm" for strong interest, "cold" otherwise.`,
	[]string{"comment"},
)

// LLMDetector detects sales leads with a language model backend
type LLMDetector struct {
	llm    llm.LLM
	logger *logrus.Logger
}

func NewLLMDetector(model llm.LLM, logger *logrus.Logger) *LLMDetector {
	return &LLMDetector{
		llm:    model,
		logger: logger,
	}
}

// DetectLead runs the model and strictly validates its output. Any
// failure degrades to DefaultSignal.
func (d *LLMDetector) DetectLead(ctx context.Context, text string) Signal {
	prompt, err := detectPrompt.Format(map[string]any{
		"comment": text,
	})
	if err != nil {
		d.logger.WithError(err).Warn("Failed to format lead detection prompt, using default")
		return DefaultSignal
	}

	completion, err := d.llm.Generate(ctx, prompt,
		llm.WithTemperature(0.0),
		llm.WithMaxTokens(40),
	)
	if err != nil {
		d.logger.WithError(err).Warn("Lead detection call failed, using default")
		return DefaultSignal
	}

	signal, err := parseSignal(completion)
	if err != nil {
		d.logger.WithError(err).WithField("completion", completion).
			Warn("Malformed lead detection response, using default")
		return DefaultSignal
	}

	d.logger.WithFields(logrus.Fields{
		"is_lead":     signal.IsLead,
		"temperature": signal.Temperature,
	}).Debug("Lead detection complete")

	return signal
}

func parseSignal(completion string) (Signal, error) {
	var payload struct {
		IsLead      *bool  `json:"is_lead"`
		Temperature string `json:"temperature"`
	}

	cleaned := strings.TrimSpace(completion)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	if err := json.Unmarshal([]byte(strings.TrimSpace(cleaned)), &payload); err != nil {
		return Signal{}, fmt.Errorf("invalid lead detection JSON: %w", err)
	}

	if payload.IsLead == nil {
		return Signal{}, fmt.Errorf("lead detection response missing is_lead")
	}

	temperature := Temperature(strings.ToLower(strings.TrimSpace(payload.Temperature)))
	if !validTemperatures[temperature] {
		return Signal{}, fmt.Errorf("unknown lead temperature %q", payload.Temperature)
	}

	return Signal{IsLead: *payload.IsLead, Temperature: temperature}, nil
}
