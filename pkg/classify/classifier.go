package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	langchainprompts "github.com/tmc/langchaingo/prompts"

	"github.com/replyloop/engine-go/pkg/db/models"
	"github.com/replyloop/engine-go/pkg/llm"
)

// Classification is the sentiment verdict for one comment. Score is a
// confidence/intensity measure in [0,1], not a calibrated probability.
type Classification struct {
	Category models.SentimentCategory
	Score    float64
}

// DefaultClassification is substituted whenever the backend fails or
// returns something we cannot validate. Classification failure must
// never block the pipeline.
var DefaultClassification = Classification{
	Category: models.SentimentNeutral,
	Score:    0.5,
}

// Classifier assigns a sentiment category to free text. The contract
// absorbs all failures: implementations always return a usable value.
type Classifier interface {
	Classify(ctx context.Context, text string) Classification
}

var validCategories = map[models.SentimentCategory]bool{
	models.SentimentPositive: true,
	models.SentimentNegative: true,
	models.SentimentNeutral:  true,
	models.SentimentQuestion: true,
	models.SentimentSpam:     true,
	models.SentimentHate:     true,
}

var classifyPrompt = langchainprompts.NewPromptTemplate(
	`Classify the sentiment of the following social media comment.

Comment: {{.comment}}

Pick exactly one category from: positive, negative, neutral, question, spam, hate.
Respond with ONLY a JSON object in this exact shape, no other text:
{"category": "<category>", "score": <confidence between 0.0 and 1.0>}`,
	[]string{"comment"},
)

// LLMClassifier classifies comments with a language model backend
type LLMClassifier struct {
	llm    llm.LLM
	logger *logrus.Logger
}

func NewLLMClassifier(model llm.LLM, logger *logrus.Logger) *LLMClassifier {
	return &LLMClassifier{
		llm:    model,
		logger: logger,
	}
}

// Classify runs the model and strictly validates its output. Any
// transport error or malformed response degrades to
// DefaultClassification.
func (c *LLMClassifier) Classify(ctx context.Context, text string) Classification {
	prompt, err := classifyPrompt.Format(map[string]any{
		"comment": text,
	})
	if err != nil {
		c.logger.WithError(err).Warn("Failed to format classification prompt, using default")
		return DefaultClassification
	}

	completion, err := c.llm.Generate(ctx, prompt,
		llm.WithTemperature(0.0),
		llm.WithMaxTokens(60),
	)
	if err != nil {
		c.logger.WithError(err).Warn("Classification call failed, using default")
		return DefaultClassification
	}

	result, err := parseClassification(completion)
	if err != nil {
		c.logger.WithError(err).WithField("completion", completion).
			Warn("Malformed classification response, using default")
		return DefaultClassification
	}

	c.logger.WithFields(logrus.Fields{
		"category": result.Category,
		"score":    result.Score,
	}).Debug("Comment classified")

	return result
}

// parseClassification validates the model's JSON against the known
// category set and score range. The model's declared shape is never
// trusted blindly.
func parseClassification(completion string) (Classification, error) {
	var payload struct {
		Category string   `json:"category"`
		Score    *float64 `json:"score"`
	}

	if err := json.Unmarshal([]byte(stripCodeFence(completion)), &payload); err != nil {
		return Classification{}, fmt.Errorf("invalid classification JSON: %w", err)
	}

	category := models.SentimentCategory(strings.ToLower(strings.TrimSpace(payload.Category)))
	if !validCategories[category] {
		return Classification{}, fmt.Errorf("unknown sentiment category %q", payload.Category)
	}

	if payload.Score == nil {
		return Classification{}, fmt.Errorf("classification response missing score")
	}
	if *payload.Score < 0 || *payload.Score > 1 {
		return Classification{}, fmt.Errorf("classification score %f out of range", *payload.Score)
	}

	return Classification{Category: category, Score: *payload.Score}, nil
}

// stripCodeFence removes a markdown code fence if the model wrapped
// its JSON in one
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
