package replies

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	langchainprompts "github.com/tmc/langchaingo/prompts"

	"github.com/replyloop/engine-go/internal/brandvoice"
	"github.com/replyloop/engine-go/pkg/db/models"
	"github.com/replyloop/engine-go/pkg/llm"
)

// FallbackReply is returned whenever generation fails. The generator
// contract is that callers always receive non-empty text.
const FallbackReply = "Thank you so much for your comment, it means a lot to us! 🙏"

// Request carries everything needed to generate one reply
type Request struct {
	Text      string
	UserID    string
	Tone      models.Tone
	Language  string
	Sentiment models.SentimentCategory
}

// Generator produces a short brand-voiced reply to a comment. The
// contract absorbs all failures: implementations always return
// non-empty text.
type Generator interface {
	Generate(ctx context.Context, req Request) string
}

// ProfileSource provides the per-user style material the generator
// folds into its prompt
type ProfileSource interface {
	GetSettings(ctx context.Context, userID string) (*models.AutoReplySettings, error)
	GetBrandVoice(ctx context.Context, userID string) (*models.BrandVoice, error)
}

var replyPrompt = langchainprompts.NewPromptTemplate(
	`You are the social media voice of the brand "{{.brandName}}".

Brand identity:
{{.brandIdentity}}

You are replying to this comment (sentiment: {{.sentiment}}):
{{.comment}}

Requested tone: {{.tone}}. Examples of this tone (do not repeat them verbatim):
{{.exemplars}}

Style requirements:
{{.styleRequirements}}

Rules:
1. Reply in {{.language}}.
2. Keep the reply to 1-3 sentences.
3. Never use any of these forbidden words: {{.blacklist}}
4. Never fall back to generic stock phrases like: {{.stockPhrases}}

Your reply:`,
	[]string{"brandName", "brandIdentity", "sentiment", "comment", "tone",
		"exemplars", "styleRequirements", "language", "blacklist", "stockPhrases"},
)

// BrandVoiceGenerator generates replies shaped by the user's brand
// voice and auto-reply settings
type BrandVoiceGenerator struct {
	llm      llm.LLM
	profiles ProfileSource
	logger   *logrus.Logger
}

func NewBrandVoiceGenerator(model llm.LLM, profiles ProfileSource, logger *logrus.Logger) *BrandVoiceGenerator {
	return &BrandVoiceGenerator{
		llm:      model,
		profiles: profiles,
		logger:   logger,
	}
}

// Generate builds the style prompt and calls the model. Transport
// errors, empty output and blacklist violations all degrade to
// FallbackReply.
func (g *BrandVoiceGenerator) Generate(ctx context.Context, req Request) string {
	log := g.logger.WithFields(logrus.Fields{
		"user_id": req.UserID,
		"tone":    req.Tone,
	})

	settings, err := g.profiles.GetSettings(ctx, req.UserID)
	if err != nil {
		log.WithError(err).Warn("Failed to load settings for generation, using fallback reply")
		return FallbackReply
	}

	voice, err := g.profiles.GetBrandVoice(ctx, req.UserID)
	if err != nil {
		log.WithError(err).Warn("Failed to load brand voice for generation, using fallback reply")
		return FallbackReply
	}

	prompt, err := g.buildPrompt(req, settings, voice)
	if err != nil {
		log.WithError(err).Warn("Failed to build reply prompt, using fallback reply")
		return FallbackReply
	}

	completion, err := g.llm.Generate(ctx, prompt,
		llm.WithTemperature(0.8),
		llm.WithMaxTokens(200),
	)
	if err != nil {
		log.WithError(err).Warn("Reply generation call failed, using fallback reply")
		return FallbackReply
	}

	reply := strings.TrimSpace(strings.Trim(strings.TrimSpace(completion), `"`))
	if reply == "" {
		log.Warn("Model returned empty reply, using fallback reply")
		return FallbackReply
	}

	if word := containsBlacklisted(reply, settings.BlacklistedWords); word != "" {
		log.WithField("word", word).Warn("Generated reply hit the blacklist, using fallback reply")
		return FallbackReply
	}

	log.WithField("reply", reply).Debug("Reply generated")
	return reply
}

func (g *BrandVoiceGenerator) buildPrompt(req Request, settings *models.AutoReplySettings, voice *models.BrandVoice) (string, error) {
	var identity strings.Builder
	if len(voice.BrandValues) > 0 {
		identity.WriteString(fmt.Sprintf("- Values: %s\n", strings.Join(voice.BrandValues, ", ")))
	}
	if len(voice.PersonalityTraits) > 0 {
		identity.WriteString(fmt.Sprintf("- Personality: %s\n", strings.Join(voice.PersonalityTraits, ", ")))
	}
	if identity.Len() == 0 {
		identity.WriteString("- A friendly, authentic brand\n")
	}

	var style strings.Builder
	if len(settings.Catchphrases) > 0 {
		style.WriteString(fmt.Sprintf("- Work in one of these catchphrases: %s\n", strings.Join(settings.Catchphrases, ", ")))
	}
	if len(settings.SignatureEmojis) > 0 {
		style.WriteString(fmt.Sprintf("- Use these signature emojis: %s\n", strings.Join(settings.SignatureEmojis, " ")))
	}
	if settings.IntroLine != "" {
		style.WriteString(fmt.Sprintf("- Open with: %s\n", settings.IntroLine))
	}
	if settings.OutroLine != "" {
		style.WriteString(fmt.Sprintf("- Close with: %s\n", settings.OutroLine))
	}
	if style.Len() == 0 {
		style.WriteString("- No special requirements\n")
	}

	exemplars := brandvoice.ToneExemplars[req.Tone]
	var exemplarText strings.Builder
	for _, e := range exemplars {
		exemplarText.WriteString(fmt.Sprintf("- %s\n", e))
	}

	blacklist := "(none)"
	if len(settings.BlacklistedWords) > 0 {
		blacklist = strings.Join(settings.BlacklistedWords, ", ")
	}

	language := req.Language
	if language == "" {
		language = settings.DefaultLanguage
	}

	return replyPrompt.Format(map[string]any{
		"brandName":         voice.BrandName,
		"brandIdentity":     identity.String(),
		"sentiment":         string(req.Sentiment),
		"comment":           req.Text,
		"tone":              string(req.Tone),
		"exemplars":         exemplarText.String(),
		"styleRequirements": style.String(),
		"language":          language,
		"blacklist":         blacklist,
		"stockPhrases":      strings.Join(brandvoice.StockPhrases, " / "),
	})
}

func containsBlacklisted(reply string, words []string) string {
	lowered := strings.ToLower(reply)
	for _, w := range words {
		if w == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(w)) {
			return w
		}
	}
	return ""
}
