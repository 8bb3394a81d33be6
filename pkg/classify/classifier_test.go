package classify_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/replyloop/engine-go/pkg/classify"
	"github.com/replyloop/engine-go/pkg/db/models"
	"github.com/replyloop/engine-go/pkg/llm"
)

type stubLLM struct {
	completion string
	err        error
	lastPrompt string
}

func (s *stubLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	s.lastPrompt = prompt
	return s.completion, s.err
}

var _ = Describe("LLMClassifier", func() {
	var (
		backend    *stubLLM
		classifier *classify.LLMClassifier
		ctx        context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		backend = &stubLLM{}

		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		classifier = classify.NewLLMClassifier(backend, logger)
	})

	It("parses a well-formed classification", func() {
		backend.completion = `{"category": "positive", "score": 0.9}`

		result := classifier.Classify(ctx, "I love this!!")
		Expect(result.Category).To(Equal(models.SentimentPositive))
		Expect(result.Score).To(Equal(0.9))
	})

	It("includes the comment text in the prompt", func() {
		backend.completion = `{"category": "neutral", "score": 0.5}`

		classifier.Classify(ctx, "where can I buy this?")
		Expect(backend.lastPrompt).To(ContainSubstring("where can I buy this?"))
	})

	It("accepts JSON wrapped in a markdown code fence", func() {
		backend.completion = "```json\n{\"category\": \"spam\", \"score\": 0.7}\n```"

		result := classifier.Classify(ctx, "BUY FOLLOWERS NOW")
		Expect(result.Category).To(Equal(models.SentimentSpam))
		Expect(result.Score).To(Equal(0.7))
	})

	It("normalizes category casing", func() {
		backend.completion = `{"category": "Question", "score": 0.6}`

		result := classifier.Classify(ctx, "does it ship to Canada?")
		Expect(result.Category).To(Equal(models.SentimentQuestion))
	})

	Context("degrading to the default", func() {
		expectDefault := func(text string) {
			result := classifier.Classify(ctx, text)
			Expect(result).To(Equal(classify.DefaultClassification))
			Expect(result.Category).To(Equal(models.SentimentNeutral))
			Expect(result.Score).To(Equal(0.5))
		}

		It("absorbs transport errors", func() {
			backend.err = fmt.Errorf("connection reset by peer")
			expectDefault("anything")
		})

		It("absorbs malformed JSON", func() {
			backend.completion = "the comment is positive, I think"
			expectDefault("anything")
		})

		It("rejects unknown categories", func() {
			backend.completion = `{"category": "enthusiastic", "score": 0.9}`
			expectDefault("anything")
		})

		It("rejects out-of-range scores", func() {
			backend.completion = `{"category": "positive", "score": 1.7}`
			expectDefault("anything")
		})

		It("rejects responses missing the score", func() {
			backend.completion = `{"category": "positive"}`
			expectDefault("anything")
		})
	})
})
