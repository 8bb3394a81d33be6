package replies_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/replyloop/engine-go/pkg/db/models"
	"github.com/replyloop/engine-go/pkg/llm"
	"github.com/replyloop/engine-go/pkg/replies"
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

type stubProfiles struct {
	settings    *models.AutoReplySettings
	voice       *models.BrandVoice
	settingsErr error
	voiceErr    error
}

func (s *stubProfiles) GetSettings(_ context.Context, _ string) (*models.AutoReplySettings, error) {
	return s.settings, s.settingsErr
}

func (s *stubProfiles) GetBrandVoice(_ context.Context, _ string) (*models.BrandVoice, error) {
	return s.voice, s.voiceErr
}

var _ = Describe("BrandVoiceGenerator", func() {
	var (
		backend   *stubLLM
		profiles  *stubProfiles
		generator *replies.BrandVoiceGenerator
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		backend = &stubLLM{completion: "Yessir, that drip is UNREAL 🔥"}
		profiles = &stubProfiles{
			settings: &models.AutoReplySettings{
				UserID:           "user-1",
				DefaultTone:      models.ToneHype,
				DefaultLanguage:  "english",
				Catchphrases:     pq.StringArray{"stay golden"},
				SignatureEmojis:  pq.StringArray{"🔥", "💯"},
				BlacklistedWords: pq.StringArray{"cheap"},
			},
			voice: &models.BrandVoice{
				UserID:            "user-1",
				BrandName:         "GoldenWear",
				BrandValues:       pq.StringArray{"quality", "community"},
				PersonalityTraits: pq.StringArray{"playful", "confident"},
			},
		}

		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		generator = replies.NewBrandVoiceGenerator(backend, profiles, logger)
	})

	request := func() replies.Request {
		return replies.Request{
			Text:      "this jacket looks amazing",
			UserID:    "user-1",
			Tone:      models.ToneHype,
			Language:  "english",
			Sentiment: models.SentimentPositive,
		}
	}

	It("returns the model's reply", func() {
		reply := generator.Generate(ctx, request())
		Expect(reply).To(Equal("Yessir, that drip is UNREAL 🔥"))
	})

	It("strips wrapping quotes from the model output", func() {
		backend.completion = `"Love this energy!"`

		reply := generator.Generate(ctx, request())
		Expect(reply).To(Equal("Love this energy!"))
	})

	It("folds the brand profile into the prompt", func() {
		generator.Generate(ctx, request())

		Expect(backend.lastPrompt).To(ContainSubstring("GoldenWear"))
		Expect(backend.lastPrompt).To(ContainSubstring("quality, community"))
		Expect(backend.lastPrompt).To(ContainSubstring("stay golden"))
		Expect(backend.lastPrompt).To(ContainSubstring("cheap"))
		Expect(backend.lastPrompt).To(ContainSubstring("this jacket looks amazing"))
	})

	It("falls back to the settings language when the request omits one", func() {
		req := request()
		req.Language = ""
		profiles.settings.DefaultLanguage = "spanish"

		generator.Generate(ctx, req)
		Expect(backend.lastPrompt).To(ContainSubstring("Reply in spanish"))
	})

	Context("degrading to the fallback reply", func() {
		expectFallback := func() {
			reply := generator.Generate(ctx, request())
			Expect(reply).To(Equal(replies.FallbackReply))
			Expect(reply).NotTo(BeEmpty())
		}

		It("absorbs transport errors", func() {
			backend.err = fmt.Errorf("rate limited")
			expectFallback()
		})

		It("absorbs empty model output", func() {
			backend.completion = "   "
			expectFallback()
		})

		It("rejects replies containing blacklisted words", func() {
			backend.completion = "Our stuff is never Cheap quality!"
			expectFallback()
		})

		It("absorbs settings load failures", func() {
			profiles.settingsErr = fmt.Errorf("connection refused")
			expectFallback()
		})

		It("absorbs brand voice load failures", func() {
			profiles.voiceErr = fmt.Errorf("connection refused")
			expectFallback()
		})
	})
})
