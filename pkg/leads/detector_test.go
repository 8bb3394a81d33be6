package leads_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/replyloop/engine-go/pkg/leads"
	"github.com/replyloop/engine-go/pkg/llm"
)

type stubLLM struct {
	completion string
	err        error
}

func (s *stubLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	return s.completion, s.err
}

var _ = Describe("LLMDetector", func() {
	var (
		backend  *stubLLM
		detector *leads.LLMDetector
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		backend = &stubLLM{}

		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		detector = leads.NewLLMDetector(backend, logger)
	})

	It("detects a hot lead", func() {
		backend.completion = `{"is_lead": true, "temperature": "hot"}`

		signal := detector.DetectLead(ctx, "how much does the pro plan cost?")
		Expect(signal.IsLead).To(BeTrue())
		Expect(signal.Temperature).To(Equal(leads.TemperatureHot))
	})

	It("reports non-leads", func() {
		backend.completion = `{"is_lead": false, "temperature": "cold"}`

		signal := detector.DetectLead(ctx, "nice picture")
		Expect(signal.IsLead).To(BeFalse())
	})

	Context("degrading to the default", func() {
		expectDefault := func() {
			signal := detector.DetectLead(ctx, "anything")
			Expect(signal).To(Equal(leads.DefaultSignal))
			Expect(signal.IsLead).To(BeFalse())
			Expect(signal.Temperature).To(Equal(leads.TemperatureCold))
		}

		It("absorbs transport errors", func() {
			backend.err = fmt.Errorf("request timed out")
			expectDefault()
		})

		It("absorbs malformed JSON", func() {
			backend.completion = "probably a lead?"
			expectDefault()
		})

		It("rejects unknown temperatures", func() {
			backend.completion = `{"is_lead": true, "temperature": "lukewarm"}`
			expectDefault()
		})

		It("rejects responses missing is_lead", func() {
			backend.completion = `{"temperature": "hot"}`
			expectDefault()
		})
	})
})
