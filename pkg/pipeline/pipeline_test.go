package pipeline_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/replyloop/engine-go/pkg/classify"
	"github.com/replyloop/engine-go/pkg/db/models"
	"github.com/replyloop/engine-go/pkg/leads"
	"github.com/replyloop/engine-go/pkg/memory"
	"github.com/replyloop/engine-go/pkg/pipeline"
)

var _ = Describe("Pipeline", func() {
	var (
		settingsSource *fakeSettingsSource
		commentLedger  *fakeCommentLedger
		replyLedger    *fakeReplyLedger
		classifier     *fakeClassifier
		detector       *fakeDetector
		generator      *fakeGenerator
		engine         *pipeline.Pipeline
		ctx            context.Context
	)

	newEngine := func() *pipeline.Pipeline {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)

		p, err := pipeline.New(pipeline.Config{
			Settings:   settingsSource,
			Comments:   commentLedger,
			Replies:    replyLedger,
			Classifier: classifier,
			Detector:   detector,
			Generator:  generator,
			Logger:     logger,
		})
		Expect(err).NotTo(HaveOccurred())
		return p
	}

	BeforeEach(func() {
		ctx = context.Background()

		settingsSource = &fakeSettingsSource{
			settings: map[string]*models.AutoReplySettings{
				"user-1": {
					UserID:             "user-1",
					DefaultTone:        models.ToneHype,
					DefaultLanguage:    "english",
					IgnoreSpam:         true,
					IgnoreHateComments: true,
					AutoLikePositive:   true,
				},
			},
		}
		commentLedger = newFakeCommentLedger()
		replyLedger = &fakeReplyLedger{}
		classifier = &fakeClassifier{result: classify.Classification{
			Category: models.SentimentPositive,
			Score:    0.9,
		}}
		detector = &fakeDetector{signal: leads.DefaultSignal}
		generator = &fakeGenerator{reply: "Love you too! 🔥"}

		engine = newEngine()
	})

	request := func() pipeline.Request {
		return pipeline.Request{
			CommentID: "comment-1",
			UserID:    "user-1",
			Text:      "I love this!!",
			Platform:  models.PlatformInstagram,
		}
	}

	Context("input validation", func() {
		It("rejects a request with a missing comment id", func() {
			req := request()
			req.CommentID = ""

			decision, err := engine.Process(ctx, req)
			Expect(err).To(HaveOccurred())
			Expect(decision).To(BeNil())
			Expect(commentLedger.updates).To(BeEmpty())
		})

		It("rejects a request with missing text", func() {
			req := request()
			req.Text = ""

			_, err := engine.Process(ctx, req)
			Expect(err).To(MatchError(ContainSubstring("commentText is required")))
		})
	})

	Context("missing settings", func() {
		It("fails hard without mutating the comment", func() {
			req := request()
			req.UserID = "user-without-settings"

			decision, err := engine.Process(ctx, req)
			Expect(err).To(MatchError(memory.ErrSettingsNotFound))
			Expect(decision).To(BeNil())
			Expect(commentLedger.updates).To(BeEmpty())
			Expect(replyLedger.inserted).To(BeEmpty())
		})
	})

	Context("spam gate", func() {
		BeforeEach(func() {
			classifier.result = classify.Classification{Category: models.SentimentSpam, Score: 0.8}
		})

		It("ignores spam and creates no reply", func() {
			decision, err := engine.Process(ctx, request())
			Expect(err).NotTo(HaveOccurred())

			Expect(decision.Action).To(Equal(pipeline.ActionIgnored))
			Expect(decision.Reason).To(Equal("Spam detected"))
			Expect(decision.Reply).To(BeNil())
			Expect(replyLedger.inserted).To(BeEmpty())
			Expect(commentLedger.merged["status"]).To(Equal(models.CommentStatusIgnored))
		})

		It("persists classification metadata even when suppressing", func() {
			_, err := engine.Process(ctx, request())
			Expect(err).NotTo(HaveOccurred())

			Expect(commentLedger.updates[0]).To(HaveKeyWithValue("sentiment", "spam"))
			Expect(commentLedger.updates[0]).To(HaveKeyWithValue("sentiment_score", 0.8))
		})

		It("still replies when ignore_spam is disabled", func() {
			settingsSource.settings["user-1"].IgnoreSpam = false

			decision, err := engine.Process(ctx, request())
			Expect(err).NotTo(HaveOccurred())
			Expect(decision.Action).To(Equal(pipeline.ActionReplied))
			Expect(replyLedger.inserted).To(HaveLen(1))
		})
	})

	Context("hate gate", func() {
		BeforeEach(func() {
			classifier.result = classify.Classification{Category: models.SentimentHate, Score: 0.95}
		})

		It("escalates hate comments and creates no reply", func() {
			decision, err := engine.Process(ctx, request())
			Expect(err).NotTo(HaveOccurred())

			Expect(decision.Action).To(Equal(pipeline.ActionEscalated))
			Expect(decision.Reason).To(Equal("Hate comment - escalated to user"))
			Expect(replyLedger.inserted).To(BeEmpty())
			Expect(commentLedger.merged["status"]).To(Equal(models.CommentStatusEscalated))
		})

		It("never fires together with the spam gate", func() {
			decision, err := engine.Process(ctx, request())
			Expect(err).NotTo(HaveOccurred())
			Expect(decision.Action).To(Equal(pipeline.ActionEscalated))

			for _, update := range commentLedger.updates {
				Expect(update["status"]).NotTo(Equal(models.CommentStatusIgnored))
			}
		})
	})

	Context("auto-like", func() {
		It("records like intent for positive instagram comments", func() {
			decision, err := engine.Process(ctx, request())
			Expect(err).NotTo(HaveOccurred())

			Expect(decision.Action).To(Equal(pipeline.ActionReplied))
			Expect(commentLedger.merged["is_liked"]).To(Equal(true))
		})

		It("skips the like on other platforms", func() {
			req := request()
			req.Platform = models.PlatformYouTube

			_, err := engine.Process(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(commentLedger.merged).NotTo(HaveKey("is_liked"))
		})

		It("skips the like when the flag is off", func() {
			settingsSource.settings["user-1"].AutoLikePositive = false

			_, err := engine.Process(ctx, request())
			Expect(err).NotTo(HaveOccurred())
			Expect(commentLedger.merged).NotTo(HaveKey("is_liked"))
		})

		It("continues to the reply when the like write fails", func() {
			commentLedger.failOn = "is_liked"

			decision, err := engine.Process(ctx, request())
			Expect(err).NotTo(HaveOccurred())
			Expect(decision.Action).To(Equal(pipeline.ActionReplied))
			Expect(replyLedger.inserted).To(HaveLen(1))
		})
	})

	Context("reply generation and persistence", func() {
		It("persists an AI-origin pending reply", func() {
			decision, err := engine.Process(ctx, request())
			Expect(err).NotTo(HaveOccurred())

			Expect(replyLedger.inserted).To(HaveLen(1))
			reply := replyLedger.inserted[0]
			Expect(reply.CommentID).To(Equal("comment-1"))
			Expect(reply.Text).To(Equal("Love you too! 🔥"))
			Expect(reply.Status).To(Equal(models.ReplyStatusPending))
			Expect(reply.CreatedBy).To(Equal(models.ReplyOriginAI))
			Expect(reply.ID).NotTo(BeEmpty())

			Expect(decision.Reply.ID).To(Equal(reply.ID))
			Expect(decision.Reply.Text).To(Equal(reply.Text))
		})

		It("passes the user's policy to the generator", func() {
			_, err := engine.Process(ctx, request())
			Expect(err).NotTo(HaveOccurred())

			Expect(generator.lastRequest.UserID).To(Equal("user-1"))
			Expect(generator.lastRequest.Tone).To(Equal(models.ToneHype))
			Expect(generator.lastRequest.Language).To(Equal("english"))
			Expect(generator.lastRequest.Sentiment).To(Equal(models.SentimentPositive))
		})

		It("fails hard when the reply cannot be persisted", func() {
			replyLedger.insertErr = fmt.Errorf("duplicate key value violates unique constraint")

			decision, err := engine.Process(ctx, request())
			Expect(err).To(MatchError(ContainSubstring("failed to persist auto reply")))
			Expect(decision).To(BeNil())
		})
	})

	Context("lead detection", func() {
		It("tags the comment with a composite sentiment for leads", func() {
			detector.signal = leads.Signal{IsLead: true, Temperature: leads.TemperatureHot}

			decision, err := engine.Process(ctx, request())
			Expect(err).NotTo(HaveOccurred())

			Expect(decision.Reply.IsSalesLead).To(BeTrue())
			Expect(decision.Reply.LeadTemperature).To(Equal(leads.TemperatureHot))
			Expect(decision.Reply.Sentiment).To(Equal("positive_lead_hot"))
			Expect(commentLedger.merged["sentiment"]).To(Equal("positive_lead_hot"))
			Expect(commentLedger.merged["status"]).To(Equal(models.CommentStatusReplied))
		})

		It("leaves the original sentiment untouched for non-leads", func() {
			decision, err := engine.Process(ctx, request())
			Expect(err).NotTo(HaveOccurred())

			Expect(decision.Reply.IsSalesLead).To(BeFalse())
			Expect(decision.Reply.Sentiment).To(Equal("positive"))
			Expect(commentLedger.merged["sentiment"]).To(Equal("positive"))
			Expect(commentLedger.merged["status"]).To(Equal(models.CommentStatusReplied))
		})
	})

	Context("degraded classification", func() {
		It("still reaches a terminal state with the default classification", func() {
			classifier.result = classify.DefaultClassification

			decision, err := engine.Process(ctx, request())
			Expect(err).NotTo(HaveOccurred())

			Expect(decision.Action).To(Equal(pipeline.ActionReplied))
			Expect(commentLedger.merged["sentiment"]).To(Equal("neutral"))
			Expect(commentLedger.merged["sentiment_score"]).To(Equal(0.5))
		})
	})
})
