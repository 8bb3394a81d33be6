package pipeline_test

import (
	"context"
	"fmt"

	"github.com/replyloop/engine-go/pkg/classify"
	"github.com/replyloop/engine-go/pkg/db/models"
	"github.com/replyloop/engine-go/pkg/leads"
	"github.com/replyloop/engine-go/pkg/memory"
	"github.com/replyloop/engine-go/pkg/replies"
)

type fakeSettingsSource struct {
	settings map[string]*models.AutoReplySettings
}

func (f *fakeSettingsSource) GetSettings(_ context.Context, userID string) (*models.AutoReplySettings, error) {
	s, ok := f.settings[userID]
	if !ok {
		return nil, memory.ErrSettingsNotFound
	}
	return s, nil
}

// fakeCommentLedger records every field-level update in order and
// keeps a merged view of the row
type fakeCommentLedger struct {
	updates []map[string]interface{}
	merged  map[string]interface{}
	failOn  string // field name that triggers an update failure
}

func newFakeCommentLedger() *fakeCommentLedger {
	return &fakeCommentLedger{merged: make(map[string]interface{})}
}

func (f *fakeCommentLedger) UpdateComment(_ context.Context, _ string, fields map[string]interface{}) error {
	if f.failOn != "" {
		if _, present := fields[f.failOn]; present {
			return fmt.Errorf("simulated ledger failure on %s", f.failOn)
		}
	}
	f.updates = append(f.updates, fields)
	for k, v := range fields {
		f.merged[k] = v
	}
	return nil
}

type fakeReplyLedger struct {
	inserted  []*models.AutoReply
	insertErr error
}

func (f *fakeReplyLedger) InsertAutoReply(_ context.Context, reply *models.AutoReply) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, reply)
	return nil
}

type fakeClassifier struct {
	result classify.Classification
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) classify.Classification {
	return f.result
}

type fakeDetector struct {
	signal leads.Signal
}

func (f *fakeDetector) DetectLead(_ context.Context, _ string) leads.Signal {
	return f.signal
}

type fakeGenerator struct {
	reply       string
	lastRequest replies.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req replies.Request) string {
	f.lastRequest = req
	return f.reply
}
