package engine

import (
	"sort"
	"time"

	"github.com/qazaqstep/qazaqstep/internal/models"
)

// Weak-topic review priority labels.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// WeakTopicReport is one entry of the review-priority query.
type WeakTopicReport struct {
	Topic      string `json:"topic"`
	ErrorCount int    `json:"error_count"`
	Priority   string `json:"priority"`
}

// RecordTopicError bumps the error count for a topic, creating the entry on
// the first error. The needs-review flag is re-asserted on every error.
func RecordTopicError(p *models.LearnerProfile, topic string, now time.Time) *models.WeakTopic {
	entry, ok := p.WeakTopics[topic]
	if !ok {
		entry = &models.WeakTopic{Topic: topic}
		p.WeakTopics[topic] = entry
	}
	entry.ErrorCount++
	entry.LastErrorAt = now
	entry.NeedsReview = true
	return entry
}

// TopicsNeedingReview returns up to limit topics with at least minErrors
// recorded errors, most error-prone first. Ties order by topic name so the
// output is stable.
func TopicsNeedingReview(p *models.LearnerProfile, minErrors, limit int) []WeakTopicReport {
	out := make([]WeakTopicReport, 0, len(p.WeakTopics))
	for _, t := range p.WeakTopics {
		if t.ErrorCount < minErrors {
			continue
		}
		out = append(out, WeakTopicReport{
			Topic:      t.Topic,
			ErrorCount: t.ErrorCount,
			Priority:   PriorityFor(t.ErrorCount),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ErrorCount != out[j].ErrorCount {
			return out[i].ErrorCount > out[j].ErrorCount
		}
		return out[i].Topic < out[j].Topic
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PriorityFor classifies a topic's review priority from its error count.
func PriorityFor(errorCount int) string {
	switch {
	case errorCount >= 5:
		return PriorityHigh
	case errorCount >= 3:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
