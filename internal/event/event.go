package event

import "time"

// Topic names an event stream. Dot-separated segments form a hierarchy.
type Topic string

// Topics published by the engine.
const (
	// TopicDocApplied is published after a transaction commits.
	TopicDocApplied Topic = "doc.applied"

	// TopicRuleMatched is published when a pattern rule fires.
	TopicRuleMatched Topic = "rule.matched"

	// TopicRuleDroppedStale is published when a deferred evaluation is
	// discarded because the document version moved.
	TopicRuleDroppedStale Topic = "rule.dropped.stale"

	// TopicRuleRejectedAttrs is published when a capture-to-attribute
	// mapping fails validation and the match is treated as no-match.
	TopicRuleRejectedAttrs Topic = "rule.rejected.attrs"

	// TopicViewCreated is published when a node view is first created.
	TopicViewCreated Topic = "view.created"

	// TopicViewRecreated is published when a node view is torn down and
	// rebuilt after a type change.
	TopicViewRecreated Topic = "view.recreated"
)

// Contains reports whether t equals other or is an ancestor of it.
func (t Topic) Contains(other Topic) bool {
	if t == other {
		return true
	}
	return len(other) > len(t) && other[:len(t)] == t && other[len(t)] == '.'
}

// Event is a single published occurrence.
type Event struct {
	Topic Topic
	Time  time.Time
	Data  any
}
