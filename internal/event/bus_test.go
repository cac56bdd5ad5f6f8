package event

import "testing"

func TestTopicContains(t *testing.T) {
	tests := []struct {
		pattern Topic
		topic   Topic
		want    bool
	}{
		{"rule", "rule.matched", true},
		{"rule", "rule.dropped.stale", true},
		{"rule.matched", "rule.matched", true},
		{"rule.matched", "rule", false},
		{"rule", "rules.matched", false},
		{"", "rule", false},
	}
	for _, tt := range tests {
		if got := tt.pattern.Contains(tt.topic); got != tt.want {
			t.Errorf("%q.Contains(%q) = %v, want %v", tt.pattern, tt.topic, got, tt.want)
		}
	}
}

func TestPublishDeliversInOrder(t *testing.T) {
	b := NewBus()
	var order []string

	b.Subscribe("rule", func(ev Event) { order = append(order, "first") })
	b.Subscribe("rule.matched", func(ev Event) { order = append(order, "second") })
	b.Subscribe("view", func(ev Event) { order = append(order, "never") })

	b.Publish(TopicRuleMatched, nil)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("delivery order = %v, want [first second]", order)
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	b := NewBus()
	count := 0
	sub := b.Subscribe("doc", func(ev Event) { count++ })

	b.Publish(TopicDocApplied, nil)
	sub.Cancel()
	b.Publish(TopicDocApplied, nil)

	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestHandlerPanicRecovered(t *testing.T) {
	b := NewBus()
	b.Subscribe("doc", func(ev Event) { panic("boom") })
	reached := false
	b.Subscribe("doc", func(ev Event) { reached = true })

	b.Publish(TopicDocApplied, nil)

	if !reached {
		t.Errorf("panicking handler must not block later handlers")
	}
	if got := b.Stats().HandlerPanics; got != 1 {
		t.Errorf("HandlerPanics = %d, want 1", got)
	}
}
