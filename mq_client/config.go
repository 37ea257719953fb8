package mq_client

import (
	"strings"

	"github.com/goleiroon/goleiroon/config"
)

// Subject builds the NATS subject an event kind is published on.
func Subject(kind EventKind) string {
	return config.App.Events.SubjectPrefix + "." + kind
}

// GetBinding returns what a named worker subscribes to. Unknown ids get nil.
func GetBinding(id string) *Binding {
	prefix := config.App.Events.SubjectPrefix
	queue := config.App.Events.QueueGroup + "." + id

	switch id {
	case "notification":
		return &Binding{Subject: prefix + ".>", Queue: queue}
	case "expiry_watcher":
		return &Binding{Subject: prefix + ".convocation.*", Queue: queue}
	default:
		return nil
	}
}

// KindFromSubject strips the configured prefix from a subject.
func KindFromSubject(subject string) EventKind {
	return strings.TrimPrefix(subject, config.App.Events.SubjectPrefix+".")
}
