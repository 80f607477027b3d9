package room

import (
	"seotda-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages adds a lot message
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

// logBacklog returns a copy of the retained log messages
// Note: this must only be called from within the run loop
func (d *Dealer) logBacklog() []*playable.LogMessage {
	return append([]*playable.LogMessage{}, d.logMessages...)
}
