package network

import (
	"sync"
	"time"
)

const sentLogSize = 64

// SentRecord is one emitted keys message.
type SentRecord struct {
	Sequence uint32
	SentAt   time.Time
}

// SentLog is a ring buffer of recently emitted sequences, used to report how
// far the server lags behind the client and the round trip of acknowledged
// messages.
type SentLog struct {
	mu      sync.Mutex
	history [sentLogSize]SentRecord
	nextSeq uint32
	acked   uint32
	rtt     time.Duration
}

// Store records that seq was sent at t.
func (l *SentLog) Store(seq uint32, t time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history[seq%sentLogSize] = SentRecord{Sequence: seq, SentAt: t}
	l.nextSeq = seq + 1
}

// get returns the record for seq, or false if its slot was overwritten.
func (l *SentLog) get(seq uint32) (SentRecord, bool) {
	record := l.history[seq%sentLogSize]
	if record.Sequence != seq || record.SentAt.IsZero() {
		return SentRecord{}, false
	}
	return record, true
}

// Ack marks every sequence up to seq as processed by the server at now.
// Older acknowledgements are ignored.
func (l *SentLog) Ack(seq uint32, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if seq <= l.acked {
		return
	}
	l.acked = seq
	if record, ok := l.get(seq); ok {
		l.rtt = now.Sub(record.SentAt)
	}
}

// Pending returns how many sent messages the server has not acknowledged.
func (l *SentLog) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.nextSeq == 0 || l.acked+1 >= l.nextSeq {
		return 0
	}
	return int(l.nextSeq - 1 - l.acked)
}

// RTT returns the round trip of the latest acknowledged message.
func (l *SentLog) RTT() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rtt
}

// Reset forgets all history.
func (l *SentLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history = [sentLogSize]SentRecord{}
	l.nextSeq, l.acked, l.rtt = 0, 0, 0
}
