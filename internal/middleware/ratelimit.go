package middleware

import "golang.org/x/time/rate"

// Limits bounds what a single drawing connection may send.
type Limits struct {
	MaxMessageSize    int
	MessagesPerSecond float64
	BurstSize         int
}

func NewLimits(maxMessageSize int, messagesPerSecond float64, burstSize int) *Limits {
	return &Limits{
		MaxMessageSize:    maxMessageSize,
		MessagesPerSecond: messagesPerSecond,
		BurstSize:         burstSize,
	}
}

// ValidateMessageSize: checks if a message is within the size limit
func (l *Limits) ValidateMessageSize(msgSize int) bool {
	return msgSize <= l.MaxMessageSize
}

// NewMessageLimiter: a fresh per-connection limiter. Excess frames are
// delayed rather than dropped so pointer events keep their order.
func (l *Limits) NewMessageLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(l.MessagesPerSecond), l.BurstSize)
}
