package messaging

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestMessageCarrier(t *testing.T) {
	msg := &kafka.Message{}
	carrier := NewMessageCarrier(msg)

	assert.Empty(t, carrier.Get("traceparent"))

	carrier.Set("traceparent", "00-abc-def-01")
	assert.Equal(t, "00-abc-def-01", carrier.Get("traceparent"))

	// Overwrites in place rather than appending a duplicate header.
	carrier.Set("traceparent", "00-abc-def-02")
	assert.Equal(t, "00-abc-def-02", carrier.Get("traceparent"))
	assert.Len(t, msg.Headers, 1)

	carrier.Set("baggage", "k=v")
	assert.ElementsMatch(t, []string{"traceparent", "baggage"}, carrier.Keys())
}
