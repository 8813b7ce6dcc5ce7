package mq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishRefusedWithoutConnection(t *testing.T) {
	p := &Publisher{}

	assert.False(t, p.IsConnected())

	err := p.Publish(RoutingEntryChanged, EntryChangedPayload{UserID: 1})
	assert.Error(t, err)
}
