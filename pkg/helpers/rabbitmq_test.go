package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRabbitPublisher_NilIsSafe(t *testing.T) {
	var p *RabbitPublisher
	assert.ErrorIs(t, p.PublishJSON(context.Background(), map[string]string{"to": "a@b.c"}), ErrPublisherClosed)
	assert.NotPanics(t, p.Close)
	assert.ErrorIs(t, (&RabbitPublisher{}).PublishJSON(context.Background(), nil), ErrPublisherClosed)
}
