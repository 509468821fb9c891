package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	e := New(PropertyCreated, "p1", "owner-1", map[string]string{"name": "Loft"})
	msg, err := newPublishing(e)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, e.ID, msg.MessageId)
	assert.Equal(t, PropertyCreated, msg.Type)
	assert.Equal(t, "p1", msg.Headers["x-property-id"])

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "owner-1", decoded.OwnerID)
	assert.Equal(t, PropertyCreated, decoded.Type)
}

func TestNewRabbitPublisherRequiresConfig(t *testing.T) {
	_, err := NewRabbitPublisher(RabbitConfig{}, nil)
	assert.Error(t, err)

	_, err = NewRabbitPublisher(RabbitConfig{URL: "amqp://localhost"}, nil)
	assert.Error(t, err)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Publish(context.Background(), New(PropertyUpdated, "p1", "o", nil)))
	assert.Equal(t, []string{PropertyUpdated}, r.Types())

	r.Err = errors.New("broker down")
	assert.Error(t, r.Publish(context.Background(), New(PropertyDeleted, "p1", "o", nil)))
	assert.Len(t, r.Events, 1)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}
