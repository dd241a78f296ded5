package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

func TestBuildMessage(t *testing.T) {
	at := time.Date(2024, 5, 1, 13, 0, 0, 0, time.FixedZone("WAT", 3600))
	msg, err := buildMessage("submission.created", map[string]any{"id": "abc"}, at)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if msg.ContentType != "application/json" || msg.DeliveryMode != amqp.Persistent || msg.Type != "submission.created" {
		t.Fatalf("message %+v", msg)
	}
	if msg.MessageId == "" || !msg.Timestamp.Equal(at) || msg.Timestamp.Location() != time.UTC {
		t.Fatalf("id/timestamp: %q %v", msg.MessageId, msg.Timestamp)
	}
	var body map[string]string
	if err := json.Unmarshal(msg.Body, &body); err != nil || body["id"] != "abc" {
		t.Fatalf("body %s", msg.Body)
	}
}

func TestBuildMessage_Unencodable(t *testing.T) {
	if _, err := buildMessage("x", make(chan int), time.Now()); err == nil {
		t.Fatal("expected encode error")
	}
}

func TestNoop(t *testing.T) {
	if err := (Noop{}).Publish(context.Background(), "x", nil); err != nil {
		t.Fatalf("err: %v", err)
	}
}
