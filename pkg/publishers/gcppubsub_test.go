package publishers

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/samvad-hq/placeholder-collector/internal/domain"
)

func TestGCPPubSubPublisherPublishes(t *testing.T) {
	// Use the in-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	defer os.Unsetenv("PUBSUB_EMULATOR_HOST")
	os.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := client.CreateTopic(ctx, "comments"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	pub, err := newGCPPubSubPublisher(ctx, PublisherConfig{
		ID:   "stream",
		Type: TypeGCPPubSub,
		GCP: &GCPPublisherConfig{
			ProjectID: "test-project",
			Topic:     "comments",
		},
	}, nil)
	if err != nil {
		t.Fatalf("newGCPPubSubPublisher: %v", err)
	}

	evt := NewEvent("/comments", domain.Comment{PostID: 4, ID: 41, Email: "d@example.com"})
	if err := pub.Publish(ctx, evt); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	msgs := server.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 published message, got %d", len(msgs))
	}
	if got := msgs[0].Attributes["endpoint"]; got != "/comments" {
		t.Errorf("expected endpoint attribute /comments, got %q", got)
	}

	var decoded Event
	if err := json.Unmarshal(msgs[0].Data, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.Comment.ID != 41 {
		t.Errorf("expected comment id 41, got %d", decoded.Comment.ID)
	}
}

func TestNewGCPPubSubPublisherRequiresConfig(t *testing.T) {
	if _, err := newGCPPubSubPublisher(context.Background(), PublisherConfig{ID: "stream", Type: TypeGCPPubSub}, nil); err == nil {
		t.Fatal("expected error for missing gcp configuration")
	}
}
