package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/samvad-hq/placeholder-collector/internal/config"
	"github.com/samvad-hq/placeholder-collector/pkg/httpclient"
	"github.com/samvad-hq/placeholder-collector/pkg/placeholder"
	"github.com/samvad-hq/placeholder-collector/pkg/publishers"
)

const sampleComments = `[
  {"postId": 1, "id": 1, "name": "first", "email": "a@example.com", "body": "one"},
  {"postId": 1, "id": 2, "name": "second", "email": "b@example.com", "body": "two"},
  {"postId": 2, "id": 3, "name": "third", "email": "c@example.com", "body": "three"}
]`

type stubResponse struct {
	body   []byte
	status int
}

func (r stubResponse) Body() []byte    { return r.body }
func (r stubResponse) StatusCode() int { return r.status }

type stubHTTPClient struct {
	body string
	err  error
}

func (s *stubHTTPClient) Get(context.Context, string, map[string]string) (httpclient.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return stubResponse{body: []byte(s.body), status: 200}, nil
}

func (s *stubHTTPClient) Post(context.Context, string, []byte, map[string]string) (httpclient.Response, error) {
	return stubResponse{body: []byte(s.body), status: 200}, nil
}

type memoryStore struct {
	seen map[int]bool
}

func newMemoryStore() *memoryStore { return &memoryStore{seen: make(map[int]bool)} }

func (m *memoryStore) Close() error { return nil }
func (m *memoryStore) SeenComment(id int) (bool, error) {
	return m.seen[id], nil
}
func (m *memoryStore) MarkComment(id int) error {
	m.seen[id] = true
	return nil
}

type capturingPublisher struct {
	events []publishers.Event
	err    error
}

func (c *capturingPublisher) ID() string   { return "capture" }
func (c *capturingPublisher) Type() string { return "http" }
func (c *capturingPublisher) Publish(_ context.Context, evt publishers.Event) error {
	if c.err != nil {
		return c.err
	}
	c.events = append(c.events, evt)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{PollInterval: 1}
}

func TestRunOncePublishesUnseenComments(t *testing.T) {
	client := placeholder.New("https://api.test", &stubHTTPClient{body: sampleComments})
	store := newMemoryStore()
	store.seen[2] = true
	sink := &capturingPublisher{}

	c := newCollector(testConfig(), client, store, publishers.NewFanout([]publishers.Publisher{sink}))
	if err := c.runOnce(context.Background()); err != nil {
		t.Fatalf("runOnce returned error: %v", err)
	}

	if len(sink.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(sink.events))
	}
	if sink.events[0].Comment.ID != 1 || sink.events[1].Comment.ID != 3 {
		t.Errorf("unexpected published comment ids: %+v", sink.events)
	}
	if sink.events[0].Endpoint != "/comments" {
		t.Errorf("expected endpoint /comments, got %q", sink.events[0].Endpoint)
	}
	if !store.seen[1] || !store.seen[3] {
		t.Error("expected published comments to be marked seen")
	}
}

func TestRunOnceIsIdempotentAcrossPasses(t *testing.T) {
	client := placeholder.New("https://api.test", &stubHTTPClient{body: sampleComments})
	store := newMemoryStore()
	sink := &capturingPublisher{}

	c := newCollector(testConfig(), client, store, publishers.NewFanout([]publishers.Publisher{sink}))
	if err := c.runOnce(context.Background()); err != nil {
		t.Fatalf("first pass returned error: %v", err)
	}
	if err := c.runOnce(context.Background()); err != nil {
		t.Fatalf("second pass returned error: %v", err)
	}

	if len(sink.events) != 3 {
		t.Fatalf("expected 3 events total after two passes, got %d", len(sink.events))
	}
}

func TestRunOnceReportsFetchFailure(t *testing.T) {
	client := placeholder.New("https://api.test", &stubHTTPClient{err: errors.New("connection reset")})

	c := newCollector(testConfig(), client, newMemoryStore(), publishers.NewFanout(nil))
	err := c.runOnce(context.Background())
	if err == nil {
		t.Fatal("expected error when the fetch fails")
	}
	if !placeholder.IsNetworkFailed(err) {
		t.Errorf("expected a network failure, got %v", err)
	}
}

func TestRunOnceDoesNotMarkOnPublishFailure(t *testing.T) {
	client := placeholder.New("https://api.test", &stubHTTPClient{body: sampleComments})
	store := newMemoryStore()
	sink := &capturingPublisher{err: errors.New("sink down")}

	c := newCollector(testConfig(), client, store, publishers.NewFanout([]publishers.Publisher{sink}))
	if err := c.runOnce(context.Background()); err == nil {
		t.Fatal("expected joined publish errors")
	}

	for id := range store.seen {
		t.Errorf("expected no comment marked, found %d", id)
	}
}
