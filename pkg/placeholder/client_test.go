package placeholder

import (
	"context"
	"errors"
	"testing"

	"github.com/samvad-hq/placeholder-collector/internal/domain"
	"github.com/samvad-hq/placeholder-collector/pkg/httpclient"
)

const sampleComments = `[
  {"postId": 1, "id": 1, "name": "first", "email": "a@example.com", "body": "body one"},
  {"postId": 1, "id": 2, "name": "second", "email": "b@example.com", "body": "body two"}
]`

type mockResponse struct {
	body       []byte
	statusCode int
}

func (r mockResponse) Body() []byte    { return r.body }
func (r mockResponse) StatusCode() int { return r.statusCode }

type mockHTTPClient struct {
	t         *testing.T
	expectURL string
	status    int
	body      string
	err       error

	getCalls  int
	postCalls int
	gotBody   []byte
	gotHeader map[string]string
}

func (m *mockHTTPClient) respond(url string, headers map[string]string) (httpclient.Response, error) {
	if m.expectURL != "" && url != m.expectURL {
		m.t.Fatalf("expected url %q, got %q", m.expectURL, url)
	}
	m.gotHeader = headers
	if m.err != nil {
		return nil, m.err
	}
	status := m.status
	if status == 0 {
		status = 200
	}
	return mockResponse{body: []byte(m.body), statusCode: status}, nil
}

func (m *mockHTTPClient) Get(_ context.Context, url string, headers map[string]string) (httpclient.Response, error) {
	m.getCalls++
	return m.respond(url, headers)
}

func (m *mockHTTPClient) Post(_ context.Context, url string, body []byte, headers map[string]string) (httpclient.Response, error) {
	m.postCalls++
	m.gotBody = body
	return m.respond(url, headers)
}

func TestGetDecodesComments(t *testing.T) {
	client := &mockHTTPClient{
		t:         t,
		expectURL: "https://api.test/comments",
		body:      sampleComments,
	}

	comments, err := Get[[]domain.Comment](context.Background(), New("https://api.test", client), Comments(), nil)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	first := comments[0]
	if first.PostID != 1 || first.ID != 1 || first.Name != "first" || first.Email != "a@example.com" || first.Body != "body one" {
		t.Errorf("unexpected first comment: %+v", first)
	}
	for _, c := range comments {
		if c.PostID < 0 || c.ID < 0 {
			t.Errorf("expected non-negative ids, got postId=%d id=%d", c.PostID, c.ID)
		}
	}
}

func TestGetAppendsQueryParameters(t *testing.T) {
	client := &mockHTTPClient{
		t:         t,
		expectURL: "https://api.test/comments?postId=1",
		body:      sampleComments,
	}

	_, err := Get[[]domain.Comment](context.Background(), New("https://api.test", client), Comments(), map[string]string{"postId": "1"})
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if client.gotHeader["Accept"] != "application/json" {
		t.Errorf("expected Accept header, got %q", client.gotHeader["Accept"])
	}
}

func TestGetMalformedBodyYieldsDecodeError(t *testing.T) {
	client := &mockHTTPClient{t: t, body: `{"not": "an array"`}

	_, err := Get[[]domain.Comment](context.Background(), New("https://api.test", client), Comments(), nil)
	if !IsDecodeFailed(err) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestGetMissingBaseURLSkipsTransport(t *testing.T) {
	client := &mockHTTPClient{t: t, body: sampleComments}

	_, err := Get[[]domain.Comment](context.Background(), New("", client), Comments(), nil)
	if !IsInvalidRequest(err) {
		t.Fatalf("expected invalid request error, got %v", err)
	}
	if client.getCalls != 0 {
		t.Errorf("expected no network call, got %d", client.getCalls)
	}
}

func TestGetTransportErrorYieldsNetworkError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	client := &mockHTTPClient{t: t, err: cause}

	_, err := Get[[]domain.Comment](context.Background(), New("https://api.test", client), Comments(), nil)
	if !IsNetworkFailed(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("expected the transport cause to be reachable via Unwrap")
	}
}

func TestGetEmptyBodyYieldsNoResponse(t *testing.T) {
	client := &mockHTTPClient{t: t, body: ""}

	_, err := Get[[]domain.Comment](context.Background(), New("https://api.test", client), Comments(), nil)
	if !IsNoResponse(err) {
		t.Fatalf("expected no-response error, got %v", err)
	}
}

func TestGetErrorStatusYieldsNetworkError(t *testing.T) {
	client := &mockHTTPClient{t: t, status: 503, body: "upstream down"}

	_, err := Get[[]domain.Comment](context.Background(), New("https://api.test", client), Comments(), nil)
	if !IsNetworkFailed(err) {
		t.Fatalf("expected network error for status 503, got %v", err)
	}
}

func TestGetAsyncDeliversExactlyOneResult(t *testing.T) {
	client := &mockHTTPClient{t: t, body: sampleComments}

	results := GetAsync[[]domain.Comment](context.Background(), New("https://api.test", client), Comments(), nil)

	res, ok := <-results
	if !ok {
		t.Fatal("expected one result before close")
	}
	if res.Err != nil {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if len(res.Value) != 2 {
		t.Errorf("expected 2 comments, got %d", len(res.Value))
	}
	if _, ok := <-results; ok {
		t.Error("expected channel to be closed after the single result")
	}
}

func TestGetAsyncDeliversFailureAsValue(t *testing.T) {
	results := GetAsync[[]domain.Comment](context.Background(), New("", &mockHTTPClient{t: t}), Comments(), nil)

	res, ok := <-results
	if !ok {
		t.Fatal("expected one result before close")
	}
	if res.Err == nil || res.Err.Kind != KindInvalidRequest {
		t.Fatalf("expected invalid request result, got %+v", res.Err)
	}
}

func TestPostTargetsEndpointPath(t *testing.T) {
	client := &mockHTTPClient{
		t:         t,
		expectURL: "https://api.test/posts",
		body:      `{"userId": 7, "id": 101, "title": "hello", "body": "world"}`,
	}

	created, err := Post[domain.Post](context.Background(), New("https://api.test", client), Posts(), domain.Post{UserID: 7, Title: "hello", Body: "world"})
	if err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	if created.ID != 101 || created.Title != "hello" {
		t.Errorf("unexpected created post: %+v", created)
	}
	if client.gotHeader["Content-Type"] != "application/json" {
		t.Errorf("expected JSON content type, got %q", client.gotHeader["Content-Type"])
	}
	if len(client.gotBody) == 0 {
		t.Error("expected a serialized request body")
	}
}

func TestPostUnserializableBodySkipsTransport(t *testing.T) {
	client := &mockHTTPClient{t: t}

	_, err := Post[domain.Post](context.Background(), New("https://api.test", client), Posts(), func() {})
	if !IsInvalidRequest(err) {
		t.Fatalf("expected invalid request error, got %v", err)
	}
	if client.postCalls != 0 {
		t.Errorf("expected no network call, got %d", client.postCalls)
	}
}
