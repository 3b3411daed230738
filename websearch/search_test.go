package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClientWithBaseURL(server.URL + "/"), server
}

func TestFragmentsAbstractFirst(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("no_html"))
		w.Write([]byte(`{
			"AbstractText": "Zupa pomidorowa to klasyka.",
			"RelatedTopics": [
				{"Text": "Pierwszy temat"},
				{"Text": "Drugi temat"}
			]
		}`))
	})
	defer server.Close()

	got := client.Fragments(context.Background(), "zupa pomidorowa")
	assert.Equal(t, "Zupa pomidorowa to klasyka. Pierwszy temat Drugi temat", got)
}

func TestFragmentsCapAtFour(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"AbstractText": "A",
			"RelatedTopics": [
				{"Text": "B"}, {"Text": "C"}, {"Text": "D"}, {"Text": "E"}, {"Text": "F"}
			]
		}`))
	})
	defer server.Close()

	assert.Equal(t, "A B C D", client.Fragments(context.Background(), "cokolwiek"))
}

func TestFragmentsNestedTopicsAfterDirectText(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"AbstractText": "",
			"RelatedTopics": [
				{"Topics": [{"Text": "Zagnieżdżony"}]},
				{"Text": "Bezpośredni"}
			]
		}`))
	})
	defer server.Close()

	// Direct texts are collected before descending into sub-topics.
	assert.Equal(t, "Bezpośredni Zagnieżdżony", client.Fragments(context.Background(), "cokolwiek"))
}

func TestFragmentsNon2xxReturnsEmpty(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	assert.Equal(t, "", client.Fragments(context.Background(), "cokolwiek"))
}

func TestFragmentsMalformedBodyReturnsEmpty(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>nie json</html>"))
	})
	defer server.Close()

	assert.Equal(t, "", client.Fragments(context.Background(), "cokolwiek"))
}

func TestFragmentsNetworkFailureReturnsEmpty(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {})
	server.Close() // connection refused from here on

	assert.Equal(t, "", client.Fragments(context.Background(), "cokolwiek"))
}

func TestFragmentsEmptyAnswer(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"AbstractText": "", "RelatedTopics": []}`))
	})
	defer server.Close()

	assert.Equal(t, "", client.Fragments(context.Background(), "cokolwiek"))
}
