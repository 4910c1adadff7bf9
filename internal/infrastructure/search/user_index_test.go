package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-registration/internal/domain/entity"
)

// recordingTransport answers every request with a canned body and remembers what it saw.
type recordingTransport struct {
	mu     sync.Mutex
	status int
	body   string
	reqs   []*http.Request
	bodies []string
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var sent string
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		sent = string(b)
	}
	t.reqs = append(t.reqs, req)
	t.bodies = append(t.bodies, sent)

	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("X-Elastic-Product", "Elasticsearch")
	return &http.Response{
		StatusCode: t.status,
		Status:     http.StatusText(t.status),
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(t.body)),
		Request:    req,
	}, nil
}

func newTestIndex(t *testing.T, status int, body string) (*UserIndex, *recordingTransport) {
	t.Helper()
	tr := &recordingTransport{status: status, body: body}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://es.test:9200"},
		Transport: tr,
	})
	require.NoError(t, err)
	return NewUserIndex(client, "users", nil), tr
}

func TestIndexUserOmitsPassword(t *testing.T) {
	idx, tr := newTestIndex(t, http.StatusCreated, `{"result":"created"}`)

	u := &entity.User{
		ID:        "abc",
		Username:  "user",
		Password:  "secret-pass",
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "a@b.com",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, idx.IndexUser(context.Background(), u))

	require.Len(t, tr.reqs, 1)
	assert.Equal(t, http.MethodPut, tr.reqs[0].Method)
	assert.Equal(t, "/users/_doc/abc", tr.reqs[0].URL.Path)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(tr.bodies[0]), &doc))
	assert.Equal(t, "user", doc["username"])
	assert.Equal(t, "a@b.com", doc["email"])
	assert.NotContains(t, doc, "password")
	assert.NotContains(t, tr.bodies[0], "secret-pass")
}

func TestIndexUserReportsErrorStatus(t *testing.T) {
	idx, _ := newTestIndex(t, http.StatusInternalServerError, `{"error":"boom"}`)

	err := idx.IndexUser(context.Background(), &entity.User{ID: "abc"})
	assert.Error(t, err)
}

func TestSearchUsersReturnsSources(t *testing.T) {
	idx, tr := newTestIndex(t, http.StatusOK, `{"hits":{"hits":[
		{"_id":"1","_source":{"id":"1","username":"ann"}},
		{"_id":"2","_source":{"id":"2","username":"bob"}}
	]}}`)

	out, err := idx.SearchUsers(context.Background(), "an", 5)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "ann", out[0]["username"])
	assert.Equal(t, "bob", out[1]["username"])

	require.Len(t, tr.reqs, 1)
	assert.Equal(t, "/users/_search", tr.reqs[0].URL.Path)

	var q map[string]any
	require.NoError(t, json.Unmarshal([]byte(tr.bodies[0]), &q))
	assert.EqualValues(t, 5, q["size"])
	assert.Contains(t, tr.bodies[0], `"username^2"`)
}

func TestSearchUsersWithoutClientIsEmpty(t *testing.T) {
	idx := NewUserIndex(nil, "users", nil)

	out, err := idx.SearchUsers(context.Background(), "x", 10)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.NoError(t, idx.IndexUser(context.Background(), &entity.User{ID: "1"}))
}
