package leetcode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c := NewClient(ClientOptions{
		BaseURL:    baseURL,
		PageSize:   2,
		PageDelay:  time.Millisecond,
		MaxRetries: 3,
	}, zap.NewNop())
	c.backoffBase = time.Millisecond
	return c
}

func writePage(t *testing.T, w http.ResponseWriter, page submissionPage) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(page))
}

func TestFetchAllSubmissions_PaginatesUntilLastPage(t *testing.T) {
	var requests []struct{ offset, lastkey string }
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, struct{ offset, lastkey string }{
			r.URL.Query().Get("offset"), r.URL.Query().Get("lastkey"),
		})
		switch r.URL.Query().Get("offset") {
		case "0":
			writePage(t, w, submissionPage{
				SubmissionsDump: []Submission{
					{ID: 4, QuestionID: 4, Timestamp: 400},
					{ID: 3, QuestionID: 3, Timestamp: 300},
				},
				HasNext: true,
				LastKey: "key-1",
			})
		default:
			writePage(t, w, submissionPage{
				SubmissionsDump: []Submission{
					{ID: 2, QuestionID: 2, Timestamp: 200},
				},
				HasNext: false,
			})
		}
	}))
	defer server.Close()

	subs := testClient(t, server.URL).FetchAllSubmissions(context.Background(), Auth{}, 0)

	require.Len(t, subs, 3)
	assert.Equal(t, int64(4), subs[0].ID)
	assert.Equal(t, int64(2), subs[2].ID)
	require.Len(t, requests, 2)
	assert.Equal(t, "0", requests[0].offset)
	assert.Equal(t, "", requests[0].lastkey)
	assert.Equal(t, "2", requests[1].offset)
	assert.Equal(t, "key-1", requests[1].lastkey)
}

func TestFetchAllSubmissions_EmptyFirstPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writePage(t, w, submissionPage{SubmissionsDump: []Submission{}, HasNext: true})
	}))
	defer server.Close()

	subs := testClient(t, server.URL).FetchAllSubmissions(context.Background(), Auth{}, 0)

	assert.Empty(t, subs)
}

func TestFetchAllSubmissions_SinceFilterStopsPagination(t *testing.T) {
	pagesServed := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		switch r.URL.Query().Get("offset") {
		case "0":
			writePage(t, w, submissionPage{
				SubmissionsDump: []Submission{
					{ID: 4, QuestionID: 4, Timestamp: 400},
					{ID: 3, QuestionID: 3, Timestamp: 300},
				},
				HasNext: true,
			})
		default:
			// Every entry at or before the since timestamp.
			writePage(t, w, submissionPage{
				SubmissionsDump: []Submission{
					{ID: 2, QuestionID: 2, Timestamp: 200},
					{ID: 1, QuestionID: 1, Timestamp: 100},
				},
				HasNext: true,
			})
		}
	}))
	defer server.Close()

	subs := testClient(t, server.URL).FetchAllSubmissions(context.Background(), Auth{}, 250)

	require.Len(t, subs, 2)
	assert.Equal(t, int64(4), subs[0].ID)
	assert.Equal(t, int64(3), subs[1].ID)
	assert.Equal(t, 2, pagesServed)
}

func TestFetchAllSubmissions_SinceFilterDropsOlderEntriesWithinPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writePage(t, w, submissionPage{
			SubmissionsDump: []Submission{
				{ID: 4, QuestionID: 4, Timestamp: 400},
				{ID: 3, QuestionID: 3, Timestamp: 300},
			},
			HasNext: false,
		})
	}))
	defer server.Close()

	subs := testClient(t, server.URL).FetchAllSubmissions(context.Background(), Auth{}, 300)

	require.Len(t, subs, 1)
	assert.Equal(t, int64(4), subs[0].ID)
}

func TestFetchAllSubmissions_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writePage(t, w, submissionPage{
			SubmissionsDump: []Submission{{ID: 1, QuestionID: 1, Timestamp: 100}},
			HasNext:         false,
		})
	}))
	defer server.Close()

	subs := testClient(t, server.URL).FetchAllSubmissions(context.Background(), Auth{}, 0)

	require.Len(t, subs, 1)
	assert.Equal(t, 3, attempts)
}

func TestFetchAllSubmissions_ExhaustedRetriesReturnPartialResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("offset") == "0" {
			writePage(t, w, submissionPage{
				SubmissionsDump: []Submission{{ID: 2, QuestionID: 2, Timestamp: 200}},
				HasNext:         true,
			})
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	subs := testClient(t, server.URL).FetchAllSubmissions(context.Background(), Auth{}, 0)

	// The failed second page terminates pagination; the first page survives.
	require.Len(t, subs, 1)
	assert.Equal(t, int64(2), subs[0].ID)
}

func TestFetchAllSubmissions_SendsAuthHeaders(t *testing.T) {
	var gotCSRF, gotCookie, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCSRF = r.Header.Get("x-csrftoken")
		gotCookie = r.Header.Get("Cookie")
		gotAgent = r.Header.Get("User-Agent")
		writePage(t, w, submissionPage{})
	}))
	defer server.Close()

	auth := Auth{CSRFToken: "token-123", Cookie: "LEETCODE_SESSION=abc"}
	testClient(t, server.URL).FetchAllSubmissions(context.Background(), auth, 0)

	assert.Equal(t, "token-123", gotCSRF)
	assert.Equal(t, "LEETCODE_SESSION=abc", gotCookie)
	assert.Equal(t, userAgent, gotAgent)
}
