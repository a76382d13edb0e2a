package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acemeet/aceletters/internal/common"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewHTTPClient(ts.URL, 0, nil)
}

func TestHTTPClient_CarriesIdentityHeaders(t *testing.T) {
	var gotAuth, gotUser, gotReqID string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUser = r.Header.Get("X-User-Id")
		gotReqID = r.Header.Get("X-Request-Id")
		w.WriteHeader(http.StatusOK)
	})
	c.SetIdentity("u1", "tok-123")

	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "u1", gotUser)
	assert.NotEmpty(t, gotReqID)
}

func TestHTTPClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "dana", body["username"])
		require.Equal(t, "secret", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "Login successful",
			"token":   "tok",
			"user_id": "u1",
		})
	})

	creds, err := c.Login(context.Background(), "dana", []byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, Credentials{UserID: "u1", Token: "tok"}, creds)
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		matches error
		message string
	}{
		{"conflict is AlreadySent", http.StatusConflict, `{"error":"letter already exists"}`, ErrAlreadySent, "letter already exists"},
		{"404 is NotFound", http.StatusNotFound, `{"error":"Profile not found"}`, common.ErrorNotFound, "Profile not found"},
		{"401 is Unauthorized", http.StatusUnauthorized, `{"error":"Invalid username or password"}`, common.ErrorUnauthorized, "Invalid username or password"},
		{"500 keeps status text fallback", http.StatusInternalServerError, `not json`, nil, "Internal Server Error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})

			err := c.Ping(context.Background())
			require.Error(t, err)

			var remote *RemoteError
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, tc.status, remote.Status)
			assert.Equal(t, tc.message, remote.Message)
			if tc.matches != nil {
				assert.ErrorIs(t, err, tc.matches)
			}
		})
	}
}

func TestHTTPClient_TimeoutIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, 20*time.Millisecond, nil)
	err := c.Ping(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_FetchAll(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/allprofiles", r.URL.Path)
		require.Equal(t, "24", r.URL.Query().Get("limit"))
		require.Equal(t, "cur1", r.URL.Query().Get("cursor"))

		_, _ = io.WriteString(w, `{
			"items": [
				{"_id":"p1","username":"a","age":20},
				{"_id":"p2","username":"b","age":"not a number"}
			],
			"next_cursor": "cur2",
			"has_more": true
		}`)
	})

	page, err := c.FetchAll(context.Background(), 24, "cur1")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "p1", page.Items[0].ID)
	assert.True(t, page.Items[0].Age.Valid)
	assert.False(t, page.Items[1].Age.Valid)
	assert.Equal(t, "cur2", page.NextCursor)
	assert.True(t, page.HasMore)
}

func TestHTTPClient_LikesRoundTrip(t *testing.T) {
	var method, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, `{"liked":["t1","t2"]}`)
			return
		}
		_, _ = io.WriteString(w, `{"ok":true}`)
	})

	liked, err := c.FetchLikedIDs(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, liked)

	require.NoError(t, c.AddLike(context.Background(), "u1", "t3"))
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/likes/u1/t3", path)

	require.NoError(t, c.RemoveLike(context.Background(), "u1", "t3"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/likes/u1/t3", path)
}

func TestHTTPClient_LetterEndpoints(t *testing.T) {
	var path string
	var sentBody map[string]string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		switch {
		case r.URL.Path == "/writelatter/s1/r1":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&sentBody))
			w.WriteHeader(http.StatusCreated)
		case r.URL.Path == "/letters/l1/read":
			_, _ = io.WriteString(w, `{"read_at":"2024-05-01T12:00:00Z"}`)
		case r.URL.Path == "/letters/l1":
			require.Equal(t, "u1", r.URL.Query().Get("user_id"))
			w.WriteHeader(http.StatusOK)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	require.NoError(t, c.SendLetter(context.Background(), "s1", "r1", "hello"))
	assert.Equal(t, map[string]string{"letter": "hello"}, sentBody)

	readAt, err := c.MarkRead(context.Background(), "l1", "u1")
	require.NoError(t, err)
	require.True(t, readAt.Valid)
	assert.Equal(t, 2024, readAt.Time.Year())

	require.NoError(t, c.DeleteLetter(context.Background(), "l1", "u1"))
	assert.Equal(t, "/letters/l1", path)
}
