package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/acemeet/aceletters/internal/client/models"
	"github.com/acemeet/aceletters/internal/common"
	"github.com/acemeet/aceletters/internal/logging"
)

const defaultRequestTimeout = 15 * time.Second

// HTTPClient is the concrete Client speaking HTTP/JSON to the backend.
// baseURL includes the API prefix, e.g. "http://127.0.0.1:8000/api".
type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     logging.Logger

	userID string
	token  string
}

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{},
		timeout: timeout,
		log:     log,
	}
}

func (c *HTTPClient) SetIdentity(userID, token string) {
	c.userID = userID
	c.token = token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do performs one request with the configured timeout. A JSON body is sent
// when in != nil; a 2xx response body is decoded into out when out != nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+c.token)
	}
	if c.userID != "" {
		req.Header.Set(common.UserIDHeaderName, c.userID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.remoteError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// remoteError reads the server's {"error": "..."} body, falling back to
// the HTTP status text.
func (c *HTTPClient) remoteError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(data, &payload)

	msg := payload.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	if c.log != nil {
		c.log.Warn(resp.Request.Context(), "request failed",
			"method", resp.Request.Method,
			"url", resp.Request.URL.String(),
			"status", resp.StatusCode,
		)
	}
	return &RemoteError{Status: resp.StatusCode, Message: msg}
}

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
}

func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (Credentials, error) {
	body := map[string]string{
		"username": username,
		"password": string(password),
	}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &resp); err != nil {
		return Credentials{}, err
	}
	return Credentials{UserID: resp.UserID, Token: resp.Token}, nil
}

func (c *HTTPClient) Signup(ctx context.Context, draft models.ProfileDraft, password []byte) (Credentials, error) {
	payload := map[string]any{
		"username":    draft.Username,
		"password":    string(password),
		"name":        draft.Name,
		"age":         draft.Age,
		"gender":      draft.Gender,
		"orientation": draft.Orientation,
		"looking_for": draft.LookingFor,
		"city":        draft.City,
		"info":        draft.Info,
		"contact":     draft.Contact,
		"image_url":   draft.ImageURL,
	}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/signup", nil, payload, &resp); err != nil {
		return Credentials{}, err
	}
	return Credentials{UserID: resp.UserID, Token: resp.Token}, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil, nil)
}

type profilePageResponse struct {
	Items      []models.Profile `json:"items"`
	NextCursor string           `json:"next_cursor"`
	HasMore    bool             `json:"has_more"`
}

func (c *HTTPClient) FetchAll(ctx context.Context, limit int, cursor string) (ProfilePage, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	var resp profilePageResponse
	if err := c.do(ctx, http.MethodGet, "/allprofiles", query, nil, &resp); err != nil {
		return ProfilePage{}, err
	}
	return ProfilePage{Items: resp.Items, NextCursor: resp.NextCursor, HasMore: resp.HasMore}, nil
}

func (c *HTTPClient) FetchSaved(ctx context.Context, viewerID string) ([]models.Profile, error) {
	var resp struct {
		Items []models.Profile `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/profilessaved/"+viewerID, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *HTTPClient) FetchOne(ctx context.Context, profileID string) (models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, "/profile/"+profileID, nil, nil, &p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, profileID string, draft models.ProfileDraft) (models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodPut, "/profile/"+profileID, nil, draft, &p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (c *HTTPClient) FetchLikedIDs(ctx context.Context, viewerID string) ([]string, error) {
	var resp struct {
		Liked []string `json:"liked"`
	}
	if err := c.do(ctx, http.MethodGet, "/likes/"+viewerID, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Liked, nil
}

func (c *HTTPClient) AddLike(ctx context.Context, viewerID, targetID string) error {
	return c.do(ctx, http.MethodPost, "/likes/"+viewerID+"/"+targetID, nil, nil, nil)
}

func (c *HTTPClient) RemoveLike(ctx context.Context, viewerID, targetID string) error {
	return c.do(ctx, http.MethodDelete, "/likes/"+viewerID+"/"+targetID, nil, nil, nil)
}

func (c *HTTPClient) FetchInbox(ctx context.Context, userID string) ([]models.Letter, error) {
	var resp struct {
		Items []models.Letter `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/inbox/"+userID, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *HTTPClient) SendLetter(ctx context.Context, senderID, recipientID, body string) error {
	payload := map[string]string{"letter": body}
	return c.do(ctx, http.MethodPost, "/writelatter/"+senderID+"/"+recipientID, nil, payload, nil)
}

func (c *HTTPClient) MarkRead(ctx context.Context, letterID, userID string) (models.OptionalTime, error) {
	payload := map[string]string{"user_id": userID}
	var resp struct {
		ReadAt models.OptionalTime `json:"read_at"`
	}
	if err := c.do(ctx, http.MethodPost, "/letters/"+letterID+"/read", nil, payload, &resp); err != nil {
		return models.OptionalTime{}, err
	}
	return resp.ReadAt, nil
}

func (c *HTTPClient) DeleteLetter(ctx context.Context, letterID, userID string) error {
	query := url.Values{}
	query.Set("user_id", userID)
	return c.do(ctx, http.MethodDelete, "/letters/"+letterID, query, nil, nil)
}

func (c *HTTPClient) DeleteAsset(ctx context.Context, publicID string) error {
	payload := map[string]string{"public_id": publicID}
	return c.do(ctx, http.MethodPost, "/cloudinary/delete", nil, payload, nil)
}
