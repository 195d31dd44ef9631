package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/junhoi254/investment-academy/internal/dto"
	"github.com/junhoi254/investment-academy/internal/session"
)

const defaultTimeout = 10 * time.Second

// Client is the one-shot HTTP side of the service: login, room listings,
// history snapshots and message creation. Live updates are not its job;
// those arrive over the stream manager. Calls never retry — recovery for
// these endpoints is simply the next render's fetch.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
}

func New(baseURL string, store *session.Store) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		session:    store,
	}
}

// Login exchanges form-encoded credentials for a bearer token and persists
// it in the session store. Failures surface the server's detail message.
func (c *Client) Login(ctx context.Context, username, password string) (dto.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp, aerr := c.do(ctx, http.MethodPost, "/api/token", "/api/token",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if aerr != nil {
		return dto.TokenResponse{}, aerr
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return dto.TokenResponse{}, errorFromResponse(resp, "login failed")
	}

	var tokens dto.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return dto.TokenResponse{}, newError(ErrorCodeDecode, "malformed login response", err)
	}
	if tokens.AccessToken == "" {
		return dto.TokenResponse{}, newError(ErrorCodeDecode, "login response missing access token", nil)
	}

	if err := c.session.SetToken(tokens.AccessToken); err != nil {
		return dto.TokenResponse{}, fmt.Errorf("persist token: %w", err)
	}

	return tokens, nil
}

// Register creates a new account. Accounts start unapproved, so a
// successful registration does not log the user in.
func (c *Client) Register(ctx context.Context, phone, password, name string) (dto.User, error) {
	var user dto.User
	req := dto.RegisterRequest{Phone: phone, Password: password, Name: name}
	if aerr := c.postJSON(ctx, "/api/register", "/api/register", req, &user); aerr != nil {
		return dto.User{}, aerr
	}
	return user, nil
}

// FreeRooms lists publicly visible rooms. The server already filters by
// type, but the result is filtered on is_free again so a room can never
// leak into the free section by mistake.
func (c *Client) FreeRooms(ctx context.Context) ([]dto.Room, error) {
	var rooms []dto.Room
	if aerr := c.getJSON(ctx, "/api/rooms?type=free", "/api/rooms", &rooms); aerr != nil {
		return nil, aerr
	}

	free := make([]dto.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.IsFree {
			free = append(free, room)
		}
	}
	return free, nil
}

func (c *Client) Rooms(ctx context.Context) ([]dto.Room, error) {
	var rooms []dto.Room
	if aerr := c.getJSON(ctx, "/api/rooms", "/api/rooms", &rooms); aerr != nil {
		return nil, aerr
	}
	return rooms, nil
}

func (c *Client) Room(ctx context.Context, roomID int) (dto.Room, error) {
	var room dto.Room
	path := fmt.Sprintf("/api/rooms/%d", roomID)
	if aerr := c.getJSON(ctx, path, "/api/rooms/{id}", &room); aerr != nil {
		return dto.Room{}, aerr
	}
	return room, nil
}

// Messages fetches the history snapshot for a room: up to 100 messages,
// oldest first. Everything after the snapshot arrives over the stream.
func (c *Client) Messages(ctx context.Context, roomID int) ([]dto.Message, error) {
	var messages []dto.Message
	path := fmt.Sprintf("/api/messages/%d", roomID)
	if aerr := c.getJSON(ctx, path, "/api/messages/{room_id}", &messages); aerr != nil {
		return nil, aerr
	}
	return messages, nil
}

func (c *Client) Me(ctx context.Context) (dto.User, error) {
	var user dto.User
	if aerr := c.getJSON(ctx, "/api/users/me", "/api/users/me", &user); aerr != nil {
		return dto.User{}, aerr
	}
	return user, nil
}

// CreateMessage posts into a room. Sends always go through this endpoint,
// never through the stream transport.
func (c *Client) CreateMessage(ctx context.Context, msg dto.MessageCreate) error {
	if strings.TrimSpace(msg.Content) == "" {
		return newError(ErrorCodeValidation, "message content is empty", nil)
	}
	if msg.MessageType == "" {
		msg.MessageType = "text"
	}
	if aerr := c.postJSON(ctx, "/api/messages", "/api/messages", msg, nil); aerr != nil {
		return aerr
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path, pathTemplate string, out any) *Error {
	resp, aerr := c.do(ctx, http.MethodGet, path, pathTemplate, "", nil)
	if aerr != nil {
		return aerr
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return errorFromResponse(resp, "request failed")
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(ErrorCodeDecode, "malformed response body", err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path, pathTemplate string, body any, out any) *Error {
	payload, err := json.Marshal(body)
	if err != nil {
		return newError(ErrorCodeValidation, "cannot encode request body", err)
	}

	resp, aerr := c.do(ctx, http.MethodPost, path, pathTemplate, "application/json", bytes.NewReader(payload))
	if aerr != nil {
		return aerr
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return errorFromResponse(resp, "request failed")
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(ErrorCodeDecode, "malformed response body", err)
	}
	return nil
}

// do issues one request with a fresh request id for log correlation and the
// bearer header when a session is present.
func (c *Client) do(ctx context.Context, method, path, pathTemplate, contentType string, body io.Reader) (*http.Response, *Error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, newError(ErrorCodeValidation, "cannot build request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.session != nil && c.session.Present() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token())
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logRequest(start, method, pathTemplate, 0, requestID, err)
		observeRequest(method, pathTemplate, 0, time.Since(start).Seconds())
		return nil, newError(ErrorCodeNetwork, "cannot reach the server", err)
	}

	logRequest(start, method, pathTemplate, resp.StatusCode, requestID, nil)
	observeRequest(method, pathTemplate, resp.StatusCode, time.Since(start).Seconds())
	return resp, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}

func errorFromResponse(resp *http.Response, fallback string) *Error {
	message := fallback

	var body dto.APIError
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		message = body.Detail
	}

	return newError(codeForStatus(resp.StatusCode), message, nil)
}
