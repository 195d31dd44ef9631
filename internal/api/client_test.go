package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/junhoi254/investment-academy/internal/dto"
	"github.com/junhoi254/investment-academy/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	return New(srv.URL, store), store
}

func TestLoginStoresToken(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/token" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("username") != "010-0000-0000" || r.PostForm.Get("password") != "correct" {
			t.Errorf("unexpected credentials: %v", r.PostForm)
		}
		json.NewEncoder(w).Encode(dto.TokenResponse{
			AccessToken: "tok-abc",
			TokenType:   "bearer",
			User:        &dto.User{ID: 1, Name: "일타훈장님", Role: dto.RoleAdmin},
		})
	}))

	tokens, err := client.Login(context.Background(), "010-0000-0000", "correct")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tokens.AccessToken != "tok-abc" {
		t.Fatalf("access token = %q", tokens.AccessToken)
	}
	if store.Token() != "tok-abc" {
		t.Fatalf("token not persisted: %q", store.Token())
	}
}

func TestLoginFailureSurfacesDetail(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(dto.APIError{Detail: "wrong phone number or password"})
	}))

	_, err := client.Login(context.Background(), "010-0000-0000", "nope")
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.Code != ErrorCodeUnauthorized {
		t.Fatalf("code = %q", apiErr.Code)
	}
	if apiErr.Message != "wrong phone number or password" {
		t.Fatalf("message = %q", apiErr.Message)
	}
	if store.Present() {
		t.Fatal("failed login must leave no token")
	}
}

func TestFreeRoomsFiltersAndQueries(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rooms" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("type") != "free" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]dto.Room{
			{ID: 1, Name: "무료 공지방", IsFree: true},
			{ID: 2, Name: "주식 리딩방", IsFree: false},
			{ID: 3, Name: "무료 시그널", IsFree: true},
		})
	}))

	rooms, err := client.FreeRooms(context.Background())
	if err != nil {
		t.Fatalf("FreeRooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("got %d rooms, want 2", len(rooms))
	}
	for _, room := range rooms {
		if !room.IsFree {
			t.Fatalf("paid room %d leaked into the free listing", room.ID)
		}
	}
}

func TestAuthenticatedRequestHeaders(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-xyz" {
			t.Errorf("authorization = %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing request id")
		}
		json.NewEncoder(w).Encode([]dto.Room{})
	}))

	if err := store.SetToken("tok-xyz"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if _, err := client.Rooms(context.Background()); err != nil {
		t.Fatalf("Rooms: %v", err)
	}
}

func TestCreateMessage(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/messages" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var msg dto.MessageCreate
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if msg.RoomID != 3 || msg.Content != "buy the dip" || msg.MessageType != "text" {
			t.Errorf("unexpected body: %+v", msg)
		}
		w.WriteHeader(http.StatusOK)
	}))

	if err := store.SetToken("tok"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	err := client.CreateMessage(context.Background(), dto.MessageCreate{RoomID: 3, Content: "buy the dip"})
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
}

func TestCreateMessageForbidden(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(dto.APIError{Detail: "only admins and staff can post"})
	}))

	err := client.CreateMessage(context.Background(), dto.MessageCreate{RoomID: 1, Content: "hi"})
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Code != ErrorCodeForbidden {
		t.Fatalf("expected a forbidden error, got %v", err)
	}
	if apiErr.Message != "only admins and staff can post" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestCreateMessageEmptyContentSkipsRequest(t *testing.T) {
	var hits int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))

	err := client.CreateMessage(context.Background(), dto.MessageCreate{RoomID: 1, Content: "   "})
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Code != ErrorCodeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatal("no request should have been issued")
	}
}

func TestMalformedResponseBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))

	_, err := client.Me(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Code != ErrorCodeDecode {
		t.Fatalf("expected a decode error, got %v", err)
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	client := New(srv.URL, store)
	srv.Close()

	_, err := client.Rooms(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Code != ErrorCodeNetwork {
		t.Fatalf("expected a network error, got %v", err)
	}
}

func TestRoomNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(dto.APIError{Detail: "room not found"})
	}))

	_, err := client.Room(context.Background(), 99)
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Code != ErrorCodeNotFound {
		t.Fatalf("expected a not_found error, got %v", err)
	}
}
