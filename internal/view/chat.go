package view

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/junhoi254/investment-academy/internal/dto"
	"github.com/junhoi254/investment-academy/internal/policy"
	"github.com/junhoi254/investment-academy/internal/stream"
)

// Chat is the one view with a standing connection. Open fetches the room
// metadata, the profile and the history snapshot once, then starts a stream
// manager that appends everything arriving after the snapshot. The socket's
// lifetime is exactly the view's: Close must run before another chat view
// starts, so events can never leak between rooms.
type Chat struct {
	deps   Deps
	roomID int

	mu        sync.Mutex
	room      *dto.Room
	user      *dto.User
	messages  []dto.Message
	connected bool
	manager   *stream.Manager
}

func NewChat(deps Deps, roomID int) *Chat {
	return &Chat{deps: deps, roomID: roomID}
}

func (c *Chat) Open(ctx context.Context) {
	if room, err := c.deps.API.Room(ctx, c.roomID); err != nil {
		log.Printf("view: room %d metadata fetch failed: %v", c.roomID, err)
	} else {
		c.room = &room
	}
	if c.deps.Session.Present() {
		if user, err := c.deps.API.Me(ctx); err != nil {
			log.Printf("view: profile fetch failed: %v", err)
		} else {
			c.user = &user
		}
	}
	if history, err := c.deps.API.Messages(ctx, c.roomID); err != nil {
		log.Printf("view: history fetch for room %d failed: %v", c.roomID, err)
	} else {
		c.messages = history
	}

	c.renderHeader()
	for _, msg := range c.messages {
		fmt.Fprintln(c.deps.Out, c.formatLine(msg))
	}
	fmt.Fprintf(c.deps.Out, "(%s)\n", c.hint())

	c.manager = stream.New(stream.Config{
		BaseURL:   c.deps.WSBase,
		RoomID:    c.roomID,
		Token:     c.deps.Session.Token(),
		OnMessage: c.appendMessage,
		OnSystem:  c.showNotice,
		OnStatus:  c.updateStatus,
	})
	c.manager.Start()
}

// Close tears down the stream; after it returns no more log lines appear.
func (c *Chat) Close() {
	if c.manager != nil {
		c.manager.Close()
		c.manager = nil
	}
}

// Send posts through the HTTP endpoint, never the socket. The gate runs
// first: when it says no, no request is issued at all.
func (c *Chat) Send(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	hasSession := c.deps.Session.Present()
	if !policy.CanSend(hasSession, c.roomFree(), c.role()) {
		if !hasSession {
			fmt.Fprintln(c.deps.Out, "Log in to send messages.")
			return ErrLoginRequired
		}
		fmt.Fprintln(c.deps.Out, "Only admins and staff can post in this room.")
		return nil
	}

	err := c.deps.API.CreateMessage(ctx, dto.MessageCreate{
		RoomID:      c.roomID,
		Content:     content,
		MessageType: "text",
	})
	if err != nil {
		fmt.Fprintf(c.deps.Out, "Send failed: %v\n", err)
		return err
	}
	return nil
}

func (c *Chat) MessageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *Chat) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Chat) appendMessage(msg dto.Message) {
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
	fmt.Fprintln(c.deps.Out, c.formatLine(msg))
}

func (c *Chat) showNotice(notice, timestamp string) {
	if notice == "" {
		return
	}
	fmt.Fprintf(c.deps.Out, "-- %s\n", notice)
}

func (c *Chat) updateStatus(s stream.State) {
	c.mu.Lock()
	c.connected = s == stream.StateConnected
	c.mu.Unlock()

	switch s {
	case stream.StateConnected:
		fmt.Fprintln(c.deps.Out, "● connected")
	case stream.StateDisconnected:
		fmt.Fprintln(c.deps.Out, "○ connection lost, retrying...")
	}
}

func (c *Chat) renderHeader() {
	name := "Chat room"
	if c.room != nil {
		name = c.room.Name
		if c.room.IsFree {
			name += " [free]"
		}
	}
	fmt.Fprintf(c.deps.Out, "== %s ==\n", name)
	if len(c.messages) == 0 {
		fmt.Fprintln(c.deps.Out, "No messages yet.")
		if c.roomFree() {
			fmt.Fprintln(c.deps.Out, "Trading signals from the admins will show up here.")
		}
	}
}

func (c *Chat) formatLine(msg dto.Message) string {
	author := msg.UserName
	if author == "" {
		author = "anonymous"
	}
	if msg.UserRole == dto.RoleAdmin {
		author += " [admin]"
	}

	marker := "  "
	if policy.IsMine(c.currentUserID(), msg.UserID) {
		marker = "» "
	}
	return fmt.Sprintf("%s[%s] %s: %s", marker, clock(msg.CreatedAt), author, msg.Content)
}

func (c *Chat) hint() string {
	return policy.SendHint(c.deps.Session.Present(), c.roomFree(), c.role())
}

func (c *Chat) roomFree() bool {
	return c.room != nil && c.room.IsFree
}

func (c *Chat) role() string {
	if c.user == nil {
		return ""
	}
	return c.user.Role
}

func (c *Chat) currentUserID() int {
	if c.user == nil {
		return 0
	}
	return c.user.ID
}
