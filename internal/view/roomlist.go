package view

import (
	"context"
	"fmt"
	"log"

	"github.com/junhoi254/investment-academy/internal/dto"
	"github.com/junhoi254/investment-academy/internal/policy"
)

// RoomList is the protected directory: every room, split into a free and a
// premium section. Fetch failures keep the previous listing.
type RoomList struct {
	deps  Deps
	rooms []dto.Room
	user  *dto.User
}

func NewRoomList(deps Deps) *RoomList {
	return &RoomList{deps: deps}
}

// Render returns the rooms in the order they were numbered on screen, so
// the caller can map a selection back to a room.
func (r *RoomList) Render(ctx context.Context) []dto.Room {
	if user, err := r.deps.API.Me(ctx); err != nil {
		log.Printf("view: profile fetch failed: %v", err)
	} else {
		r.user = &user
	}
	if rooms, err := r.deps.API.Rooms(ctx); err != nil {
		log.Printf("view: room listing failed: %v", err)
	} else {
		r.rooms = rooms
	}

	out := r.deps.Out
	fmt.Fprintln(out, "== Investment Academy — My rooms ==")
	if r.user != nil {
		name := r.user.Name
		if name == "" {
			name = r.user.Phone
		}
		fmt.Fprintf(out, "Signed in as %s%s\n", name, roleSuffix(r.user.Role))
		if r.user.Role == dto.RoleAdmin {
			fmt.Fprintln(out, "Admin panel is available in the web console.")
		}
	}

	free, paid := SplitRooms(r.rooms)
	ordered := make([]dto.Room, 0, len(r.rooms))

	if len(free) > 0 {
		fmt.Fprintln(out, "Free signal rooms:")
		for _, room := range free {
			ordered = append(ordered, room)
			renderRoomCard(out, len(ordered), room)
		}
	}

	fmt.Fprintln(out, "Premium signal rooms:")
	if len(paid) == 0 {
		fmt.Fprintln(out, "  No premium rooms available.")
	}
	for _, room := range paid {
		ordered = append(ordered, room)
		renderRoomCard(out, len(ordered), room)
	}

	return ordered
}

// SplitRooms sends every room to exactly one section, keyed on is_free.
func SplitRooms(rooms []dto.Room) (free, paid []dto.Room) {
	for _, room := range rooms {
		if room.IsFree {
			free = append(free, room)
		} else {
			paid = append(paid, room)
		}
	}
	return free, paid
}

func roleSuffix(role string) string {
	if role == dto.RoleAdmin {
		return " (admin)"
	}
	if policy.Privileged(role) {
		return " (staff)"
	}
	return ""
}
