package view

import (
	"context"
	"fmt"
	"log"

	"github.com/junhoi254/investment-academy/internal/dto"
)

// Home lists the free signal rooms; no session needed. A failed fetch keeps
// whatever was rendered last instead of blanking the screen.
type Home struct {
	deps  Deps
	rooms []dto.Room
}

func NewHome(deps Deps) *Home {
	return &Home{deps: deps}
}

func (h *Home) Render(ctx context.Context) []dto.Room {
	rooms, err := h.deps.API.FreeRooms(ctx)
	if err != nil {
		log.Printf("view: free room listing failed: %v", err)
	} else {
		h.rooms = rooms
	}

	out := h.deps.Out
	fmt.Fprintln(out, "== Investment Academy ==")
	fmt.Fprintln(out, "Free signal rooms — anyone can read along:")
	if len(h.rooms) == 0 {
		fmt.Fprintln(out, "  No free rooms are open right now.")
	}
	for i, room := range h.rooms {
		renderRoomCard(out, i+1, room)
	}

	if h.deps.Session.Present() {
		fmt.Fprintln(out, "Premium rooms: type 'rooms'.")
	} else {
		fmt.Fprintln(out, "Premium rooms need an account: type 'login'.")
	}

	return h.rooms
}
