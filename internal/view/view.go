package view

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/junhoi254/investment-academy/internal/api"
	"github.com/junhoi254/investment-academy/internal/dto"
	"github.com/junhoi254/investment-academy/internal/session"
)

// ErrLoginRequired is returned by gated actions so the caller can route to
// the login view instead of showing an error.
var ErrLoginRequired = errors.New("login required")

// Deps are handed to every view explicitly; no view reaches into ambient
// state. Session is the only mutable thing shared across views, and only
// the login/logout actions write it.
type Deps struct {
	API     *api.Client
	Session *session.Store
	WSBase  string
	Out     io.Writer
}

// RequireSession is the route guard for protected views. An expired-looking
// token is only logged: the stored token is still sent and the server stays
// the authority on rejecting it.
func RequireSession(store *session.Store, out io.Writer) bool {
	if !store.Present() {
		fmt.Fprintln(out, "Login required.")
		return false
	}
	if claims, ok := store.Claims(); ok && claims.Expired(time.Now()) {
		log.Printf("view: stored token looks expired, requests may fail until next login")
	}
	return true
}

func renderRoomCard(w io.Writer, index int, room dto.Room) {
	desc := room.Description
	if desc == "" {
		desc = "Live trading signals"
	}

	label := "free"
	if !room.IsFree {
		label = "premium · " + priceLabel(room.Price)
	}

	fmt.Fprintf(w, "  [%d] %s (%s) — %s · %d online\n", index, room.Name, label, desc, room.OnlineCount)
}

func priceLabel(price *int) string {
	if price == nil {
		return "subscription"
	}
	return fmt.Sprintf("₩%d", *price)
}

// clock formats a server ISO timestamp as HH:MM for the log. The server
// emits naive isoformat strings, sometimes with fractional seconds.
func clock(created string) string {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, created); err == nil {
			return t.Format("15:04")
		}
	}
	return created
}
