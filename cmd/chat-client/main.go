package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/junhoi254/investment-academy/internal/api"
	"github.com/junhoi254/investment-academy/internal/dto"
	"github.com/junhoi254/investment-academy/internal/env"
	"github.com/junhoi254/investment-academy/internal/session"
	"github.com/junhoi254/investment-academy/internal/view"
)

func main() {
	log.SetOutput(os.Stderr)

	apiURL := env.GetOrDefault(env.APIBaseURL, env.DefaultAPIBaseURL)
	store := session.NewStore(env.GetOrDefault(env.TokenFile, defaultTokenPath()))
	if err := store.Load(); err != nil {
		log.Printf("session: %v", err)
	}

	if addr := env.Get(env.MetricsAddr); addr != "" {
		go func() {
			log.Printf("metrics listening on %s", addr)
			if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	a := &app{
		deps: view.Deps{
			API:     api.New(apiURL, store),
			Session: store,
			WSBase:  env.ResolveWSBaseURL(),
			Out:     os.Stdout,
		},
		in: bufio.NewScanner(os.Stdin),
	}
	a.run(context.Background())
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".investment-academy-token"
	}
	return filepath.Join(home, ".investment-academy", "token")
}

type app struct {
	deps view.Deps
	in   *bufio.Scanner
}

func (a *app) run(ctx context.Context) {
	for {
		rooms := view.NewHome(a.deps).Render(ctx)
		fmt.Fprintln(a.deps.Out, "Commands: <number> open room · login · signup · rooms · logout · quit")

		line, ok := a.prompt("> ")
		if !ok {
			return
		}

		switch {
		case line == "quit":
			return
		case line == "login":
			a.login(ctx)
		case line == "signup":
			a.signup(ctx)
		case line == "logout":
			a.logout()
		case line == "rooms":
			if !view.RequireSession(a.deps.Session, a.deps.Out) {
				a.login(ctx)
				continue
			}
			a.roomList(ctx)
		default:
			if room, ok := pickRoom(rooms, line); ok {
				a.chat(ctx, room.ID)
			} else if line != "" {
				fmt.Fprintln(a.deps.Out, "Unknown command.")
			}
		}
	}
}

func (a *app) roomList(ctx context.Context) {
	for {
		rooms := view.NewRoomList(a.deps).Render(ctx)
		fmt.Fprintln(a.deps.Out, "Commands: <number> open room · back · logout · quit")

		line, ok := a.prompt("> ")
		if !ok {
			return
		}

		switch line {
		case "back":
			return
		case "quit":
			os.Exit(0)
		case "logout":
			a.logout()
			return
		default:
			if room, ok := pickRoom(rooms, line); ok {
				a.chat(ctx, room.ID)
			} else if line != "" {
				fmt.Fprintln(a.deps.Out, "Unknown command.")
			}
		}
	}
}

// chat owns the only standing connection. Leaving the loop always closes
// the view first, so the next room never sees the old room's events.
func (a *app) chat(ctx context.Context, roomID int) {
	c := view.NewChat(a.deps, roomID)
	c.Open(ctx)
	defer c.Close()

	fmt.Fprintln(a.deps.Out, "Type to send · /back to leave · /quit to exit")
	for {
		line, ok := a.prompt("")
		if !ok || line == "/back" {
			return
		}
		if line == "/quit" {
			c.Close()
			os.Exit(0)
		}

		if err := c.Send(ctx, line); errors.Is(err, view.ErrLoginRequired) {
			c.Close()
			a.login(ctx)
			return
		}
	}
}

func (a *app) login(ctx context.Context) {
	phone, ok := a.prompt("Phone (010-0000-0000): ")
	if !ok {
		return
	}
	password, ok := a.prompt("Password: ")
	if !ok {
		return
	}

	if err := view.NewLogin(a.deps).Run(ctx, phone, password); err == nil {
		a.roomList(ctx)
	}
}

func (a *app) signup(ctx context.Context) {
	phone, ok := a.prompt("Phone: ")
	if !ok {
		return
	}
	name, ok := a.prompt("Name: ")
	if !ok {
		return
	}
	password, ok := a.prompt("Password: ")
	if !ok {
		return
	}
	view.NewLogin(a.deps).Signup(ctx, phone, password, name)
}

func (a *app) logout() {
	if err := a.deps.Session.Clear(); err != nil {
		log.Printf("session: clear failed: %v", err)
	}
	fmt.Fprintln(a.deps.Out, "Logged out.")
}

func (a *app) prompt(label string) (string, bool) {
	if label != "" {
		fmt.Fprint(a.deps.Out, label)
	}
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func pickRoom(rooms []dto.Room, line string) (dto.Room, bool) {
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(rooms) {
		return dto.Room{}, false
	}
	return rooms[n-1], true
}
