package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"minesweep/internal/game"
)

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

// applyCommand runs one mutating text command against a session:
//
//	r <row> <col>    reveal
//	f <row> <col>    toggle flag
//	n [difficulty]   reset, optionally to another preset
//
// Resulting snapshots reach the client through its subscription, not here.
func applyCommand(session *game.Session, c string) error {
	parts := strings.Split(strings.TrimSpace(c), " ")

	switch parts[0] {
	case "r", "f":
		if len(parts) != 3 {
			return fmt.Errorf("command %q takes two arguments", parts[0])
		}
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		if !session.InBounds(row, col) {
			return fmt.Errorf("invalid cell position")
		}
		if parts[0] == "r" {
			session.Reveal(row, col)
		} else {
			session.ToggleFlag(row, col)
		}
		return nil
	case "n":
		diff := session.Difficulty()
		if len(parts) == 2 {
			var err error
			if diff, err = game.ParseDifficulty(parts[1]); err != nil {
				return err
			}
		} else if len(parts) > 2 {
			return fmt.Errorf("command \"n\" takes at most one argument")
		}
		session.Reset(diff)
		return nil
	default:
		return fmt.Errorf("unknown command")
	}
}

// ConnectWS upgrades to a websocket that accepts text commands and pushes a
// session snapshot after every mutation and on every timer tick. The
// control flow is one reader loop plus one pusher goroutine; conn writes
// are serialized with a mutex because gorilla allows a single writer.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, session, ok := g.lookup(w, r)
	if !ok {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade connection")
		return
	}

	var writeMu sync.Mutex
	writeJSON := func(v any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	updates, cancel := session.Subscribe()
	defer cancel()

	go func() {
		defer conn.Close()
		for snap := range updates {
			if err := writeJSON(NewGameSessionDTO(id, snap)); err != nil {
				return
			}
		}
	}()

	if err := writeJSON(NewGameSessionDTO(id, session.Snapshot())); err != nil {
		return
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err, websocket.CloseGoingAway, websocket.CloseNormalClosure,
			) {
				g.log.WithError(err).Debug("websocket closed")
			}
			return
		}

		command := strings.TrimSpace(string(message))
		if command == "g" {
			if err := writeJSON(NewGameSessionDTO(id, session.Snapshot())); err != nil {
				return
			}
			continue
		}
		if err := applyCommand(session, command); err != nil {
			if err := writeJSON(wrapError(err)); err != nil {
				return
			}
		}
	}
}
