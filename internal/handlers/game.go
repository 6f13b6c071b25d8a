package handlers

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"minesweep/internal/config"
	"minesweep/internal/game"
	"minesweep/internal/store"
)

// GameHandler is the HTTP face of the rules engine. It never reaches into a
// board; every mutation goes through session operations.
type GameHandler struct {
	log      *logrus.Logger
	sessions *store.Store
	ws       *config.WebSocket

	// rnd seeds per-session sources and is guarded because handlers run
	// concurrently while rand.Rand is not safe to share
	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewGameHandler(
	log *logrus.Logger,
	sessions *store.Store,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		log:      log,
		sessions: sessions,
		ws:       ws,
		rnd:      rnd,
	}
}

func (g *GameHandler) newSessionRand() *rand.Rand {
	g.rndMu.Lock()
	defer g.rndMu.Unlock()
	return rand.New(rand.NewPCG(g.rnd.Uint64(), g.rnd.Uint64()))
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	diff, err := dto.ToDifficulty()
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	session := game.NewSession(diff, g.newSessionRand())
	id := g.sessions.Add(session)

	g.log.WithFields(logrus.Fields{
		"session": id,
		"label":   diff.Label,
	}).Info("session created")

	sendJSONOrLog(w, g.log, NewGameSessionDTO(id, session.Snapshot()))
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, session, ok := g.lookup(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.log, NewGameSessionDTO(id, session.Snapshot()))
}

func (g *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	id, session, ok := g.lookup(w, r)
	if !ok {
		return
	}

	pos, ok := g.cellPos(w, r, session)
	if !ok {
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(id, session.Reveal(pos.Row, pos.Col)))
}

func (g *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	id, session, ok := g.lookup(w, r)
	if !ok {
		return
	}

	pos, ok := g.cellPos(w, r, session)
	if !ok {
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(id, session.ToggleFlag(pos.Row, pos.Col)))
}

func (g *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, session, ok := g.lookup(w, r)
	if !ok {
		return
	}

	diff := session.Difficulty()
	if label := r.URL.Query().Get("difficulty"); label != "" {
		var err error
		if diff, err = game.ParseDifficulty(label); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, g.log, wrapError(err))
			return
		}
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(id, session.Reset(diff)))
}

func (g *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := g.lookup(w, r)
	if !ok {
		return
	}
	if err := g.sessions.Delete(id); err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (g *GameHandler) lookup(
	w http.ResponseWriter, r *http.Request,
) (int64, *game.Session, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return 0, nil, false
	}
	session, err := g.sessions.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return 0, nil, false
	}
	return id, session, true
}

func (g *GameHandler) cellPos(
	w http.ResponseWriter, r *http.Request, session *game.Session,
) (CellPosDTO, bool) {
	pos, err := ParseCellPosDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return CellPosDTO{}, false
	}
	if !session.InBounds(pos.Row, pos.Col) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(fmt.Errorf("invalid cell position")))
		return CellPosDTO{}, false
	}
	return pos, true
}
