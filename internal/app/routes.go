package app

import (
	"hash/maphash"
	"math/rand/v2"

	"minesweep/internal/config"
	"minesweep/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.sessions, config.NewWebSocket(), createRand(),
	)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/reveal", game.Reveal)
	a.router.HandleFunc("POST /game/{id}/flag", game.Flag)
	a.router.HandleFunc("POST /game/{id}/reset", game.Reset)
	a.router.HandleFunc("DELETE /game/{id}", game.Delete)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)
}
