package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minesweep/internal/config"
	"minesweep/internal/game"
	"minesweep/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	h := NewGameHandler(
		log, store.New(), config.NewWebSocket(),
		rand.New(rand.NewPCG(13, 17)),
	)

	router := http.NewServeMux()
	router.HandleFunc("POST /game", h.NewGame)
	router.HandleFunc("GET /game/{id}", h.Fetch)
	router.HandleFunc("POST /game/{id}/reveal", h.Reveal)
	router.HandleFunc("POST /game/{id}/flag", h.Flag)
	router.HandleFunc("POST /game/{id}/reset", h.Reset)
	router.HandleFunc("DELETE /game/{id}", h.Delete)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doRequest(t *testing.T, method, url string) (*http.Response, GameSessionDTO) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var dto GameSessionDTO
	if res.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&dto))
	}
	return res, dto
}

func TestNewGame(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	res, dto := doRequest(t, http.MethodPost, server.URL+"/game?difficulty=beginner")
	require.Equal(t, http.StatusOK, res.StatusCode)

	assert.Equal(t, "playing", dto.State)
	assert.Equal(t, 9, dto.Rows)
	assert.Equal(t, 9, dto.Cols)
	assert.Equal(t, 10, dto.MineCount)
	assert.Equal(t, 10, dto.MinesRemaining)
	assert.Equal(t, 0, dto.Elapsed)
	assert.Len(t, dto.Grid, 81)
	for _, v := range dto.Grid {
		assert.Equal(t, game.Hidden, v)
	}
}

func TestNewGameCustom(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	res, dto := doRequest(t, http.MethodPost, server.URL+"/game?rows=5&cols=7&mines=6")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 5, dto.Rows)
	assert.Equal(t, 7, dto.Cols)
	assert.Equal(t, 6, dto.MineCount)
}

func TestNewGameRejectsBadConfig(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	for _, query := range []string{
		"difficulty=nightmare",
		"rows=3&cols=3&mines=9",
		"rows=0&cols=3&mines=1",
	} {
		res, _ := doRequest(t, http.MethodPost, server.URL+"/game?"+query)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "query %q", query)
	}
}

func TestRevealAndFlag(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	res, created := doRequest(t, http.MethodPost, server.URL+"/game?difficulty=beginner")
	require.Equal(t, http.StatusOK, res.StatusCode)
	base := fmt.Sprintf("%s/game/%s", server.URL, created.SessionId)

	res, dto := doRequest(t, http.MethodPost, base+"/reveal?row=0&col=0")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "playing", dto.State)
	assert.NotEqual(t, game.Mine, dto.Grid[0], "first reveal hit a mine")
	assert.NotEqual(t, game.Hidden, dto.Grid[0])

	res, dto = doRequest(t, http.MethodPost, base+"/flag?row=8&col=8")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, game.Flag, dto.Grid[80])
	assert.Equal(t, 9, dto.MinesRemaining)

	res, dto = doRequest(t, http.MethodGet, base)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, game.Flag, dto.Grid[80])
}

func TestRevealRejectsOutOfRange(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	_, created := doRequest(t, http.MethodPost, server.URL+"/game?difficulty=beginner")
	base := fmt.Sprintf("%s/game/%s", server.URL, created.SessionId)

	for _, query := range []string{
		"row=9&col=0",
		"row=0&col=-1",
		"row=0",
	} {
		res, _ := doRequest(t, http.MethodPost, base+"/reveal?"+query)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "query %q", query)
	}
}

func TestResetChangesDifficulty(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	_, created := doRequest(t, http.MethodPost, server.URL+"/game?difficulty=beginner")
	base := fmt.Sprintf("%s/game/%s", server.URL, created.SessionId)

	res, dto := doRequest(t, http.MethodPost, base+"/reset?difficulty=expert")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 16, dto.Rows)
	assert.Equal(t, 30, dto.Cols)
	assert.Equal(t, 99, dto.MineCount)
	assert.Equal(t, "playing", dto.State)
}

func TestDeleteSession(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	_, created := doRequest(t, http.MethodPost, server.URL+"/game?difficulty=beginner")
	base := fmt.Sprintf("%s/game/%s", server.URL, created.SessionId)

	res, _ := doRequest(t, http.MethodDelete, base)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res, _ = doRequest(t, http.MethodGet, base)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestUnknownSession(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	res, _ := doRequest(t, http.MethodGet, server.URL+"/game/12345")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
