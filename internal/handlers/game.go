package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vancomm/classic-mines/internal/command"
	"github.com/vancomm/classic-mines/internal/config"
	"github.com/vancomm/classic-mines/internal/middleware"
	"github.com/vancomm/classic-mines/internal/mines"
	"github.com/vancomm/classic-mines/internal/session"
)

var ErrNoGame = errors.New("no game in progress")

type GameHandler struct {
	logger  *slog.Logger
	store   *session.Store
	cookies *config.Cookies
	ws      *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	store *session.Store,
	cookies *config.Cookies,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		logger:  logger,
		store:   store,
		cookies: cookies,
		ws:      ws,
	}
}

func (g GameHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("POST /game", g.NewGame)
	mux.HandleFunc("GET /game", g.Fetch)
	mux.HandleFunc("POST /game/reveal", g.positional(command.Reveal))
	mux.HandleFunc("POST /game/flag", g.positional(command.Flag))
	mux.HandleFunc("POST /game/undo", g.simple(command.Undo))
	mux.HandleFunc("POST /game/reset", g.simple(command.Reset))
	mux.HandleFunc("GET /game/connect", g.ConnectWS)
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	if claims, ok := middleware.SessionClaims(r); ok {
		g.store.Delete(claims.SessionID)
	}

	id := g.store.Create()
	if err := g.cookies.Refresh(w, id); err != nil {
		g.store.Delete(id)
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to issue session cookie", slog.Any("error", err))
		return
	}

	var dto *GameDTO
	err := g.store.Do(id, func(game *session.Game) error {
		dto = NewGameDTO(game.Board.Snapshot(), game.Timer)
		return nil
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("lost fresh game session", slog.Any("error", err))
		return
	}

	g.logger.Debug("created game session", slog.String("session", id))
	SendJSONOrLog(w, g.logger, dto)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	g.play(w, r, command.Command{Kind: command.Noop})
}

func (g GameHandler) positional(kind command.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pos, err := ParsePosition(r.URL.Query())
		if err != nil {
			SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
			return
		}
		g.play(w, r, command.Command{Kind: kind, Position: pos})
	}
}

func (g GameHandler) simple(kind command.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g.play(w, r, command.Command{Kind: kind})
	}
}

// play runs cmd against the caller's board and replies with the new state.
func (g GameHandler) play(w http.ResponseWriter, r *http.Request, cmd command.Command) {
	claims, ok := middleware.SessionClaims(r)
	if !ok {
		SendErrorOrLog(w, g.logger, http.StatusNotFound, ErrNoGame)
		return
	}

	var dto *GameDTO
	err := g.store.Do(claims.SessionID, func(game *session.Game) error {
		res, err := game.Apply(cmd)
		if err != nil {
			return err
		}
		dto = NewGameDTO(game.Board.Snapshot(), game.Timer, res)
		return nil
	})

	switch {
	case errors.Is(err, session.ErrNotFound):
		g.cookies.Clear(w)
		SendErrorOrLog(w, g.logger, http.StatusNotFound, ErrNoGame)
	case errors.Is(err, mines.ErrInvalidPosition):
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to apply command",
			slog.String("command", cmd.String()), slog.Any("error", err))
	default:
		SendJSONOrLog(w, g.logger, dto)
	}
}
