package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/classic-mines/internal/middleware"
	"github.com/vancomm/classic-mines/internal/session"
)

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.SessionClaims(r)
	if !ok {
		SendErrorOrLog(w, g.logger, http.StatusNotFound, ErrNoGame)
		return
	}
	id := claims.SessionID

	release, err := g.store.Attach(id)
	if err != nil {
		g.cookies.Clear(w)
		SendErrorOrLog(w, g.logger, http.StatusNotFound, ErrNoGame)
		return
	}
	defer release()

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	g.logger.Debug("established WS connection", slog.String("session", id))

	err = g.wsRunGameLoop(conn, id)
	switch {
	case err == nil:
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
	case errors.Is(err, session.ErrNotFound):
		// replaced by a new game from another request
		g.logger.Debug("ws session ended", slog.String("session", id))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ErrNoGame.Error()))
	default:
		g.logger.Warn("abnormal ws break", slog.Any("error", err))
	}
}

func (g GameHandler) wsRunGameLoop(conn *websocket.Conn, id string) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		message := strings.TrimSpace(string(buf))
		g.logger.Debug("\t> " + message)

		var reply any
		err = g.store.Do(id, func(game *session.Game) error {
			results, err := game.Execute(message)
			if err != nil {
				return err
			}
			reply = NewGameDTO(game.Board.Snapshot(), game.Timer, results...)
			return nil
		})
		switch {
		case errors.Is(err, session.ErrNotFound):
			return err
		case err != nil:
			reply = wrapError(err)
		}

		if err := conn.WriteJSON(reply); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}
