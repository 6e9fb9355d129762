package app

import (
	"github.com/vancomm/classic-mines/internal/handlers"
)

func (a *App) loadRoutes() {
	handlers.NewGameHandler(a.logger, a.store, a.cookies, a.ws).Routes(a.router)
}
