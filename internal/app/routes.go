package app

import (
	"net/http"

	"github.com/vancomm/minesweeper-solver/internal/handlers"
)

func (a *App) loadRoutes() {
	solve := handlers.NewSolveHandler(a.logger, a.db, a.solver)
	live := handlers.NewLiveHandler(a.logger, a.ws, a.solver)
	analyses := handlers.NewAnalysisHandler(a.logger, a.db)
	auth := handlers.NewAuth(a.logger, a.db, a.cookies, a.jwt)

	a.router.HandleFunc("POST /solve", solve.Solve)
	a.router.HandleFunc("GET /solve/live", live.Connect)
	a.router.HandleFunc("GET /analysis/{id}", analyses.Fetch)
	a.router.HandleFunc("GET /analyses", analyses.List)

	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)
	a.router.HandleFunc("GET /me", auth.Status)

	a.router.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}
