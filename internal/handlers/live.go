package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-solver/internal/config"
	"github.com/vancomm/minesweeper-solver/internal/solver"
)

type LiveHandler struct {
	logger *slog.Logger
	ws     *config.WebSocket
	cfg    *config.Solver
}

func NewLiveHandler(
	logger *slog.Logger,
	ws *config.WebSocket,
	cfg *config.Solver,
) *LiveHandler {
	return &LiveHandler{
		logger: logger,
		ws:     ws,
		cfg:    cfg,
	}
}

type liveRequest struct {
	Board     BoardDTO `json:"board"`
	MineCount *int     `json:"mine_count,omitempty"`
}

// Connect upgrades the request and re-solves every snapshot the client
// pushes, so a UI can stream boards as the player uncovers cells
// without paying for a request per click.
func (h LiveHandler) Connect(w http.ResponseWriter, r *http.Request) {
	conn, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	if err := h.runSolveLoop(r, conn); err != nil &&
		!websocket.IsCloseError(err,
			websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		h.logger.Debug("solve loop closed", "error", err)
	}
}

func (h LiveHandler) runSolveLoop(r *http.Request, conn *websocket.Conn) error {
	for {
		var req liveRequest
		if err := conn.ReadJSON(&req); err != nil {
			return err
		}

		board, err := req.Board.Board()
		if err != nil {
			if err := conn.WriteJSON(wrapError(err)); err != nil {
				return err
			}
			continue
		}

		result, err := solver.Solve(r.Context(), board, solver.Options{
			MineCount: req.MineCount,
			MaxNodes:  h.cfg.MaxNodes,
			Timeout:   h.cfg.Timeout,
		})
		if err != nil {
			if err := conn.WriteJSON(wrapError(err)); err != nil {
				return err
			}
			continue
		}

		if err := conn.WriteJSON(NewAnalysisDTO(result, req.MineCount)); err != nil {
			return err
		}
	}
}
