package controller

import (
	"bytes"
	"errors"
	"strings"

	"github.com/benbeisheim/chess-backend/internal/engine"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/render"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	FEN string `json:"fen"`
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrNotQueued):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrGameExists),
		errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrAlreadyQueued):
		return fiber.StatusConflict
	case errors.Is(err, engine.ErrInvalidFEN),
		errors.Is(err, engine.ErrInvalidSquare):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(req.FEN)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(gameState)
}

// GetMoves answers the board's highlight query: where can the piece on
// ?from= go right now.
func (gc *GameController) GetMoves(c *fiber.Ctx) error {
	from, err := engine.ParseSquare(c.Query("from"))
	if err != nil {
		return errorResponse(c, err)
	}

	dests, err := gc.gameService.LegalMovesFrom(c.Params("gameId"), from)
	if err != nil {
		return errorResponse(c, err)
	}
	if dests == nil {
		dests = []engine.Square{}
	}
	return c.JSON(fiber.Map{
		"from":         from,
		"destinations": dests,
	})
}

// GetBoardSVG renders the current position. ?flip=true draws it from Black's
// side and ?highlight=e2,e4 shades squares.
func (gc *GameController) GetBoardSVG(c *fiber.Ctx) error {
	pos, err := gc.gameService.GetPosition(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}

	opts := render.Options{Flip: c.QueryBool("flip")}
	if hl := c.Query("highlight"); hl != "" {
		for _, name := range strings.Split(hl, ",") {
			sq, err := engine.ParseSquare(strings.TrimSpace(name))
			if err != nil {
				return errorResponse(c, err)
			}
			opts.Highlight = append(opts.Highlight, sq)
		}
	}

	var buf bytes.Buffer
	render.BoardSVG(&buf, pos, opts)
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(buf.Bytes())
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"status": model.MatchStatusQueued,
	})
}

// MatchmakingStatus lets a player who queued without a matchmaking socket
// find the game they were paired into.
func (gc *GameController) MatchmakingStatus(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	status, err := gc.gameService.MatchmakingStatus(playerID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(status)
}
