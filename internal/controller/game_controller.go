package controller

import (
	"errors"

	"github.com/benbeisheim/chess3d-backend/internal/dao"
	"github.com/benbeisheim/chess3d-backend/internal/model"
	"github.com/benbeisheim/chess3d-backend/internal/service"
	"github.com/benbeisheim/chess3d-backend/internal/turn"
	"github.com/benbeisheim/chess3d-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// errorStatus maps domain errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound), errors.Is(err, dao.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotYourPieces):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, turn.ErrGameFinished),
		errors.Is(err, turn.ErrNotYourTurn):
		return fiber.StatusConflict
	case errors.Is(err, turn.ErrIllegalMove),
		errors.Is(err, turn.ErrSelfCheck),
		errors.Is(err, turn.ErrNoPiece),
		errors.Is(err, service.ErrBadRequest):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Errorw("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func playerID(c *fiber.Ctx) string {
	id, _ := c.Locals("playerID").(string)
	return id
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	color, err := gc.gameService.JoinGame(c.Params("gameId"), playerID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(gameState)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move ws.MovePayload
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body must be {\"from\":\"e2\",\"to\":\"e4\"}",
		})
	}

	ply, state, err := gc.gameService.HandleMove(c.Params("gameId"), playerID(c), move)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"ply":   ply,
		"state": state,
	})
}

func (gc *GameController) Select(c *fiber.Ctx) error {
	var sel ws.SelectPayload
	if err := c.BodyParser(&sel); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body must be {\"square\":\"e2\"}",
		})
	}

	result, state, err := gc.gameService.HandleSelect(c.Params("gameId"), playerID(c), sel)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"selection": result,
		"state":     state,
	})
}

func (gc *GameController) GetFEN(c *fiber.Ctx) error {
	fen, err := gc.gameService.GetFEN(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"fen": fen})
}

func (gc *GameController) GetDiagram(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	if err := gc.gameService.WriteDiagram(c.Params("gameId"), c); err != nil {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return respondError(c, err)
	}
	return nil
}

func (gc *GameController) GetArchivedGame(c *fiber.Ctx) error {
	game, err := gc.gameService.GetArchivedGame(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(game)
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
