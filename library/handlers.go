package library

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"germination_tracker/garden"
)

type LibraryHandler struct {
	service  *Service
	validate *validator.Validate
	log      zerolog.Logger
}

func NewLibraryHandler(s *Service, log zerolog.Logger) *LibraryHandler {
	return &LibraryHandler{
		service:  s,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log.With().Str("component", "http").Logger(),
	}
}

func RegisterLibraryRoutes(router fiber.Router, handler *LibraryHandler) {
	router.Get("/library", handler.GetLibrary)
	library := router.Group("/library")
	library.Put("/sort", handler.SetSortOption)
	library.Post("/plants", handler.AddPlant)
	library.Get("/sections/:section/rows/:row", handler.GetRow)
	library.Patch("/sections/:section/rows/:row", handler.RenamePlant)
	library.Delete("/sections/:section/rows/:row", handler.RemovePlant)
	library.Post("/sections/:section/rows/:row/copy", handler.CopyPlant)

	plants := router.Group("/plants")
	plants.Get("/:uuid", handler.GetPlant)
	plants.Patch("/:uuid", handler.UpdatePlant)
	plants.Post("/:uuid/interactions", handler.Interact)
}

type SortOptionReq struct {
	SortOption string `json:"sortOption" validate:"required,oneof=byPlantName byDateDescending byDateAscending byActive"`
}

type PlantNameReq struct {
	Name string `json:"name" validate:"max=200"`
}

type UpdatePlantReq struct {
	SowDate   *time.Time `json:"sowDate"`
	SeedsSown *int       `json:"seedsSown" validate:"omitempty,min=0"`
}

type InteractionReq struct {
	Event string `json:"event" validate:"required,oneof=dateSownTapped seedsSownTapped germinationCounterTapped deathCounterTapped germinationStepper deathStepper"`
	Value int    `json:"value"`
}

// GetLibrary returns every section with its rows
func (h *LibraryHandler) GetLibrary(c fiber.Ctx) error {
	return c.JSON(h.service.Library())
}

func (h *LibraryHandler) SetSortOption(c fiber.Ctx) error {
	req := new(SortOptionReq)
	if err := h.bind(c, req); err != nil {
		return err
	}
	update, err := h.service.SetSortOption(c.Context(), SortOption(req.SortOption))
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(fiber.Map{
		"library": h.service.Library(),
		"update":  update,
	})
}

// AddPlant sows a new plant and reports where it landed
func (h *LibraryHandler) AddPlant(c fiber.Ctx) error {
	req := new(PlantNameReq)
	if err := h.bind(c, req); err != nil {
		return err
	}
	m, err := h.service.AddPlant(c.Context(), req.Name)
	if err != nil {
		return h.fail(err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (h *LibraryHandler) GetRow(c fiber.Ctx) error {
	path, err := indexPathParams(c)
	if err != nil {
		return err
	}
	detail, err := h.service.Plant(path)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(detail)
}

func (h *LibraryHandler) CopyPlant(c fiber.Ctx) error {
	path, err := indexPathParams(c)
	if err != nil {
		return err
	}
	m, err := h.service.CopyPlant(c.Context(), path)
	if err != nil {
		return h.fail(err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (h *LibraryHandler) RenamePlant(c fiber.Ctx) error {
	path, err := indexPathParams(c)
	if err != nil {
		return err
	}
	req := new(PlantNameReq)
	if err := h.bind(c, req); err != nil {
		return err
	}
	m, err := h.service.RenamePlant(c.Context(), path, req.Name)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(m)
}

func (h *LibraryHandler) RemovePlant(c fiber.Ctx) error {
	path, err := indexPathParams(c)
	if err != nil {
		return err
	}
	update, err := h.service.RemovePlant(c.Context(), path)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(fiber.Map{"update": update})
}

func (h *LibraryHandler) GetPlant(c fiber.Ctx) error {
	id, err := uuidParam(c)
	if err != nil {
		return err
	}
	detail, err := h.service.PlantByID(id)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(detail)
}

func (h *LibraryHandler) UpdatePlant(c fiber.Ctx) error {
	id, err := uuidParam(c)
	if err != nil {
		return err
	}
	req := new(UpdatePlantReq)
	if err := h.bind(c, req); err != nil {
		return err
	}
	m, err := h.service.UpdatePlant(c.Context(), id, PlantChanges{SowDate: req.SowDate, SeedsSown: req.SeedsSown})
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(m)
}

// Interact forwards a label tap or stepper change on the plant screen
func (h *LibraryHandler) Interact(c fiber.Ctx) error {
	id, err := uuidParam(c)
	if err != nil {
		return err
	}
	req := new(InteractionReq)
	if err := h.bind(c, req); err != nil {
		return err
	}
	result, err := h.service.Interact(c.Context(), id, garden.InteractionEvent(req.Event), req.Value)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(result)
}

func (h *LibraryHandler) bind(c fiber.Ctx, req any) error {
	if err := c.Bind().JSON(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func (h *LibraryHandler) fail(err error) error {
	switch {
	case errors.Is(err, ErrOutOfRange):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrNotFound), errors.Is(err, garden.ErrPlantNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalid):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Msg("library request failed")
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func indexPathParams(c fiber.Ctx) (IndexPath, error) {
	section, err := strconv.Atoi(c.Params("section"))
	if err != nil {
		return IndexPath{}, fiber.NewError(fiber.StatusBadRequest, "invalid section index")
	}
	row, err := strconv.Atoi(c.Params("row"))
	if err != nil {
		return IndexPath{}, fiber.NewError(fiber.StatusBadRequest, "invalid row index")
	}
	return IndexPath{Section: section, Row: row}, nil
}

func uuidParam(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("uuid"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid uuid")
	}
	return id, nil
}

// ErrorHandler renders every error as {"error": message}.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
