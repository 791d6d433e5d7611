package commandHandler

import (
	commandService "CafeInventory/internal/api/command/service"
	"CafeInventory/internal/middleware"
	redisPkg "CafeInventory/pkg/redis"
	"CafeInventory/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CommandHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	commandService commandService.ICommandService
	redis          redisPkg.IRedis
	utils          utils.IUtils
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs commandService.ICommandService,
	redis redisPkg.IRedis,
	utils utils.IUtils,
) *CommandHandler {
	return &CommandHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		commandService: cs,
		redis:          redis,
		utils:          utils,
	}
}

func (h *CommandHandler) Start(srv fiber.Router) {
	commands := srv.Group("/commands")

	// Every command endpoint requires an authenticated caller; the LLM-backed
	// ones are additionally rate limited per user.
	commands.Use(h.middleware.NewTokenMiddleware)

	commands.Post("/text", h.ProcessTextCommand)
	commands.Post("/voice", h.ProcessVoiceCommand)
	commands.Post("/transcribe", h.Transcribe)
	commands.Get("/history", h.GetHistory)
}
