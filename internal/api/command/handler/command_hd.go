package commandHandler

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"strconv"
	"time"

	"CafeInventory/internal/api/command"
	contextPkg "CafeInventory/pkg/context"
	"CafeInventory/pkg/handlerUtil"
	jwtPkg "CafeInventory/pkg/jwt"
	"CafeInventory/pkg/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

const (
	rateLimitWindow       = time.Minute
	defaultCommandsPerMin = 10
)

func (h *CommandHandler) ProcessTextCommand(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing text command request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	if err := h.checkRateLimit(c, userData.ID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "rate_limit")
	}

	var req command.ProcessTextCommandRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	req.UserID = userData.ID

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	response, err := h.commandService.ProcessTextCommand(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_text_command")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *CommandHandler) ProcessVoiceCommand(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 60*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing voice command request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	if err := h.checkRateLimit(c, userData.ID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "rate_limit")
	}

	audioFile, err := ctx.FormFile("audio")
	if err != nil {
		return errHandler.Handle(ctx, requestID, command.ErrAudioFileRequired, ctx.Path(), "read_audio_file")
	}

	if err := h.utils.ValidateAudioFile(audioFile); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	audioData, err := readMultipartFile(audioFile)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_audio_file")
	}

	response, err := h.commandService.ProcessVoiceCommand(c, userData.ID, audioData, audioFile.Filename)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_voice_command")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *CommandHandler) Transcribe(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 60*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing transcription request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	if err := h.checkRateLimit(c, userData.ID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "rate_limit")
	}

	audioFile, err := ctx.FormFile("audio")
	if err != nil {
		return errHandler.Handle(ctx, requestID, command.ErrAudioFileRequired, ctx.Path(), "read_audio_file")
	}

	if err := h.utils.ValidateAudioFile(audioFile); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	audioData, err := readMultipartFile(audioFile)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_audio_file")
	}

	response, err := h.commandService.Transcribe(c, audioData)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "transcribe")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *CommandHandler) GetHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))

	response, err := h.commandService.GetHistory(c, userData.ID, page, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_command_history")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

// checkRateLimit caps how often one user can hit the LLM-backed endpoints.
// If the limiter itself is down the request is allowed through.
func (h *CommandHandler) checkRateLimit(ctx context.Context, userID string) error {
	limit := defaultCommandsPerMin
	if v, err := strconv.Atoi(os.Getenv("COMMANDS_PER_MINUTE")); err == nil && v > 0 {
		limit = v
	}

	count, err := h.redis.IncrementCounter(ctx, fmt.Sprintf("command_rate:%s", userID), rateLimitWindow)
	if err != nil {
		h.log.WithFields(log.Fields{
			"error": err.Error(),
		}).Warn("Rate limiter unavailable, allowing request")
		return nil
	}

	if count > int64(limit) {
		return command.ErrRateLimitExceeded
	}

	return nil
}

func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
