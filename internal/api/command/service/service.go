package commandService

import (
	"context"

	"CafeInventory/internal/api/command"
	commandRepository "CafeInventory/internal/api/command/repository"
	inventoryRepository "CafeInventory/internal/api/inventory/repository"
	"CafeInventory/pkg/audio"
	s3Pkg "CafeInventory/pkg/s3"
	"CafeInventory/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Completer produces one chat completion. Both the OpenAI and Gemini clients
// satisfy it; which one is wired in is decided at startup.
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, userMessage string) (string, error)
}

type ICommandService interface {
	ProcessTextCommand(ctx context.Context, req command.ProcessTextCommandRequest) (*command.ProcessCommandResponse, error)
	ProcessVoiceCommand(ctx context.Context, userID string, audioData []byte, fileName string) (*command.ProcessCommandResponse, error)
	Transcribe(ctx context.Context, audioData []byte) (*command.TranscribeResponse, error)
	GetHistory(ctx context.Context, userID string, page, limit int) (*command.HistoryResponse, error)
}

type commandService struct {
	log           *logrus.Logger
	commandRepo   commandRepository.Repository
	inventoryRepo inventoryRepository.Repository
	transcriber   audio.ITranscriber
	completer     Completer
	s3            s3Pkg.ItfS3
	utils         utils.IUtils
}

func NewCommandService(
	log *logrus.Logger,
	commandRepo commandRepository.Repository,
	inventoryRepo inventoryRepository.Repository,
	transcriber audio.ITranscriber,
	completer Completer,
	s3 s3Pkg.ItfS3,
	utils utils.IUtils,
) ICommandService {
	return &commandService{
		log:           log,
		commandRepo:   commandRepo,
		inventoryRepo: inventoryRepo,
		transcriber:   transcriber,
		completer:     completer,
		s3:            s3,
		utils:         utils,
	}
}
