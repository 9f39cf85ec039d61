package services

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"ai-tutorial/internal/apperrors"
	"ai-tutorial/internal/llm"
	"ai-tutorial/internal/prompt"
)

// youtubePrompt is the inline template used by the basic templating demo.
// The external-template demo loads the same prompt from resources/prompts.
const youtubePrompt = `List 10 of the most popular YouTubers in {genre} along with their current subscriber counts.
If you don't know the answer, just say "I don't know".
`

// PromptService demonstrates the prompt engineering techniques: inline
// template substitution, external template files, and context injection
// (prompt stuffing).
type PromptService struct {
	chat         llm.ChatClient
	templatesDir string
	contextDoc   string
	logger       *log.Logger
}

// NewPromptService wires the service. templatesDir holds the .st template
// files; contextDoc is the document stuffed into prompts on request.
func NewPromptService(chat llm.ChatClient, templatesDir, contextDoc string, logger *log.Logger) *PromptService {
	return &PromptService{
		chat:         chat,
		templatesDir: templatesDir,
		contextDoc:   contextDoc,
		logger:       logger,
	}
}

// YouTubeList renders the inline template with the genre and asks the model.
func (s *PromptService) YouTubeList(ctx context.Context, genre string) (string, error) {
	rendered, err := prompt.New(youtubePrompt).Set("genre", genre).Render()
	if err != nil {
		return "", apperrors.NewAIServiceError("failed to render prompt template", err)
	}
	response, err := s.chat.Generate(ctx, []llm.Message{llm.UserMessage(rendered)})
	if err != nil {
		return "", apperrors.NewAIServiceError("failed to generate YouTube list", err)
	}
	return response, nil
}

// YouTubeListExternal is the same demo with the template loaded from an
// external file, so prompt content can change without a rebuild.
func (s *PromptService) YouTubeListExternal(ctx context.Context, genre string) (string, error) {
	template, err := prompt.Load(filepath.Join(s.templatesDir, "youtube.st"))
	if err != nil {
		return "", apperrors.NewAIServiceError("failed to load prompt template", err)
	}
	rendered, err := template.Set("genre", genre).Render()
	if err != nil {
		return "", apperrors.NewAIServiceError("failed to render prompt template", err)
	}
	response, err := s.chat.Generate(ctx, []llm.Message{llm.UserMessage(rendered)})
	if err != nil {
		return "", apperrors.NewAIServiceError("failed to generate YouTube extended list", err)
	}
	return response, nil
}

// StuffThePrompt answers the question with or without the bundled context
// document injected into the {context} placeholder. With stuffing the model
// is grounded in the document; without it, it falls back on training data.
func (s *PromptService) StuffThePrompt(ctx context.Context, question string, stuffIt bool) (string, error) {
	template, err := prompt.Load(filepath.Join(s.templatesDir, "olympic-sports.st"))
	if err != nil {
		return "", apperrors.NewAIServiceError("failed to load prompt template", err)
	}

	contextText := ""
	if stuffIt {
		data, err := os.ReadFile(s.contextDoc)
		if err != nil {
			return "", apperrors.NewAIServiceError("failed to load context document", err)
		}
		contextText = string(data)
	}

	rendered, err := template.With(map[string]string{
		"question": question,
		"context":  contextText,
	}).Render()
	if err != nil {
		return "", apperrors.NewAIServiceError("failed to render prompt template", err)
	}

	s.logger.Printf("context injection request, stuffit=%t", stuffIt)
	response, err := s.chat.Generate(ctx, []llm.Message{llm.UserMessage(rendered)})
	if err != nil {
		return "", apperrors.NewAIServiceError("failed to generate context injection response", err)
	}
	return response, nil
}
