package services

import (
	"context"
	"log"

	"ai-tutorial/internal/apperrors"
	"ai-tutorial/internal/converter"
	"ai-tutorial/internal/llm"
	"ai-tutorial/internal/models"
	"ai-tutorial/internal/prompt"
)

// OutputService demonstrates structured output conversion: the model is
// instructed to answer in a machine-readable shape and the raw text is
// converted into Go values.
type OutputService struct {
	chat   llm.ChatClient
	logger *log.Logger
}

func NewOutputService(chat llm.ChatClient, logger *log.Logger) *OutputService {
	return &OutputService{chat: chat, logger: logger}
}

// SongsByArtist returns the top songs of an artist as a string slice,
// using the comma-separated list conversion.
func (s *OutputService) SongsByArtist(ctx context.Context, artist string) ([]string, error) {
	conv := converter.ListConverter{}
	rendered, err := prompt.New("Please give me a list of the top 10 songs by the artist {artist}. If you don't know the answer, just say \"I don't know\".\n{format}").
		With(map[string]string{
			"artist": artist,
			"format": conv.Format(),
		}).Render()
	if err != nil {
		return nil, apperrors.NewAIServiceError("failed to render prompt template", err)
	}

	response, err := s.chat.Generate(ctx, []llm.Message{llm.UserMessage(rendered)})
	if err != nil {
		return nil, apperrors.NewAIServiceError("failed to generate song list", err)
	}
	return conv.Convert(response), nil
}

// AuthorLinks returns social network links for an author as a map, using
// the JSON map conversion.
func (s *OutputService) AuthorLinks(ctx context.Context, author string) (map[string]interface{}, error) {
	conv := converter.MapConverter{}
	rendered, err := prompt.New("Generate a list of links for the author {author}. Include the author's name as the key and any social network links as the object.\n{format}").
		With(map[string]string{
			"author": author,
			"format": conv.Format(),
		}).Render()
	if err != nil {
		return nil, apperrors.NewAIServiceError("failed to render prompt template", err)
	}

	response, err := s.chat.Generate(ctx, []llm.Message{llm.UserMessage(rendered)})
	if err != nil {
		return nil, apperrors.NewAIServiceError("failed to generate author links", err)
	}
	links, err := conv.Convert(response)
	if err != nil {
		return nil, apperrors.NewAIServiceError("failed to convert author links", err)
	}
	return links, nil
}

// AuthorBooks returns an Author struct populated from the model's JSON
// answer, using the generic bean conversion.
func (s *OutputService) AuthorBooks(ctx context.Context, author string) (models.Author, error) {
	conv := converter.NewBeanConverter[models.Author]()
	rendered, err := prompt.New("Generate the filmography of books written by the author {author}. If you don't know the answer, just say \"I don't know\".\n{format}").
		With(map[string]string{
			"author": author,
			"format": conv.Format(),
		}).Render()
	if err != nil {
		return models.Author{}, apperrors.NewAIServiceError("failed to render prompt template", err)
	}

	response, err := s.chat.Generate(ctx, []llm.Message{llm.UserMessage(rendered)})
	if err != nil {
		return models.Author{}, apperrors.NewAIServiceError("failed to generate author books", err)
	}
	result, err := conv.Convert(response)
	if err != nil {
		return models.Author{}, apperrors.NewAIServiceError("failed to convert author books", err)
	}
	return result, nil
}
