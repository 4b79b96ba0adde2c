package gemini

import (
	"context"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"peerprep/interview/internal/llm"
	"peerprep/interview/internal/models"
	"peerprep/interview/internal/prompts"
)

// Client represents a Gemini LLM client

type Client struct {
	client  *genai.Client
	config  *Config
	prompts *prompts.PromptManager
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	pm, err := prompts.NewPromptManager()
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to load prompt templates",
			Err:      err,
		}
	}

	return &Client{
		client:  client,
		config:  config,
		prompts: pm,
	}, nil
}

// generate runs one completion and extracts the response text.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(
		ctx,
		c.config.Model,
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeServiceDown,
			Message:  "Failed to generate content",
			Err:      err,
		}
	}

	if result == nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "No response generated",
		}
	}

	text, err := result.Text()
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to extract response text",
			Err:      err,
		}
	}
	if text == "" {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}
	return text, nil
}

// GenerateQuestions asks the model for count questions matching the setup.
func (c *Client) GenerateQuestions(ctx context.Context, setup models.InterviewSetup, count int) ([]models.Question, error) {
	prompt, err := c.prompts.BuildPrompt("questions", string(setup.InterviewType), map[string]string{
		"JobRole":         setup.EffectiveJobRole(),
		"ExperienceLevel": setup.ExperienceLevel,
		"Skills":          strings.Join(setup.Skills, ", "),
		"InterviewType":   string(setup.InterviewType),
		"Difficulty":      setup.Difficulty,
		"QuestionCount":   strconv.Itoa(count),
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to build question prompt",
			Err:      err,
		}
	}

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := parseQuestions(text, count)
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeBadResponse,
			Message:  "Failed to parse generated questions",
			Err:      err,
		}
	}
	return questions, nil
}

// EvaluateAnswer scores one answer against its question.
func (c *Client) EvaluateAnswer(ctx context.Context, question models.Question, answer models.Answer) (*models.Evaluation, error) {
	prompt, err := c.prompts.BuildPrompt("evaluation", "default", map[string]string{
		"Question": question.Text,
		"Answer":   answer.Text,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to build evaluation prompt",
			Err:      err,
		}
	}

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	evaluation, err := parseEvaluation(text)
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeBadResponse,
			Message:  "Failed to parse evaluation",
			Err:      err,
		}
	}
	return evaluation, nil
}

// GenerateFollowUp produces one follow-up question to a previous answer.
func (c *Client) GenerateFollowUp(ctx context.Context, originalQuestion string, previousAnswer string) (string, error) {
	prompt, err := c.prompts.BuildPrompt("followup", "default", map[string]string{
		"OriginalQuestion": originalQuestion,
		"PreviousAnswer":   previousAnswer,
	})
	if err != nil {
		return "", &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to build follow-up prompt",
			Err:      err,
		}
	}

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (c *Client) GetProviderName() string {
	return "gemini"
}
