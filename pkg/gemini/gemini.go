package gemini

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	contextPkg "HealthifyChat/pkg/context"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

const tagPrompt = `List every food or dish mentioned in the message below.
Answer with a single line of comma-separated lower-case names and nothing else.
Answer NONE when there is no food.

Message: %s`

type IGemini interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close()
}

type geminiClient struct {
	apiKey    string
	modelName string
	client    *genai.Client
}

func NewGeminiClient() (IGemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")

	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		apiKey:    apiKey,
		modelName: modelName,
		client:    client,
	}, nil
}

func (g *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(0)

	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Gemini API")
	}

	text, ok := res.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", errors.New("unexpected response format from Gemini API")
	}

	return string(text), nil
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

// NounTagger asks the model for the food names in a message. It satisfies
// nlp.NounTagger.
type NounTagger struct {
	client  IGemini
	timeout time.Duration
	log     *logrus.Logger
}

func NewNounTagger(client IGemini, timeout time.Duration, log *logrus.Logger) *NounTagger {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &NounTagger{client: client, timeout: timeout, log: log}
}

// Tag bounds the call by the tagger timeout and by ctx.
func (t *NounTagger) Tag(ctx context.Context, text string) ([]string, error) {
	if t.client == nil {
		return nil, errors.New("gemini client is not configured")
	}

	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	answer, err := t.client.Generate(callCtx, strings.Replace(tagPrompt, "%s", text, 1))
	if err != nil {
		if t.log != nil {
			t.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"error":      err.Error(),
			}).Warn("Gemini noun tagging failed, falling back to keyword split")
		}
		return nil, err
	}

	return parseNouns(answer), nil
}

func parseNouns(answer string) []string {
	answer = strings.TrimSpace(answer)
	if answer == "" || strings.EqualFold(answer, "none") {
		return []string{}
	}

	nouns := []string{}
	for _, part := range strings.Split(answer, ",") {
		part = strings.Trim(strings.ToLower(strings.TrimSpace(part)), ".\"'`*")
		if part != "" && part != "none" {
			nouns = append(nouns, part)
		}
	}
	return nouns
}
