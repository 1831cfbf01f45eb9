package oracle

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when no model id is configured.
const DefaultModel = "gemini-1.5-flash"

// Gemini opens chat sessions on Google's Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini connects with apiKey. The client is shared by every chat it starts.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, &Error{Op: "connect", Err: ErrMissingKey}
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &Error{Op: "connect", Err: err}
	}
	return &Gemini{client: client, model: model}, nil
}

// StartChat opens a conversation with a single candidate, maximum
// temperature, and every safety filter turned off.
func (g *Gemini) StartChat(ctx context.Context) (Chat, error) {
	m := g.client.GenerativeModel(g.model)
	m.SetCandidateCount(1)
	m.SetTemperature(1)
	m.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
	}
	return &geminiChat{cs: m.StartChat()}, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error { return g.client.Close() }

type geminiChat struct {
	cs *genai.ChatSession
}

func (c *geminiChat) Send(ctx context.Context, text string) (string, error) {
	resp, err := c.cs.SendMessage(ctx, genai.Text(text))
	if err != nil {
		return "", err
	}
	return replyText(resp)
}

// replyText concatenates the text parts of the first candidate.
func replyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyReply
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}
