package app

import (
	"context"

	"github.com/taetu445/RescueBites/internal/chat"
)

// platePilotPrompt is the fixed system prompt prepended to every assistant
// conversation before it is forwarded to the completion provider.
const platePilotPrompt = `
You are PLATEPILOT AI, the official assistant of the PLATEPILOT project.
PLATEPILOT AI connects restaurants with NGOs to reduce food waste and help communities.
Your tasks:
1. If asked to "upload today's serving", fetch /data/todaysservings.json and POST to /api/food.
2. Provide quick summaries of today's serving, food waste, and earnings.
3. Help with NGO-related tasks and PLATEPILOT system features.
If unrelated questions are asked, politely respond with:
"I'm PLATEPILOT AI and can only assist with PLATEPILOT-related tasks."
Always confirm before performing any action that modifies or uploads data.
Be friendly, professional, and focus only on PLATEPILOT-related automation.
`

// ProcessChat forwards the conversation to the completion provider with the
// fixed system prompt prepended and returns the assistant reply.
func (app *App) ProcessChat(ctx context.Context, messages []chat.Message) (string, error) {
	if len(messages) == 0 {
		return "", ErrInvalidPayload
	}

	conversation := make([]chat.Message, 0, len(messages)+1)
	conversation = append(conversation, chat.Message{Role: "system", Content: platePilotPrompt})
	conversation = append(conversation, messages...)

	return app.chat.Complete(ctx, conversation)
}
