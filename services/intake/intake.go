package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	enquiryTypes "somadhan-booking/types/enquiry"
)

// Parser turns a pasted free-text message (typically a forwarded WhatsApp
// text) into a draft enquiry using the Gemini API. The result still goes
// through the normal draft validation before anything is persisted.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

const prompt = `Analyze this customer message for a home-services business and extract a booking request. Return ONLY valid JSON.

Extract these fields. If a field is missing or unclear, use an empty string.

Required JSON format:
{
"service": string,         // One of: Mason, Carpenter, Marble, Grill, Electrician, Plumber, Paint, Modular Kitchen, False Ceiling, Any Event, Land, Aya, AC Repair
"category": string,        // One of: Repair, New, Buy, Sell
"land_condition": string,  // Old or New, only for Land
"phone": string,           // Contact phone number, digits only
"name": string,            // Customer name
"address": string,         // Location, combined into one readable string
"preferred_date": string,  // YYYY-MM-DD if mentioned
"preferred_time": string,  // Like "9 AM" or "3 PM" if mentioned
"notes": string            // Anything else relevant
}

Message:
`

// Parse extracts a draft from the message text.
func (p *Parser) Parse(ctx context.Context, text string) (enquiryTypes.EnquiryDraft, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return enquiryTypes.EnquiryDraft{}, fmt.Errorf("GEMINI_API_KEY not found in environment variables")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return enquiryTypes.EnquiryDraft{}, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	content := &genai.Content{
		Parts: []*genai.Part{
			{Text: prompt + text},
		},
	}

	result, err := client.Models.GenerateContent(
		ctx,
		"gemini-2.5-flash-lite",
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.1)),
		},
	)
	if err != nil {
		return enquiryTypes.EnquiryDraft{}, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return enquiryTypes.EnquiryDraft{}, fmt.Errorf("no content generated")
	}
	responseText := result.Candidates[0].Content.Parts[0].Text
	if responseText == "" {
		return enquiryTypes.EnquiryDraft{}, fmt.Errorf("empty response")
	}

	var draft enquiryTypes.EnquiryDraft
	jsonText := extractJSONFromMarkdown(responseText)
	if err := json.Unmarshal([]byte(jsonText), &draft); err != nil {
		return enquiryTypes.EnquiryDraft{}, fmt.Errorf("failed to parse JSON response: %w, response: %s", err, jsonText)
	}
	return draft, nil
}

// extractJSONFromMarkdown strips markdown code fences when the model wraps
// its JSON in one.
func extractJSONFromMarkdown(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") && strings.HasSuffix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 1 {
			return strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	return text
}
