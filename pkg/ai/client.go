// Package ai answers farmers' questions for the voice assistant.
package ai

import "context"

type Client interface {
	// Reply answers question in language. It always returns an answer;
	// clients that call out fall back to the canned reply.
	Reply(ctx context.Context, question, language string) string
}

const (
	cannedKannada = "ಇಂದು ಟೊಮೇಟೊ ಬೆಲೆ ಪ್ರತಿ ಕ್ವಿಂಟಲ್ ₹2,800. ಬೆಲೆ 12% ಹೆಚ್ಚಾಗಿದೆ. ಮಾರಾಟ ಮಾಡಲು ಒಳ್ಳೆಯ ಸಮಯ!"
	cannedEnglish = "Today tomato price is ₹2,800 per quintal. Price has increased by 12%. Good time to sell!"
)

// CannedReply is the fixed tomato price answer: Kannada for kannada,
// English for everything else.
func CannedReply(language string) string {
	if language == "kannada" {
		return cannedKannada
	}
	return cannedEnglish
}
