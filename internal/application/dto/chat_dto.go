package dto

// ChatRequest body for POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}
