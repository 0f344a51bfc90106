package model

type RetrievedHotel struct {
	Hotel      *Hotel  `json:"hotel"`
	Confidence float64 `json:"confidence"`
}

type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

type AssistantMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GenerateResponse struct {
	Message AssistantMessage `json:"message"`
}
