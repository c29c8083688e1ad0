// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

// =============================================================================
// LANGUAGE CODES
// =============================================================================

// Languages the chat endpoint accepts. Purely a request parameter: the
// service translates server-side, the client never does.
const (
	LangEnglish = "en"
	LangSpanish = "es"
	LangFrench  = "fr"
)

// SupportedLanguages lists the accepted language codes in selector order.
var SupportedLanguages = []string{LangEnglish, LangSpanish, LangFrench}

// IsSupportedLanguage reports whether code is one of the accepted languages.
func IsSupportedLanguage(code string) bool {
	for _, l := range SupportedLanguages {
		if l == code {
			return true
		}
	}
	return false
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// credentialsRequest is the body for /login and /register.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// chatRequest is the body for /chat.
type chatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// loginResponse is the body returned by /login on success.
type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// registerResponse is the body returned by /register.
type registerResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// serviceError is the generic error body the backend returns on failures.
type serviceError struct {
	Error string `json:"error"`
	Msg   string `json:"msg,omitempty"`
}

// ChatReply is the decoded /chat response.
//
// Sentiment is the raw label as sent by the service (lowercased by the
// backend); Confidence is in [0,1]. HasSentiment is false when the service
// omitted the annotation.
type ChatReply struct {
	Response     string
	Sentiment    string
	Confidence   float64
	HasSentiment bool
}

// chatResponse is the wire form of /chat.
type chatResponse struct {
	Response   string   `json:"response"`
	Sentiment  *string  `json:"sentiment"`
	Confidence *float64 `json:"confidence"`
}

// moodEntry is one element of the /mood_trend response.
type moodEntry struct {
	Timestamp  string  `json:"timestamp"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}
