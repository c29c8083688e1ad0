// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the haven backend service.
//
// The backend exposes four operations over JSON:
//
//	POST /login       {username, password}  -> {access_token}
//	POST /register    {username, password}  -> status only
//	POST /chat        {message, language}   -> {response, sentiment, confidence}  (bearer)
//	GET  /mood_trend                        -> [{timestamp, sentiment, confidence}] (bearer)
//
// Authenticated calls attach "Authorization: Bearer <token>". Errors are
// categorized through ClientError so callers can distinguish connection
// problems, rejected credentials, and malformed responses.
package api
