// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transport

import (
	"encoding/json"
	"strings"
)

// ChatRequest is the request body sent to the endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// chatResponse mirrors the endpoint body. Fields are raw so that a missing
// or mistyped field can be told apart from an empty one.
type chatResponse struct {
	Response *json.RawMessage `json:"response"`
	Sources  *json.RawMessage `json:"sources"`
}

// Reply is a successful answer from the endpoint.
type Reply struct {
	Text    string   `json:"response"`
	Sources []string `json:"sources,omitempty"`
}

// decodeReply validates and converts the endpoint body.
func decodeReply(body []byte) (*Reply, error) {
	var raw chatResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, malformed("response is not a JSON object", err)
	}
	if raw.Response == nil {
		return nil, malformed("response field missing", nil)
	}

	reply := &Reply{}
	if err := json.Unmarshal(*raw.Response, &reply.Text); err != nil || string(*raw.Response) == "null" {
		return nil, malformed("response field is not a string", err)
	}

	if raw.Sources != nil && string(*raw.Sources) != "null" {
		var sources []string
		if err := json.Unmarshal(*raw.Sources, &sources); err != nil {
			return nil, malformed("sources field is not a list of strings", err)
		}
		for _, s := range sources {
			if s = strings.TrimSpace(s); s != "" {
				reply.Sources = append(reply.Sources, s)
			}
		}
	}

	return reply, nil
}

func malformed(msg string, cause error) *Error {
	return &Error{Kind: KindMalformedResponse, Message: msg, Cause: cause}
}
