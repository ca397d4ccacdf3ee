// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transport provides the HTTP client for the assistant chat endpoint.
//
// One call is one request: the client posts {"message": "..."} and decodes
// {"response": "...", "sources": [...]}. There are no retries and no
// streaming. Failures are reported as *Error with one of three kinds:
//
//   - KindUnreachable: no response (connection refused, timeout, cancel)
//   - KindServerError: the endpoint answered with a non-2xx status
//   - KindMalformedResponse: the body is not the expected JSON shape
//
// # Usage
//
//	client := transport.NewClient(&transport.Config{URL: "https://example.com/chat"})
//	reply, err := client.Send(ctx, "What is the Allora Network?")
//	if transport.IsServerError(err) {
//	    ...
//	}
package transport
