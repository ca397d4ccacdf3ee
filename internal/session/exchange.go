// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"

	"github.com/jeranaias/allie-tui/internal/transport"
)

// Exchange is one accepted message awaiting its reply.
type Exchange struct {
	ID      string
	Message string

	sender Sender
}

// Run performs the remote call. It blocks until the sender returns and
// never touches the session, so it may run on any goroutine.
func (e *Exchange) Run(ctx context.Context) Outcome {
	reply, err := e.sender.Send(ctx, e.Message)
	return Outcome{ExchangeID: e.ID, Reply: reply, Err: err}
}

// Outcome is the result of an exchange, passed back to Resolve.
type Outcome struct {
	ExchangeID string
	Reply      *transport.Reply
	Err        error
}

// failure returns the error to record, treating a missing reply as malformed.
func (o Outcome) failure() error {
	if o.Err != nil {
		return o.Err
	}
	if o.Reply == nil {
		return transport.ErrMalformedResponse
	}
	return nil
}
