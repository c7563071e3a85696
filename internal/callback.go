package internal

import (
	"bufio"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	pkgerrs "github.com/jamesprial/go-reddit-oauth/pkg/errors"
)

// callbackOrigin is the origin the request-target of the callback is resolved against.
const callbackOrigin = "http://localhost"

// callbackIOTimeout bounds reading the request line and writing the reply
// once a browser has connected.
const callbackIOTimeout = 30 * time.Second

// callback holds the values Reddit appends to the redirect URL.
type callback struct {
	code  string
	state string
}

// captureCallback accepts exactly one connection from ln, extracts the code
// and state query parameters from its request line, and replies with body.
// The connection is closed before returning.
func captureCallback(ln net.Listener, body string) (*callback, error) {
	conn, err := ln.Accept()
	if err != nil {
		return nil, &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrListener, Message: "accept failed", Err: err}
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(callbackIOTimeout))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return nil, &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrMalformedCallback, Message: "failed to read request line", Err: err}
	}

	cb, err := parseCallbackLine(line)
	if err != nil {
		return nil, err
	}

	response := fmt.Sprintf("HTTP/1.1 200 OK\r\ncontent-length: %d\r\n\r\n%s", len(body), body)
	if _, err := conn.Write([]byte(response)); err != nil {
		return nil, &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrResponseWrite, Err: err}
	}

	return cb, nil
}

// parseCallbackLine parses a request line such as
// "GET /?state=abc&code=xyz HTTP/1.1".
func parseCallbackLine(line string) (*callback, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrMalformedCallback, Message: fmt.Sprintf("invalid request line %q", strings.TrimSpace(line))}
	}

	u, err := url.Parse(callbackOrigin + fields[1])
	if err != nil {
		return nil, &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrMalformedCallback, Message: "invalid request target", Err: err}
	}

	query := u.Query()
	if !query.Has("code") {
		// Reddit redirects with error=access_denied when the user declines.
		if reason := query.Get("error"); reason != "" {
			return nil, &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrMissingParameter, Message: fmt.Sprintf("failed to get code, provider returned error %q", reason)}
		}
		return nil, &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrMissingParameter, Message: "failed to get code"}
	}
	if !query.Has("state") {
		return nil, &pkgerrs.AuthFlowError{Kind: pkgerrs.ErrMissingParameter, Message: "failed to get state"}
	}

	return &callback{code: query.Get("code"), state: query.Get("state")}, nil
}
