package test_helpers

import (
	"io"
	"net"
	"testing"
	"time"
)

// FreeAddr reserves a loopback port and releases it so a callback listener can
// bind it.
func FreeAddr(tb testing.TB) string {
	tb.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("reserve port: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return addr
}

// Redirect plays the browser side of the authorization redirect: it dials
// addr until the listener is up, sends "GET <target> HTTP/1.1" and returns
// the raw reply.
func Redirect(tb testing.TB, addr, target string) string {
	tb.Helper()

	var conn net.Conn
	var err error
	for deadline := time.Now().Add(5 * time.Second); time.Now().Before(deadline); time.Sleep(10 * time.Millisecond) {
		if conn, err = net.Dial("tcp", addr); err == nil {
			break
		}
	}
	if err != nil {
		tb.Fatalf("callback listener on %s never came up: %v", addr, err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))
	if _, err := io.WriteString(conn, "GET "+target+" HTTP/1.1\r\n"); err != nil {
		tb.Fatalf("write callback request: %v", err)
	}
	reply, _ := io.ReadAll(conn)
	return string(reply)
}
