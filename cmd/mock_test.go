package cmd

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMockFlags(t *testing.T) {
	addr := mockCmd.Flags().Lookup("addr")
	if addr == nil || addr.DefValue != ":8080" {
		t.Errorf("--addr flag = %+v, want default :8080", addr)
	}
	delay := mockCmd.Flags().Lookup("delay")
	if delay == nil || delay.DefValue != "12s" {
		t.Errorf("--delay flag = %+v, want default 12s", delay)
	}
}

func TestMockRegistered(t *testing.T) {
	found, _, err := rootCmd.Find([]string{"mock-backend"})
	if err != nil || found != mockCmd {
		t.Errorf("mock-backend not registered: %v", err)
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Reserve a free port, then hand it to the server.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	srv := &http.Server{
		Addr: addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
	}
	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, &out) }()

	client := &http.Client{Timeout: time.Second}
	var resp *http.Response
	for range 50 {
		if resp, err = client.Get("http://" + addr); err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never came up: %v", err)
	}
	resp.Body.Close()
	client.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
	if !strings.Contains(out.String(), addr) {
		t.Errorf("output = %q, want the listen address", out.String())
	}
}

func TestServe_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	srv := &http.Server{Addr: ln.Addr().String()}
	if err := serve(context.Background(), srv, &bytes.Buffer{}); err == nil {
		t.Error("serve() should fail when the address is taken")
	}
}
