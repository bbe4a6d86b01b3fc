package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.ServerPort != "3001" {
		t.Fatalf("port=%q, want 3001", cfg.ServerPort)
	}
	if cfg.AllowedOrigin != "*" {
		t.Fatalf("origin=%q, want *", cfg.AllowedOrigin)
	}
	if cfg.SendBuffer != 256 {
		t.Fatalf("send buffer=%d, want 256", cfg.SendBuffer)
	}
	if cfg.MaxMessageBytes != 8<<20 {
		t.Fatalf("max message=%d, want %d", cfg.MaxMessageBytes, 8<<20)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("WS_SEND_BUFFER", "32")
	t.Setenv("WS_MAX_MESSAGE_BYTES", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:9000" {
		t.Fatalf("addr=%q, want 0.0.0.0:9000", cfg.Addr())
	}
	if cfg.SendBuffer != 32 {
		t.Fatalf("send buffer=%d, want 32", cfg.SendBuffer)
	}
	// Unparseable numbers fall back to the default.
	if cfg.MaxMessageBytes != 8<<20 {
		t.Fatalf("max message=%d, want default", cfg.MaxMessageBytes)
	}
}
