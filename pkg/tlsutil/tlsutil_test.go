package tlsutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func TestSelfSignedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	certFile := filepath.Join(dir, "cert.pem")
	keyFile := filepath.Join(dir, "key.pem")

	if err := GenerateSelfSigned(certFile, keyFile, "fakehub", "10.0.0.5"); err != nil {
		t.Fatalf("GenerateSelfSigned failed: %v", err)
	}

	serverCfg, err := ServerConfig(certFile, keyFile)
	if err != nil {
		t.Fatalf("ServerConfig failed: %v", err)
	}
	server := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	}))
	server.TLS = serverCfg
	server.StartTLS()
	defer server.Close()

	rt, err := Transport(certFile)
	if err != nil {
		t.Fatalf("Transport failed: %v", err)
	}
	resp, err := (&http.Client{Transport: rt}).Get(server.URL)
	if err != nil {
		t.Fatalf("Request with trusted CA failed: %v", err)
	}
	resp.Body.Close()

	if _, err := (&http.Client{}).Get(server.URL); err == nil {
		t.Error("Expected default client to reject the self-signed certificate")
	}
}

func TestClientConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ClientConfig(filepath.Join(dir, "missing.pem")); err == nil {
		t.Error("Expected error for a missing CA file")
	}

	if cfg, err := ClientConfig(""); err != nil || cfg.RootCAs != nil {
		t.Errorf("Expected system roots for empty CA file, got %v, %v", cfg, err)
	}

	if rt, err := Transport(""); err != nil || rt != http.DefaultTransport {
		t.Errorf("Expected default transport, got %v, %v", rt, err)
	}
}
