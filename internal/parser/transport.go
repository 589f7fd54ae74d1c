package parser

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	utls "github.com/refraction-networking/utls"
)

const dialTimeout = 10 * time.Second

// newChromeTransport returns a transport presenting a Chrome TLS ClientHello.
// ALPN is locked to http/1.1 because http.Transport cannot speak h2 over a utls connection.
func newChromeTransport() *http.Transport {
	return &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		DialTLSContext:    dialChromeTLS,
		ForceAttemptHTTP2: false,
	}
}

func dialChromeTLS(ctx context.Context, network, addr string) (net.Conn, error) {
	spec, err := chromeHTTP1Spec()
	if err != nil {
		return nil, err
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := utls.UClient(conn, &utls.Config{ServerName: host}, utls.HelloCustom)
	if err = tlsConn.ApplyPreset(spec); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply tls spec: %w", err)
	}
	if err = tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake with %s: %w", host, err)
	}

	return tlsConn, nil
}

// chromeHTTP1Spec builds a fresh spec per connection; presets are mutated when applied.
func chromeHTTP1Spec() (*utls.ClientHelloSpec, error) {
	spec, err := utls.UTLSIdToSpec(utls.HelloChrome_Auto)
	if err != nil {
		return nil, fmt.Errorf("failed to build chrome hello spec: %w", err)
	}

	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*utls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}

	return &spec, nil
}
