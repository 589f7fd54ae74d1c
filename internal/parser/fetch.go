package parser

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxBodyBytes caps how much of a product page is read.
const maxBodyBytes = 10 << 20

// StaticHeaders is the browser-like header set sent with every request besides User-Agent.
func StaticHeaders() map[string]string {
	return map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.5",
		"Accept-Encoding":           "gzip, deflate",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
		"Cache-Control":             "max-age=0",
	}
}

func (p *Parser) getHTMLResponse(ctx context.Context, rawURL string) ([]byte, error) {
	reqURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product URL %s: %w", rawURL, err)
	}

	if err = p.sleep(ctx, p.politeDelay()); err != nil {
		return nil, fmt.Errorf("politeness delay interrupted: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request %s: %w", reqURL.String(), err)
	}

	req.Header.Set("User-Agent", p.userAgent())
	for key, value := range StaticHeaders() {
		req.Header.Set(key, value)
	}

	p.log.DebugContext(ctx, "Send request", "method", req.Method, "URL", req.URL, "header", req.Header)

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: [%d] %s", ErrStatus, res.StatusCode, res.Status)
	}

	body, err := decodeBody(res)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	p.log.InfoContext(ctx, "Successfully received http response", "status code", res.StatusCode, "bytes", len(data))

	return data, nil
}

// decodeBody undoes the content encodings advertised in StaticHeaders.
func decodeBody(res *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(res.Header.Get("Content-Encoding"))) {
	case "gzip":
		reader, err := gzip.NewReader(res.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip body: %w", err)
		}
		return reader, nil
	case "deflate":
		return newDeflateReader(res.Body)
	default:
		return io.NopCloser(res.Body), nil
	}
}

// newDeflateReader accepts both zlib-wrapped and raw deflate streams, since servers send either.
func newDeflateReader(body io.Reader) (io.ReadCloser, error) {
	buffered := bufio.NewReader(body)

	header, err := buffered.Peek(2) //nolint:mnd // zlib header size
	if err == nil && header[0]&0x0f == 8 && (uint16(header[0])<<8|uint16(header[1]))%31 == 0 {
		reader, zerr := zlib.NewReader(buffered)
		if zerr != nil {
			return nil, fmt.Errorf("failed to open zlib body: %w", zerr)
		}
		return reader, nil
	}

	return flate.NewReader(buffered), nil
}
