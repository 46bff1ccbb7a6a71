package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// Timeout bounds each http request. A request that produces no
	// response within this window fails and is reported; it is not
	// retried.
	Timeout = 15 * time.Second

	// UserAgent identifies imgfetch to remote servers. It is sent with
	// every request unless the caller supplies its own.
	UserAgent = "imgfetch/1.0 (+https://github.com/mtreece/imgfetch)"
)

// Response holds the parts of an http response that callers need after the
// body has been fully read.
type Response struct {
	Header http.Header
	Body   []byte
}

// GetBody performs an http GET with url=u using the supplied client and
// header. It returns the response body stream and header. Non-2xx statuses
// are reported as errors.
func GetBody(ctx context.Context, hc *http.Client, u string, header http.Header) (io.ReadCloser, http.Header, error) {
	log.Debugf("get: %s", u)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", UserAgent)
	}

	rsp, err := hc.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %v", err)
	}

	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		rsp.Body.Close()
		return nil, nil, fmt.Errorf("error status: %s", rsp.Status)
	}

	return rsp.Body, rsp.Header, nil
}

// Get calls GetBody() with the standard timeout applied, then reads the full
// response body and returns the result.
func Get(ctx context.Context, hc *http.Client, u string, header http.Header) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	body, rspHeader, err := GetBody(ctx, hc, u, header)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	b, err := io.ReadAll(NewContextReader(ctx, body))
	if err != nil {
		return nil, err
	}

	return &Response{
		Header: rspHeader,
		Body:   b,
	}, nil
}
