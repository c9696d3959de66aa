// Package debbugs is a client for the SOAP interface of the Debian bug
// tracking system (https://wiki.debian.org/DebbugsSoapInterface).
//
//	client := debbugs.Default()
//	ids, err := client.NewestBugs(ctx, 10)
//
// All methods block the calling goroutine for one HTTP round trip and
// honor ctx for cancellation; for many in-flight requests, call them
// from separate goroutines. The wire codec itself lives in pkg/soap
// and is stateless, so a single Client is safe for concurrent use.
package debbugs

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/debbugs/go-debbugs/pkg/soap"
)

// DefaultURL is the SOAP endpoint of the Debian bug tracking system.
const DefaultURL = "https://bugs.debian.org/cgi-bin/soap.cgi"

// Re-exported codec types, so ordinary use needs only this package.
type (
	BugID       = soap.BugID
	BugReport   = soap.BugReport
	BugLog      = soap.BugLog
	SearchQuery = soap.SearchQuery
	Fault       = soap.Fault
)

// Client talks to a Debbugs SOAP endpoint. Construct one with New or
// Default; the zero value has no endpoint.
type Client struct {
	// HTTPClient performs the POST requests. Replace it to control
	// timeouts, proxies or TLS settings.
	HTTPClient *http.Client
	// URL is the SOAP endpoint.
	URL string
}

// New returns a client for a custom Debbugs endpoint, e.g. a GNU or
// self-hosted instance.
func New(url string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		URL:        url,
	}
}

// Default returns a client for the Debian bug tracking system at
// bugs.debian.org.
func Default() *Client {
	return New(DefaultURL)
}

// send posts one SOAP request and returns the raw response body.
// Non-success statuses are mapped to *FaultError when the body carries
// a soap:Fault and *TransportError otherwise.
func (c *Client) send(ctx context.Context, doc *etree.Document, action string) (string, error) {
	body, err := doc.WriteToString()
	if err != nil {
		return "", errors.Wrap(err, "serializing soap request")
	}
	log.Debugf("SOAP request: %s", body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, strings.NewReader(body))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", action)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Status: resp.StatusCode, Err: err}
	}
	text := string(data)
	log.Debugf("SOAP status: %s", resp.Status)
	log.Debugf("SOAP response: %s", text)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if fault, err := soap.ParseFault(text); err == nil {
			return "", &FaultError{Fault: fault}
		}
		return "", &TransportError{Status: resp.StatusCode, Err: errors.Errorf("server returned %s", resp.Status)}
	}
	return text, nil
}

// NewestBugs returns the numbers of the most recently filed bugs,
// newest first.
func (c *Client) NewestBugs(ctx context.Context, amount int) ([]BugID, error) {
	req, err := soap.NewestBugsRequest(amount)
	if err != nil {
		return nil, err
	}
	body, err := c.send(ctx, req, "newest_bugs")
	if err != nil {
		return nil, err
	}
	return soap.ParseNewestBugsResponse(body)
}

// GetStatus fetches the status records for the given bugs, in the
// order the server returns them.
func (c *Client) GetStatus(ctx context.Context, ids []BugID) ([]BugReport, error) {
	req, err := soap.GetStatusRequest(ids)
	if err != nil {
		return nil, err
	}
	body, err := c.send(ctx, req, "get_status")
	if err != nil {
		return nil, err
	}
	return soap.ParseGetStatusResponse(body)
}

// GetBugs searches for bugs matching the query and returns their
// numbers. A nil or zero query matches every bug.
func (c *Client) GetBugs(ctx context.Context, query *SearchQuery) ([]BugID, error) {
	body, err := c.send(ctx, soap.GetBugsRequest(query), "get_bugs")
	if err != nil {
		return nil, err
	}
	return soap.ParseGetBugsResponse(body)
}

// GetBugLog fetches a bug's correspondence thread in chronological
// order. Message headers are left as raw text.
func (c *Client) GetBugLog(ctx context.Context, id BugID) ([]BugLog, error) {
	body, err := c.send(ctx, soap.GetBugLogRequest(id), "get_bug_log")
	if err != nil {
		return nil, err
	}
	return soap.ParseGetBugLogResponse(body, false)
}

// GetBugLogParsed is GetBugLog with each entry's mail header parsed
// into structured form. An entry whose header does not parse keeps its
// raw text only; it does not fail the call.
func (c *Client) GetBugLogParsed(ctx context.Context, id BugID) ([]BugLog, error) {
	body, err := c.send(ctx, soap.GetBugLogRequest(id), "get_bug_log")
	if err != nil {
		return nil, err
	}
	return soap.ParseGetBugLogResponse(body, true)
}

// GetUsertags returns the user's tags, keyed by tag name. With no tag
// names given, all of the user's tags are returned.
func (c *Client) GetUsertags(ctx context.Context, email string, tags ...string) (map[string][]BugID, error) {
	req, err := soap.GetUsertagRequest(email, tags)
	if err != nil {
		return nil, err
	}
	body, err := c.send(ctx, req, "get_usertag")
	if err != nil {
		return nil, err
	}
	return soap.ParseGetUsertagResponse(body)
}
