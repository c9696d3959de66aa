// Package soap implements the wire codec for the Debbugs SOAP
// interface: request envelopes for the five remote operations and
// decoders for their responses. Every function is a pure
// transformation; transport lives in pkg/debbugs.
//
// The Debbugs schema is loosely typed and has grown over the years, so
// decoding is deliberately lenient about elements it does not know and
// strict about the fields a record cannot exist without.
package soap

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// XML namespaces used by the Debbugs SOAP interface.
const (
	XMLNSSoapEnv = "http://schemas.xmlsoap.org/soap/envelope/"
	XMLNSSoapEnc = "http://schemas.xmlsoap.org/soap/encoding/"
	XMLNSXSI     = "http://www.w3.org/1999/XMLSchema-instance"
	XMLNSXSD     = "http://www.w3.org/1999/XMLSchema"
	XMLNSDebbugs = "Debbugs/SOAP"
)

// ErrInvalidArgument reports a caller-supplied value that violates an
// operation's precondition, such as an empty bug list. It is never
// caused by the server.
var ErrInvalidArgument = errors.New("invalid argument")

// MalformedResponseError reports a server response that could not be
// decoded because a required field was missing or its text could not
// be converted to the expected type. Field names the offending element
// or attribute.
type MalformedResponseError struct {
	Field  string
	Detail string
}

func (e *MalformedResponseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("malformed response: %s", e.Field)
	}
	return fmt.Sprintf("malformed response: %s: %s", e.Field, e.Detail)
}

func malformedf(field, format string, args ...interface{}) error {
	return &MalformedResponseError{Field: field, Detail: fmt.Sprintf(format, args...)}
}

// Fault is a SOAP fault the server returns in place of a result.
type Fault struct {
	Code    string
	Message string
	Actor   string
	Detail  string
}

func (f *Fault) Describe() string {
	s := fmt.Sprintf("%s: %s", f.Code, f.Message)
	if f.Actor != "" {
		s += " (actor: " + f.Actor + ")"
	}
	if f.Detail != "" {
		s += ": " + f.Detail
	}
	return s
}

// ParseFault decodes a soap:Fault document, as sent with non-success
// HTTP statuses.
func ParseFault(input string) (*Fault, error) {
	body, err := parseBody(input)
	if err != nil {
		return nil, err
	}
	fault := child(body, "Fault")
	if fault == nil {
		return nil, malformedf("soap:Fault", "not found")
	}
	code, ok := childText(fault, "faultcode")
	if !ok {
		return nil, malformedf("faultcode", "not found")
	}
	str, ok := childText(fault, "faultstring")
	if !ok {
		return nil, malformedf("faultstring", "not found")
	}
	f := &Fault{Code: code, Message: str}
	if actor, ok := childText(fault, "faultactor"); ok {
		f.Actor = actor
	}
	if detail, ok := childText(fault, "detail"); ok {
		f.Detail = detail
	}
	return f, nil
}

// child returns the first child element with the given local name.
// Namespace prefixes are ignored: the server is not consistent about
// them and the response shapes are unambiguous without them.
func child(e *etree.Element, name string) *etree.Element {
	for _, c := range e.ChildElements() {
		if c.Tag == name {
			return c
		}
	}
	return nil
}

// childText returns the trimmed text of the named child element, and
// whether the element exists at all.
func childText(e *etree.Element, name string) (string, bool) {
	c := child(e, name)
	if c == nil {
		return "", false
	}
	return strings.TrimSpace(c.Text()), true
}

// attr returns the value of the attribute with the given local key,
// regardless of its namespace prefix.
func attr(e *etree.Element, key string) (string, bool) {
	for _, a := range e.Attr {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// parseBody parses a response document down to the soap:Body element.
// An empty or unparseable HTTP body fails here; a well-formed envelope
// with zero results does not.
func parseBody(input string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(input); err != nil {
		return nil, malformedf("envelope", "%v", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "Envelope" {
		return nil, malformedf("envelope", "root element is not a soap:Envelope")
	}
	body := child(root, "Body")
	if body == nil {
		return nil, malformedf("soap:Body", "not found")
	}
	return body, nil
}

// responseElement locates the <op>Response element for an operation.
func responseElement(input, op string) (*etree.Element, error) {
	body, err := parseBody(input)
	if err != nil {
		return nil, err
	}
	name := op + "Response"
	resp := child(body, name)
	if resp == nil {
		return nil, malformedf(name, "not found")
	}
	return resp, nil
}
