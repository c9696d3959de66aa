package soap

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// requestEnvelope wraps the operation element and its parameters in
// the soap:Envelope/soap:Header/soap:Body skeleton the Debbugs server
// expects.
func requestEnvelope(op string, params []*etree.Element) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	env := doc.CreateElement("soap:Envelope")
	env.CreateAttr("xmlns:soap", XMLNSSoapEnv)
	env.CreateAttr("xmlns:xsi", XMLNSXSI)
	env.CreateAttr("xmlns:xsd", XMLNSXSD)
	env.CreateElement("soap:Header")
	body := env.CreateElement("soap:Body")
	opElem := body.CreateElement(op)
	for _, p := range params {
		opElem.AddChild(p)
	}
	return doc
}

func textParam(name, value string) *etree.Element {
	e := etree.NewElement(name)
	e.SetText(value)
	return e
}

func intParam(name string, value int) *etree.Element {
	e := textParam(name, strconv.Itoa(value))
	e.CreateAttr("xsi:type", "xsd:int")
	return e
}

func bugArrayParam(name string, ids []BugID) *etree.Element {
	e := etree.NewElement(name)
	e.CreateAttr("xmlns:soapenc", XMLNSSoapEnc)
	e.CreateAttr("xsi:type", "soapenc:Array")
	e.CreateAttr("soapenc:arrayType", fmt.Sprintf("xsd:int[%d]", len(ids)))
	for _, id := range ids {
		item := e.CreateElement("item")
		item.CreateAttr("xsi:type", "xsd:int")
		item.SetText(strconv.FormatInt(int64(id), 10))
	}
	return e
}

func stringArrayParam(name string, values []string) *etree.Element {
	e := etree.NewElement(name)
	e.CreateAttr("xmlns:soapenc", XMLNSSoapEnc)
	e.CreateAttr("xsi:type", "soapenc:Array")
	e.CreateAttr("soapenc:arrayType", "xsd:string[]")
	for _, v := range values {
		item := e.CreateElement("item")
		item.CreateAttr("xsi:type", "xsd:string")
		item.SetText(v)
	}
	return e
}

// argList numbers positional SOAP parameters arg0..argN the way the
// server's serializer expects them.
type argList struct {
	params []*etree.Element
}

func (a *argList) add(build func(name string) *etree.Element) {
	a.params = append(a.params, build(fmt.Sprintf("arg%d", len(a.params))))
}

func (a *argList) addString(v string) {
	a.add(func(name string) *etree.Element { return textParam(name, v) })
}

func (a *argList) addBugs(ids []BugID) {
	a.add(func(name string) *etree.Element { return bugArrayParam(name, ids) })
}

func (a *argList) addStrings(vs []string) {
	a.add(func(name string) *etree.Element { return stringArrayParam(name, vs) })
}

// NewestBugsRequest builds a newest_bugs request for the given number
// of bugs. amount must be positive.
func NewestBugsRequest(amount int) (*etree.Document, error) {
	if amount <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "amount must be positive, got %d", amount)
	}
	return requestEnvelope("newest_bugs", []*etree.Element{
		textParam("amount", strconv.Itoa(amount)),
	}), nil
}

// GetStatusRequest builds a get_status request for the given bugs.
// The list must be non-empty; order is preserved on the wire.
func GetStatusRequest(ids []BugID) (*etree.Document, error) {
	if len(ids) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "no bug numbers given")
	}
	var args argList
	args.addBugs(ids)
	return requestEnvelope("get_status", args.params), nil
}

// GetBugLogRequest builds a get_bug_log request for a single bug.
func GetBugLogRequest(id BugID) *etree.Document {
	return requestEnvelope("get_bug_log", []*etree.Element{
		intParam("bugnumber", int(id)),
	})
}

// GetBugsRequest builds a get_bugs search request. Parameters are
// name/value pairs; unset query fields are omitted, and a nil or zero
// query produces a request that matches every bug.
func GetBugsRequest(query *SearchQuery) *etree.Document {
	var args argList
	if query == nil {
		query = &SearchQuery{}
	}
	if query.Package != "" {
		args.addString("package")
		args.addString(query.Package)
	}
	if len(query.Bugs) > 0 {
		args.addString("bugs")
		args.addBugs(query.Bugs)
	}
	if query.Submitter != "" {
		args.addString("submitter")
		args.addString(query.Submitter)
	}
	if query.Maintainer != "" {
		args.addString("maint")
		args.addString(query.Maintainer)
	}
	if query.Src != "" {
		args.addString("src")
		args.addString(query.Src)
	}
	if query.Severity != "" {
		args.addString("severity")
		args.addString(query.Severity)
	}
	if query.Status != "" {
		args.addString("status")
		args.addString(string(query.Status))
	}
	if query.Owner != "" {
		args.addString("owner")
		args.addString(query.Owner)
	}
	if query.Correspondent != "" {
		args.addString("correspondent")
		args.addString(query.Correspondent)
	}
	if query.Archive != "" {
		args.addString("archive")
		args.addString(string(query.Archive))
	}
	if len(query.Tags) > 0 {
		args.addString("tag")
		args.addStrings(query.Tags)
	}
	return requestEnvelope("get_bugs", args.params)
}

// GetUsertagRequest builds a get_usertag request for a user's tags.
// With no tag names, the server returns all of the user's tags.
func GetUsertagRequest(email string, tags []string) (*etree.Document, error) {
	if email == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "email must not be empty")
	}
	var args argList
	args.addString(email)
	for _, tag := range tags {
		args.addString(tag)
	}
	return requestEnvelope("get_usertag", args.params), nil
}
