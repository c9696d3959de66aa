package soap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bugLogResponse(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/" xmlns:soapenc="http://schemas.xmlsoap.org/soap/encoding/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"><soap:Body><get_bug_logResponse xmlns="Debbugs/SOAP"><soapenc:Array soapenc:arrayType="xsd:ur-type[3]" xsi:type="soapenc:Array">` +
		strings.Join(items, "") +
		`</soapenc:Array></get_bug_logResponse></soap:Body></soap:Envelope>`
}

func logItem(msgNum, header, body string) string {
	return `<item><header xsi:type="xsd:string">` + header +
		`</header><msg_num xsi:type="xsd:int">` + msgNum +
		`</msg_num><body xsi:type="xsd:string">` + body +
		`</body><attachments/></item>`
}

const goodHeader = `From: submitter@example.org
To: 1000@bugs.debian.org
Subject: acme: crash when frobnicating
Date: Thu, 2 Jan 2020 10:00:00 +0000`

const mangledHeader = `this line has no colon and is not a valid header
neither does this one`

func TestParseGetBugLogResponse(t *testing.T) {
	input := bugLogResponse(
		logItem("5", goodHeader, "It crashes every time."),
		logItem("10", goodHeader, "Acknowledged."),
		logItem("15", goodHeader, "Fixed in 1.2-3."),
	)
	entries, err := ParseGetBugLogResponse(input, false)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Server order is chronological; keep it.
	assert.Equal(t, 5, entries[0].MsgNum)
	assert.Equal(t, 10, entries[1].MsgNum)
	assert.Equal(t, 15, entries[2].MsgNum)
	assert.Equal(t, "It crashes every time.", entries[0].Body)
	assert.Contains(t, entries[0].Header, "Subject: acme: crash when frobnicating")

	// Mail parsing was not requested.
	for _, entry := range entries {
		assert.Nil(t, entry.Headers)
	}
}

func TestParseGetBugLogResponseWithMailParsing(t *testing.T) {
	input := bugLogResponse(
		logItem("5", goodHeader, "first"),
		logItem("10", mangledHeader, "second"),
		logItem("15", goodHeader, "third"),
	)
	entries, err := ParseGetBugLogResponse(input, true)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	require.NotNil(t, entries[0].Headers)
	assert.Equal(t, "acme: crash when frobnicating", entries[0].Headers.Get("Subject"))
	require.NotNil(t, entries[2].Headers)

	// The mangled entry degrades to raw text without failing the rest
	// of the thread.
	assert.Nil(t, entries[1].Headers)
	assert.Equal(t, mangledHeader, entries[1].Header)
	assert.Equal(t, "second", entries[1].Body)
}

func TestParseGetBugLogResponseMissingBody(t *testing.T) {
	broken := `<item><header>` + goodHeader + `</header><msg_num>10</msg_num></item>`
	input := bugLogResponse(logItem("5", goodHeader, "first"), broken)
	_, err := ParseGetBugLogResponse(input, false)
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "body", malformed.Field)
	assert.Contains(t, malformed.Detail, "entry 1")
}

func TestParseGetBugLogResponseMissingMsgNum(t *testing.T) {
	broken := `<item><header>` + goodHeader + `</header><body>text</body></item>`
	input := bugLogResponse(broken)
	_, err := ParseGetBugLogResponse(input, false)
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "msg_num", malformed.Field)
}

func TestParseGetBugLogResponseSkipsUnknownElements(t *testing.T) {
	item := `<item><header>` + goodHeader + `</header><msg_num>5</msg_num><body>text</body><spam_score>0.1</spam_score></item>`
	entries, err := ParseGetBugLogResponse(bugLogResponse(item), false)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "text", entries[0].Body)
}

func TestBugLogParseHeaders(t *testing.T) {
	entry := &BugLog{Header: goodHeader}
	headers, err := entry.ParseHeaders()
	require.NoError(t, err)
	assert.Equal(t, "submitter@example.org", headers.Get("From"))

	entry = &BugLog{Header: mangledHeader}
	_, err = entry.ParseHeaders()
	assert.Error(t, err)
}
