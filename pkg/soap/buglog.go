package soap

import (
	"net/mail"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	log "github.com/sirupsen/logrus"
)

// BugLog is one message in a bug's correspondence thread.
type BugLog struct {
	// Header is the raw RFC 5322 header block of the message.
	Header string
	// MsgNum is the server's sequence number for the message within
	// the thread.
	MsgNum int
	// Body is the message body as plain text.
	Body string
	// Headers is the structured form of Header, populated by
	// ParseGetBugLogResponse when mail parsing is requested and the
	// header text parses cleanly. Nil otherwise; Header always holds
	// the raw text regardless.
	Headers mail.Header
}

// ParseHeaders parses the raw header block into structured form.
func (l *BugLog) ParseHeaders() (mail.Header, error) {
	msg, err := mail.ReadMessage(strings.NewReader(l.Header + "\r\n\r\n"))
	if err != nil {
		return nil, err
	}
	return msg.Header, nil
}

func parseBugLogEntry(item *etree.Element, entry int) (*BugLog, error) {
	l := &BugLog{MsgNum: -1}
	var header, body *string
	for _, c := range item.ChildElements() {
		switch c.Tag {
		case "header":
			s := c.Text()
			header = &s
		case "msg_num":
			if n, err := strconv.Atoi(strings.TrimSpace(c.Text())); err == nil {
				l.MsgNum = n
			}
		case "body":
			s := c.Text()
			body = &s
		case "attachments":
			if len(c.ChildElements()) > 0 {
				log.Warn("bug log attachments are not supported (not implemented on the server side)")
			}
		default:
			log.Debugf("ignoring unknown bug log element %q", c.Tag)
		}
	}
	if header == nil {
		return nil, malformedf("header", "missing in log entry %d", entry)
	}
	if l.MsgNum < 0 {
		return nil, malformedf("msg_num", "missing or invalid in log entry %d", entry)
	}
	if body == nil {
		return nil, malformedf("body", "missing in log entry %d", entry)
	}
	l.Header = *header
	l.Body = *body
	return l, nil
}

// ParseGetBugLogResponse decodes a get_bug_log response, preserving
// the server's chronological order. With parseMail set, each entry's
// header block is additionally parsed into structured form; an entry
// whose header does not parse keeps its raw text only, and the decode
// carries on with the remaining entries.
func ParseGetBugLogResponse(input string, parseMail bool) ([]BugLog, error) {
	resp, err := responseElement(input, "get_bug_log")
	if err != nil {
		return nil, err
	}
	items, err := arrayItems(resp, urTypeArrayType)
	if err != nil {
		return nil, err
	}
	logs := make([]BugLog, 0, len(items))
	for i, item := range items {
		entry, err := parseBugLogEntry(item, i)
		if err != nil {
			return nil, err
		}
		if parseMail {
			if headers, err := entry.ParseHeaders(); err == nil {
				entry.Headers = headers
			} else {
				log.WithError(err).Debugf("keeping raw header for log entry %d", i)
			}
		}
		logs = append(logs, *entry)
	}
	return logs, nil
}
