package soap

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"pault.ag/go/debian/version"
)

// FixedVersion is one entry of a report's fixed_versions list. The
// server sends either "package/version" or a bare version string;
// Package is empty in the bare case. Version is nil when the version
// part did not parse as a Debian version.
type FixedVersion struct {
	Package string
	Version *version.Version
}

// BugReport is the server's status record for a single bug. Number and
// Subject are always present; every other field is optional and nil or
// zero when the server omitted it.
type BugReport struct {
	Number  BugID
	Subject string

	Package    *string
	Source     *string
	Severity   *string
	Pending    *Pending
	Tags       *string
	Originator *string
	Owner      *string
	Done       *string
	Forwarded  *string
	Affects    *string
	Summary    *string
	Outlook    *string
	Location   *string
	MessageID  *string

	Blocks     *string
	BlockedBy  *string
	MergedWith []BugID

	FoundVersions []version.Version
	FixedVersions []FixedVersion
	Found         bool
	Fixed         bool

	Archived   *bool
	Unarchived *bool

	LastModified *time.Time
	LogModified  *time.Time

	// ID and Keywords duplicate Number and Tags; the server still
	// populates them for old clients.
	ID       *BugID
	Keywords *string
}

func (r *BugReport) String() string {
	s := fmt.Sprintf("Bug #%d", r.Number)
	if r.Package != nil {
		s += " in " + *r.Package
	}
	if r.Subject != "" {
		s += ": " + r.Subject
	}
	return s
}

func optText(e *etree.Element, name string) *string {
	c := child(e, name)
	if c == nil {
		return nil
	}
	s := c.Text()
	return &s
}

// optBool reads the server's "1"/"0" booleans. Anything else on an
// optional field decodes as absent.
func optBool(e *etree.Element, name string) *bool {
	c := child(e, name)
	if c == nil {
		return nil
	}
	switch strings.TrimSpace(c.Text()) {
	case "1":
		v := true
		return &v
	case "0":
		v := false
		return &v
	}
	return nil
}

// optTime reads an epoch-seconds timestamp; absent or untypeable
// decodes as nil.
func optTime(e *etree.Element, name string) *time.Time {
	c := child(e, name)
	if c == nil {
		return nil
	}
	secs, err := strconv.ParseInt(strings.TrimSpace(c.Text()), 10, 64)
	if err != nil {
		return nil
	}
	t := time.Unix(secs, 0).UTC()
	return &t
}

// listItems returns the item texts of a list-valued field.
func listItems(e *etree.Element, name string) []string {
	c := child(e, name)
	if c == nil {
		return nil
	}
	var out []string
	for _, item := range c.ChildElements() {
		if item.Tag == "item" {
			out = append(out, item.Text())
		}
	}
	return out
}

func parseFixedVersion(s string) FixedVersion {
	pkg, ver, found := strings.Cut(s, "/")
	if !found {
		if v, err := version.Parse(s); err == nil {
			return FixedVersion{Version: &v}
		}
		return FixedVersion{}
	}
	fv := FixedVersion{Package: pkg}
	if v, err := version.Parse(ver); err == nil {
		fv.Version = &v
	}
	return fv
}

// parseBugReport decodes one status record. Only bug_num (when
// present) and subject are required; the rest of the schema is treated
// as optional so that new server fields cannot break old clients.
func parseBugReport(value *etree.Element, entry int) (*BugReport, error) {
	r := &BugReport{}

	if numText, ok := childText(value, "bug_num"); ok {
		id, err := parseBugID(numText)
		if err != nil {
			return nil, malformedf("bug_num", "status entry %d: %v", entry, err)
		}
		r.Number = id
	}
	subject := child(value, "subject")
	if subject == nil {
		return nil, malformedf("subject", "missing in status entry %d", entry)
	}
	r.Subject = subject.Text()

	r.Package = optText(value, "package")
	r.Source = optText(value, "source")
	r.Severity = optText(value, "severity")
	r.Tags = optText(value, "tags")
	r.Originator = optText(value, "originator")
	r.Owner = optText(value, "owner")
	r.Done = optText(value, "done")
	r.Forwarded = optText(value, "forwarded")
	r.Affects = optText(value, "affects")
	r.Summary = optText(value, "summary")
	r.Outlook = optText(value, "outlook")
	r.Location = optText(value, "location")
	r.MessageID = optText(value, "msgid")
	r.Blocks = optText(value, "blocks")
	r.BlockedBy = optText(value, "blockedby")
	r.Keywords = optText(value, "keywords")

	if pendingText, ok := childText(value, "pending"); ok {
		if p, err := ParsePending(pendingText); err == nil {
			r.Pending = &p
		}
	}

	if merged, ok := childText(value, "mergedwith"); ok {
		for _, field := range strings.Fields(merged) {
			if id, err := parseBugID(field); err == nil {
				r.MergedWith = append(r.MergedWith, id)
			}
		}
	}

	for _, s := range listItems(value, "found_versions") {
		if v, err := version.Parse(s); err == nil {
			r.FoundVersions = append(r.FoundVersions, v)
		}
	}
	for _, s := range listItems(value, "fixed_versions") {
		r.FixedVersions = append(r.FixedVersions, parseFixedVersion(s))
	}
	r.Found = child(value, "found") != nil
	r.Fixed = child(value, "fixed") != nil

	r.Archived = optBool(value, "archived")
	r.Unarchived = optBool(value, "unarchived")
	r.LastModified = optTime(value, "last_modified")
	r.LogModified = optTime(value, "log_modified")

	if idText, ok := childText(value, "id"); ok {
		if id, err := parseBugID(idText); err == nil {
			r.ID = &id
		}
	}

	return r, nil
}
