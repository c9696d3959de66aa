package soap

import "github.com/pkg/errors"

// BugID identifies a single bug report in the tracker. IDs are
// assigned by the server and never reused.
type BugID int32

// BugStatus filters a search by the bug's overall state.
type BugStatus string

const (
	StatusDone      BugStatus = "done"
	StatusForwarded BugStatus = "forwarded"
	StatusOpen      BugStatus = "open"
)

// ParseBugStatus converts the server's status string.
func ParseBugStatus(s string) (BugStatus, error) {
	switch s {
	case "done":
		return StatusDone, nil
	case "forwarded":
		return StatusForwarded, nil
	case "open":
		return StatusOpen, nil
	}
	return "", errors.Wrapf(ErrInvalidArgument, "unknown bug status %q", s)
}

// Pending is the processing state the server reports for a bug.
type Pending string

const (
	BugPending      Pending = "pending"
	BugPendingFixed Pending = "pending-fixed"
	BugFixed        Pending = "fixed"
	BugDone         Pending = "done"
	BugForwarded    Pending = "forwarded"
)

// ParsePending converts the server's pending string.
func ParsePending(s string) (Pending, error) {
	switch s {
	case "pending":
		return BugPending, nil
	case "pending-fixed":
		return BugPendingFixed, nil
	case "fixed":
		return BugFixed, nil
	case "done":
		return BugDone, nil
	case "forwarded":
		return BugForwarded, nil
	}
	return "", errors.Wrapf(ErrInvalidArgument, "unknown pending state %q", s)
}

// Archived selects whether a search covers archived bugs, live bugs,
// or both.
type Archived string

const (
	ArchivedOnly Archived = "archived"
	NotArchived  Archived = "unarchived"
	ArchivedBoth Archived = "both"
)

// ParseArchived converts an archive selector. The server also uses
// "1"/"0" in report fields, so those spellings are accepted too.
func ParseArchived(s string) (Archived, error) {
	switch s {
	case "1", "archived":
		return ArchivedOnly, nil
	case "0", "unarchived":
		return NotArchived, nil
	case "both":
		return ArchivedBoth, nil
	}
	return "", errors.Wrapf(ErrInvalidArgument, "unknown archive selector %q", s)
}

// SearchQuery narrows a get_bugs search. Zero-value fields are left
// out of the request entirely; the zero query matches every bug.
type SearchQuery struct {
	// Package matches bugs filed against a binary package.
	Package string
	// Bugs restricts the search to the given bug numbers.
	Bugs []BugID
	// Submitter matches the address that filed the bug.
	Submitter string
	// Maintainer matches the package maintainer's address.
	Maintainer string
	// Src matches bugs filed against a source package.
	Src string
	// Severity matches the bug severity, e.g. "serious".
	Severity string
	// Status matches the bug's overall state.
	Status BugStatus
	// Owner matches the address the bug is owned by.
	Owner string
	// Correspondent matches any address that mailed the bug.
	Correspondent string
	// Archive selects archived bugs, live bugs, or both. Unset means
	// live bugs only.
	Archive Archived
	// Tags matches bugs carrying any of the given tags.
	Tags []string
}
