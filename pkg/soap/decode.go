package soap

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

var (
	intArrayType    = regexp.MustCompile(`^xsd:int\[[0-9]+\]$`)
	urTypeArrayType = regexp.MustCompile(`^xsd:ur-type\[[0-9]+\]$`)
)

// arrayItems returns the item elements of the soapenc:Array inside a
// response element. The server advertises an empty array of any kind
// as xsd:anyType[0].
func arrayItems(resp *etree.Element, itemType *regexp.Regexp) ([]*etree.Element, error) {
	arr := child(resp, "Array")
	if arr == nil {
		return nil, malformedf("soapenc:Array", "not found")
	}
	arrayType, ok := attr(arr, "arrayType")
	if !ok {
		return nil, malformedf("soapenc:arrayType", "attribute missing")
	}
	if !itemType.MatchString(arrayType) && arrayType != "xsd:anyType[0]" {
		return nil, malformedf("soapenc:arrayType", "unexpected value %q", arrayType)
	}
	var items []*etree.Element
	for _, c := range arr.ChildElements() {
		if c.Tag == "item" {
			items = append(items, c)
		}
	}
	return items, nil
}

func parseBugID(s string) (BugID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, errors.Errorf("invalid bug number %q", s)
	}
	return BugID(n), nil
}

func parseBugIDArray(resp *etree.Element) ([]BugID, error) {
	items, err := arrayItems(resp, intArrayType)
	if err != nil {
		return nil, err
	}
	ids := make([]BugID, 0, len(items))
	for i, item := range items {
		id, err := parseBugID(item.Text())
		if err != nil {
			return nil, malformedf("item", "array entry %d: %v", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseNewestBugsResponse decodes a newest_bugs response into bug
// numbers, newest first as sent by the server.
func ParseNewestBugsResponse(input string) ([]BugID, error) {
	resp, err := responseElement(input, "newest_bugs")
	if err != nil {
		return nil, err
	}
	return parseBugIDArray(resp)
}

// ParseGetBugsResponse decodes a get_bugs search response into the
// matching bug numbers. Zero matches decode to an empty slice.
func ParseGetBugsResponse(input string) ([]BugID, error) {
	resp, err := responseElement(input, "get_bugs")
	if err != nil {
		return nil, err
	}
	return parseBugIDArray(resp)
}

// container finds the result container inside a response element. The
// server's serializer generates its name (s-gensym3 in practice), so
// match on the prefix rather than the exact gensym counter.
func container(resp *etree.Element) *etree.Element {
	for _, c := range resp.ChildElements() {
		if strings.HasPrefix(c.Tag, "s-gensym") {
			return c
		}
	}
	return nil
}

// ParseGetStatusResponse decodes a get_status response into bug
// reports in document order. Each entry must carry a bug number and a
// subject; everything else is optional and unknown elements are
// skipped.
func ParseGetStatusResponse(input string) ([]BugReport, error) {
	resp, err := responseElement(input, "get_status")
	if err != nil {
		return nil, err
	}
	cont := container(resp)
	if cont == nil {
		return nil, malformedf("s-gensym", "status container not found")
	}
	var reports []BugReport
	entry := 0
	for _, item := range cont.ChildElements() {
		if item.Tag != "item" {
			continue
		}
		value := child(item, "value")
		if value == nil {
			return nil, malformedf("value", "status entry %d has no value element", entry)
		}
		report, err := parseBugReport(value, entry)
		if err != nil {
			return nil, err
		}
		if report.Number == 0 {
			// Old servers omit bug_num from the record; the map key
			// carries the number in that case.
			key, ok := childText(item, "key")
			if !ok {
				return nil, malformedf("bug_num", "status entry %d has neither bug_num nor key", entry)
			}
			id, err := parseBugID(key)
			if err != nil {
				return nil, malformedf("key", "status entry %d: %v", entry, err)
			}
			report.Number = id
		}
		reports = append(reports, *report)
		entry++
	}
	return reports, nil
}

// ParseGetUsertagResponse decodes a get_usertag response into a map
// from tag name to bug numbers. The tag names are the child element
// names themselves. A user with no tags decodes to an empty map.
func ParseGetUsertagResponse(input string) (map[string][]BugID, error) {
	resp, err := responseElement(input, "get_usertag")
	if err != nil {
		return nil, err
	}
	tags := map[string][]BugID{}
	cont := container(resp)
	if cont == nil {
		// The container is omitted entirely for users with no tags.
		return tags, nil
	}
	for _, tag := range cont.ChildElements() {
		ids := []BugID{}
		for i, item := range tag.ChildElements() {
			if item.Tag != "item" {
				continue
			}
			id, err := parseBugID(item.Text())
			if err != nil {
				return nil, malformedf(tag.Tag, "tag entry %d: %v", i, err)
			}
			ids = append(ids, id)
		}
		tags[tag.Tag] = ids
	}
	return tags, nil
}
