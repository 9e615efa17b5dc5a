package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// idListSeparator delimits entries inside a single text column.
const idListSeparator = ","

// IDList is an ordered set of identifiers persisted as a single delimited
// string column. Entries are unique and keep insertion order; the order is
// load-bearing for admin succession, which promotes the first remaining
// member.
type IDList []string

// ParseIDList parses a delimited string into an IDList, dropping empty
// entries and duplicates while preserving order.
func ParseIDList(raw string) IDList {
	if raw == "" {
		return IDList{}
	}
	parts := strings.Split(raw, idListSeparator)
	list := make(IDList, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		list.Add(p)
	}
	return list
}

// Contains reports whether id is present. Matching is by exact equality.
func (l IDList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Add appends id if absent and reports whether it was added.
func (l *IDList) Add(id string) bool {
	if id == "" || l.Contains(id) {
		return false
	}
	*l = append(*l, id)
	return true
}

// Remove deletes id if present and reports whether it was removed.
func (l *IDList) Remove(id string) bool {
	for i, v := range *l {
		if v == id {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// First returns the first entry, or "" when empty.
func (l IDList) First() string {
	if len(l) == 0 {
		return ""
	}
	return l[0]
}

// Clone returns an independent copy.
func (l IDList) Clone() IDList {
	out := make(IDList, len(l))
	copy(out, l)
	return out
}

// Value implements driver.Valuer, serializing the list into one column.
func (l IDList) Value() (driver.Value, error) {
	return strings.Join(l, idListSeparator), nil
}

// Scan implements sql.Scanner.
func (l *IDList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = IDList{}
	case string:
		*l = ParseIDList(v)
	case []byte:
		*l = ParseIDList(string(v))
	default:
		return fmt.Errorf("cannot scan %T into IDList", src)
	}
	return nil
}
