package music

import (
	"database/sql"
	"strings"
)

// UnknownSentinel is the literal the media index stores when it has no value
// for an artist or album.
const UnknownSentinel = "<unknown>"

// Name is an artist name that is either known or unknown. The zero value is
// Unknown. Index values are classified once by ParseName; code past the
// ingestion boundary never compares against the sentinel.
type Name struct {
	value string
	known bool
}

// Unknown is the absent name.
var Unknown = Name{}

// Known returns a known name. An empty string yields Unknown.
func Known(s string) Name {
	if s == "" {
		return Unknown
	}
	return Name{value: s, known: true}
}

// ParseName classifies a raw index value. NULL, blank and the sentinel are
// Unknown. A known name keeps its raw spelling, surrounding spaces included.
func ParseName(raw sql.NullString) Name {
	if !raw.Valid {
		return Unknown
	}
	switch strings.TrimSpace(raw.String) {
	case "", UnknownSentinel:
		return Unknown
	}
	return Known(raw.String)
}

// IsKnown reports whether the name carries a value.
func (n Name) IsKnown() bool {
	return n.known
}

// Value returns the name and whether it is known.
func (n Name) Value() (string, bool) {
	return n.value, n.known
}

// Or returns n if it is known, otherwise other.
func (n Name) Or(other Name) Name {
	if n.known {
		return n
	}
	return other
}

// String returns the raw name, or the sentinel for Unknown.
func (n Name) String() string {
	if !n.known {
		return UnknownSentinel
	}
	return n.value
}
