package registry

import (
	"fmt"
	"strings"
)

// Kind selects the backend family responsible for a record.
type Kind string

const (
	KindBinary Kind = "binary"
	KindGit    Kind = "git"
	KindApt    Kind = "apt"
)

// AptDest is the sentinel destination for package-manager records.
const AptDest = "apt"

const fieldDelim = "|"

// Record is one managed tool entry as persisted in the registry.
type Record struct {
	Name     string `json:"name"`
	Dest     string `json:"dest"`
	Kind     Kind   `json:"kind"`
	Source   string `json:"source"`
	Checksum string `json:"checksum,omitempty"`
}

// ValidKind reports whether k is one of the supported backend kinds.
func ValidKind(k Kind) bool {
	switch k {
	case KindBinary, KindGit, KindApt:
		return true
	}
	return false
}

// NormalizeDest strips any leading path separators so destinations always
// resolve under the install root.
func NormalizeDest(dest string) string {
	return strings.TrimLeft(dest, "/")
}

// NewRecord validates the fields and returns a normalized record. Apt-kind
// records always carry the sentinel destination.
func NewRecord(name, dest string, kind Kind, source, checksum string) (Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{}, fmt.Errorf("tool name must not be empty")
	}
	if strings.Contains(name, fieldDelim) {
		return Record{}, fmt.Errorf("tool name %q must not contain %q", name, fieldDelim)
	}
	if !ValidKind(kind) {
		return Record{}, fmt.Errorf("unknown kind %q", kind)
	}
	if strings.TrimSpace(source) == "" {
		return Record{}, fmt.Errorf("tool source must not be empty")
	}

	if kind == KindApt {
		dest = AptDest
	} else {
		dest = NormalizeDest(strings.TrimSpace(dest))
		if dest == "" {
			return Record{}, fmt.Errorf("tool destination must not be empty")
		}
		if dest == AptDest {
			return Record{}, fmt.Errorf("destination %q is reserved for apt-kind tools", AptDest)
		}
	}

	return Record{
		Name:     name,
		Dest:     dest,
		Kind:     kind,
		Source:   source,
		Checksum: checksum,
	}, nil
}

// String renders the record in the persisted line format. The checksum field
// may be empty but its delimiter is always written.
func (r Record) String() string {
	return strings.Join([]string{r.Name, r.Dest, string(r.Kind), r.Source, r.Checksum}, fieldDelim)
}

// ParseLine decodes one registry line. Field values containing the delimiter
// corrupt record boundaries; the format has no escaping.
func ParseLine(line string) (Record, error) {
	parts := strings.Split(line, fieldDelim)
	if len(parts) != 5 {
		return Record{}, fmt.Errorf("malformed registry line: expected 5 fields, got %d", len(parts))
	}
	kind := Kind(parts[2])
	if !ValidKind(kind) {
		return Record{}, fmt.Errorf("malformed registry line: unknown kind %q", parts[2])
	}
	return Record{
		Name:     parts[0],
		Dest:     parts[1],
		Kind:     kind,
		Source:   parts[3],
		Checksum: parts[4],
	}, nil
}
