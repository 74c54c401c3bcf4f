package registry

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// exportFile is the YAML shape used for sharing a registry between hosts.
type exportFile struct {
	Tools []exportRecord `yaml:"tools"`
}

type exportRecord struct {
	Name     string `yaml:"name"`
	Dest     string `yaml:"dest"`
	Kind     string `yaml:"kind"`
	Source   string `yaml:"source"`
	Checksum string `yaml:"checksum,omitempty"`
}

// Export writes the current registry as YAML, preserving insertion order.
func (s *Store) Export(w io.Writer) error {
	records, err := s.List()
	if err != nil {
		return err
	}
	out := exportFile{Tools: make([]exportRecord, 0, len(records))}
	for _, rec := range records {
		out.Tools = append(out.Tools, exportRecord{
			Name:     rec.Name,
			Dest:     rec.Dest,
			Kind:     string(rec.Kind),
			Source:   rec.Source,
			Checksum: rec.Checksum,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode registry export: %w", err)
	}
	return enc.Close()
}

// Import merges a YAML export into the registry. Entries are validated and
// added one by one; names already present are skipped, so importing the same
// file twice converges. Returns the number of records actually added.
func (s *Store) Import(r io.Reader) (int, error) {
	var in exportFile
	if err := yaml.NewDecoder(r).Decode(&in); err != nil {
		return 0, fmt.Errorf("decode registry import: %w", err)
	}

	added := 0
	for _, entry := range in.Tools {
		rec, err := NewRecord(entry.Name, entry.Dest, Kind(entry.Kind), entry.Source, entry.Checksum)
		if err != nil {
			return added, fmt.Errorf("import entry %q: %w", entry.Name, err)
		}
		ok, err := s.Add(rec)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}
