package sync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/crmsync/pkg/errors"
	"github.com/agentstation/crmsync/pkg/reconciler"
)

// Record is one input entry: an organization and its contact person.
type Record struct {
	Organization reconciler.Organization `json:"organization" yaml:"organization"`
	Person       reconciler.Person       `json:"person" yaml:"person"`
}

// Validate checks that the record has its search keys.
func (r Record) Validate() error {
	if r.Organization.Name() == "" {
		return &errors.ValidationError{Field: "organization.name", Message: "cannot be empty"}
	}
	if r.Person.Name == "" {
		return &errors.ValidationError{Field: "person.name", Message: "cannot be empty"}
	}
	return nil
}

// LoadRecords reads a JSON (.json) or YAML (.yaml, .yml) array of records.
func LoadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var records []Record
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&records); err != nil {
			return nil, errors.WrapParse("json", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, errors.WrapParse("yaml", path, err)
		}
	default:
		return nil, &errors.ValidationError{
			Field:   "path",
			Value:   path,
			Message: "unsupported record file extension " + ext,
		}
	}

	for i, record := range records {
		if err := record.Validate(); err != nil {
			return nil, errors.NewParseError("records", path, fmt.Sprintf("record %d: %s", i, err), err)
		}
	}
	return records, nil
}
