package output

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/agentstation/crmsync/pkg/fields"
	"github.com/agentstation/crmsync/pkg/pipedrive"
	"github.com/agentstation/crmsync/pkg/sync"
)

// EntitiesToTableData renders CRM entities with one column per key.
func EntitiesToTableData(entities []map[string]any, columns ...string) Data {
	headers := make([]string, len(columns))
	alignment := make([]Align, len(columns))
	for i, column := range columns {
		headers[i] = titleCase(column)
		if column == "id" || column == "org_id" {
			alignment[i] = AlignRight
		}
	}

	rows := make([][]string, 0, len(entities))
	for _, entity := range entities {
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = cell(entity[column])
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: alignment}
}

// cell renders a JSON value for a table. Contact lists show their primary
// value and related entities show their id.
func cell(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case []any:
		for _, entry := range value {
			contact, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if primary, _ := contact["primary"].(bool); primary || len(value) == 1 {
				return cell(contact["value"])
			}
		}
		return ""
	case map[string]any:
		if id, ok := pipedrive.IntValue(value["id"]); ok {
			return strconv.FormatInt(id, 10)
		}
		if id, ok := pipedrive.IntValue(value["value"]); ok {
			return strconv.FormatInt(id, 10)
		}
		return ""
	default:
		return fmt.Sprint(value)
	}
}

// SyncResultToTableData renders one row per synced record.
func SyncResultToTableData(result *sync.Result) Data {
	rows := make([][]string, 0, len(result.Records))
	for _, record := range result.Records {
		rows = append(rows, []string{
			record.OrganizationName,
			strconv.FormatInt(record.OrganizationID, 10),
			record.PersonName,
			strconv.FormatInt(record.PersonID, 10),
			record.LeadID,
		})
	}
	return Data{
		Headers:         []string{"Organization", "Org ID", "Person", "Person ID", "Lead ID"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft, AlignRight, AlignLeft},
	}
}

// Code is one enum option, as listed by the codes command.
type Code struct {
	Field string      `json:"field" yaml:"field"`
	Label string      `json:"label" yaml:"label"`
	Code  fields.Code `json:"code" yaml:"code"`
}

// Codes lists every known enum option, grouped by field.
func Codes() []Code {
	labels := fields.Labels()
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)

	var codes []Code
	for _, name := range names {
		for _, label := range labels[name] {
			codes = append(codes, Code{Field: name, Label: label, Code: codeOf(name, label)})
		}
	}
	return codes
}

// CodesToTableData renders one row per enum option.
func CodesToTableData(codes []Code) Data {
	rows := make([][]string, 0, len(codes))
	for _, c := range codes {
		rows = append(rows, []string{c.Field, c.Label, strconv.Itoa(int(c.Code))})
	}
	return Data{
		Headers:         []string{"Field", "Label", "Code"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight},
	}
}

func codeOf(field, label string) fields.Code {
	switch field {
	case "contact_type":
		return fields.ContactTypeID(label)
	case "housing_type":
		return fields.HousingTypeID(label)
	case "deal_type":
		return fields.DealTypeID(label)
	}
	return fields.NoCode
}
