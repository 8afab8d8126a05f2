package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/crmsync/pkg/sync"
)

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", ""} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestJSONFormatterKeepsUnicode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, map[string]string{"label": "alle strømavtaler er aktuelle"}))
	assert.Contains(t, buf.String(), "strømavtaler")
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, []Code{{Field: "housing_type", Label: "enebolig", Code: 30}}))
	assert.Contains(t, buf.String(), "label: enebolig")
	assert.Contains(t, buf.String(), "code: 30")
}

func TestEntitiesTable(t *testing.T) {
	entities := []map[string]any{
		{
			"id":     json.Number("2"),
			"name":   "Ola Nordmann",
			"org_id": map[string]any{"name": "Acme AS", "value": json.Number("1")},
			"emails": []any{
				map[string]any{"value": "old@example.no", "primary": false},
				map[string]any{"value": "ola@example.no", "primary": true},
			},
		},
	}

	data := EntitiesToTableData(entities, "id", "name", "org_id", "emails", "phones")
	assert.Equal(t, []string{"Id", "Name", "Org Id", "Emails", "Phones"}, data.Headers)
	assert.Equal(t, [][]string{{"2", "Ola Nordmann", "1", "ola@example.no", ""}}, data.Rows)

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))
	assert.Contains(t, buf.String(), "Ola Nordmann")
}

func TestSyncResultTable(t *testing.T) {
	result := &sync.Result{
		Total: 1,
		Records: []sync.RecordResult{{
			OrganizationName: "Acme AS",
			OrganizationID:   1,
			PersonName:       "Ola Nordmann",
			PersonID:         2,
			LeadID:           "adf21080-0e10-11eb-879b-05d71fb426ec",
		}},
	}

	data := SyncResultToTableData(result)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, []string{"Acme AS", "1", "Ola Nordmann", "2", "adf21080-0e10-11eb-879b-05d71fb426ec"}, data.Rows[0])
}

func TestCodes(t *testing.T) {
	codes := Codes()
	assert.Len(t, codes, 14)
	assert.Equal(t, Code{Field: "contact_type", Label: "privat", Code: 27}, codes[0])
	assert.Equal(t, "deal_type", codes[3].Field)
}

func TestCodesTable(t *testing.T) {
	data := CodesToTableData(Codes()[:2])
	assert.Equal(t, [][]string{{"contact_type", "privat", "27"}, {"contact_type", "borettslag", "28"}}, data.Rows)

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, &data))
	out := strings.ToLower(buf.String())
	assert.Contains(t, out, "field")
	assert.Contains(t, out, "borettslag")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"total": 3}))
	assert.JSONEq(t, `{"total": 3}`, buf.String())
}
