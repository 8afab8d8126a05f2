package fields_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/crmsync/pkg/fields"
)

func TestHousingTypeID(t *testing.T) {
	tests := []struct {
		label string
		want  fields.Code
	}{
		{"ENEBOLIG", 30},
		{"enebolig", 30},
		{"Leilighet", 31},
		{"tomannsbolig", 32},
		{"rekkehus", 33},
		{"Hytte", 34},
		{"annet", 35},
		{"unknown", fields.NoCode},
		{"", fields.NoCode},
		{" enebolig", fields.NoCode},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, fields.HousingTypeID(tt.label))
		})
	}
}

func TestContactTypeID(t *testing.T) {
	assert.Equal(t, fields.Code(27), fields.ContactTypeID("Privat"))
	assert.Equal(t, fields.Code(28), fields.ContactTypeID("BORETTSLAG"))
	assert.Equal(t, fields.Code(29), fields.ContactTypeID("bedrift"))
	assert.Equal(t, fields.NoCode, fields.ContactTypeID("offentlig"))
}

func TestDealTypeID(t *testing.T) {
	assert.Equal(t, fields.Code(42), fields.DealTypeID("Alle strømavtaler er aktuelle"))
	assert.Equal(t, fields.Code(42), fields.DealTypeID("ALLE STRØMAVTALER ER AKTUELLE"))
	assert.Equal(t, fields.Code(43), fields.DealTypeID("Fastpris"))
	assert.Equal(t, fields.Code(44), fields.DealTypeID("spotpris"))
	assert.Equal(t, fields.Code(45), fields.DealTypeID("Kraftforvaltning"))
	assert.Equal(t, fields.Code(46), fields.DealTypeID("Annen avtale/vet ikke"))
	assert.Equal(t, fields.NoCode, fields.DealTypeID("fastpris med påslag"))
}

func TestCustomFieldKey(t *testing.T) {
	assert.Equal(t, fields.Key("35c4e320a6dee7094535c0fe65fd9e748754a171"), fields.CustomFieldKey("housing_type"))
	assert.Equal(t, fields.Key("533158ca6c8a97cc1207b273d5802bd4a074f887"), fields.CustomFieldKey("property_size"))
	assert.Equal(t, fields.Key("1fe6a0769bd867d36c25892576862e9b423302f3"), fields.CustomFieldKey("comment"))
	assert.Equal(t, fields.Key("761dd27362225e433e1011b3bd4389a48ae4a412"), fields.CustomFieldKey("DEAL_TYPE"))
	assert.Equal(t, fields.Key("c0b071d74d13386af76f5681194fd8cd793e6020"), fields.CustomFieldKey("contact_type"))
	assert.Equal(t, fields.Key(""), fields.CustomFieldKey("budget"))
}

func TestCodeMarshalJSON(t *testing.T) {
	data, err := json.Marshal(map[string]fields.Code{
		"known":   fields.HousingDetached,
		"unknown": fields.HousingTypeID("slott"),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"known":30,"unknown":null}`, string(data))
}

func TestLabels(t *testing.T) {
	labels := fields.Labels()
	assert.Equal(t, []string{"privat", "borettslag", "bedrift"}, labels["contact_type"])
	assert.Len(t, labels["housing_type"], 6)
	assert.Equal(t, "alle strømavtaler er aktuelle", labels["deal_type"][0])

	for field, values := range labels {
		for _, label := range values {
			assert.True(t, fields.HasLabel(field, label), "%s/%s", field, label)
		}
	}
	assert.False(t, fields.HasLabel("deal_type", "unknown"))
	assert.False(t, fields.HasLabel("budget", "privat"))
}
