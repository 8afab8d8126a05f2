// Package fields holds the CRM-specific identifiers used when building
// payloads: the opaque keys of custom fields and the numeric option codes
// of the enum fields. All tables are constant; lookups never fail.
package fields

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Key is the CRM-assigned identifier of a custom field.
type Key string

// Custom field keys.
const (
	KeyHousingType  Key = "35c4e320a6dee7094535c0fe65fd9e748754a171"
	KeyPropertySize Key = "533158ca6c8a97cc1207b273d5802bd4a074f887"
	KeyComment      Key = "1fe6a0769bd867d36c25892576862e9b423302f3"
	KeyDealType     Key = "761dd27362225e433e1011b3bd4389a48ae4a412"
	KeyContactType  Key = "c0b071d74d13386af76f5681194fd8cd793e6020"
)

// CustomFieldKey returns the key for a logical field name, or "" if unknown.
func CustomFieldKey(name string) Key {
	switch normalize(name) {
	case "housing_type":
		return KeyHousingType
	case "property_size":
		return KeyPropertySize
	case "comment":
		return KeyComment
	case "deal_type":
		return KeyDealType
	case "contact_type":
		return KeyContactType
	default:
		return ""
	}
}

// Code is the option id of an enum custom field.
type Code int

// NoCode is returned for labels that have no option. It is sent as null.
const NoCode Code = 0

// Valid reports whether c refers to an option.
func (c Code) Valid() bool {
	return c != NoCode
}

// MarshalJSON encodes NoCode as null and every other code as a number.
func (c Code) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(c))), nil
}

// Contact type options.
const (
	ContactPrivate     Code = 27
	ContactHousingCoop Code = 28
	ContactCompany     Code = 29
)

// Housing type options.
const (
	HousingDetached   Code = 30
	HousingApartment  Code = 31
	HousingSemi       Code = 32
	HousingTerraced   Code = 33
	HousingCabin      Code = 34
	HousingOtherHouse Code = 35
)

// Deal type options.
const (
	DealAnyContract     Code = 42
	DealFixedPrice      Code = 43
	DealSpotPrice       Code = 44
	DealPowerManagement Code = 45
	DealOtherOrDontKnow Code = 46
)

var contactTypes = map[string]Code{
	"privat":     ContactPrivate,
	"borettslag": ContactHousingCoop,
	"bedrift":    ContactCompany,
}

var housingTypes = map[string]Code{
	"enebolig":     HousingDetached,
	"leilighet":    HousingApartment,
	"tomannsbolig": HousingSemi,
	"rekkehus":     HousingTerraced,
	"hytte":        HousingCabin,
	"annet":        HousingOtherHouse,
}

var dealTypes = map[string]Code{
	"alle strømavtaler er aktuelle": DealAnyContract,
	"fastpris":                      DealFixedPrice,
	"spotpris":                      DealSpotPrice,
	"kraftforvaltning":              DealPowerManagement,
	"annen avtale/vet ikke":         DealOtherOrDontKnow,
}

// ContactTypeID returns the option code of a contact type label.
func ContactTypeID(label string) Code {
	return contactTypes[normalize(label)]
}

// HousingTypeID returns the option code of a housing type label.
func HousingTypeID(label string) Code {
	return housingTypes[normalize(label)]
}

// DealTypeID returns the option code of a deal type label.
func DealTypeID(label string) Code {
	return dealTypes[normalize(label)]
}

// normalize lowercases with Norwegian rules so that "STRØM" matches "strøm".
// Surrounding whitespace is not trimmed: labels must match exactly.
func normalize(label string) string {
	if label == "" {
		return ""
	}
	return cases.Lower(language.Norwegian).String(label)
}

// Labels returns the known labels of each enum field, for help output.
func Labels() map[string][]string {
	return map[string][]string{
		"contact_type": sortedLabels(contactTypes),
		"housing_type": sortedLabels(housingTypes),
		"deal_type":    sortedLabels(dealTypes),
	}
}

func sortedLabels(table map[string]Code) []string {
	labels := make([]string, 0, len(table))
	for label := range table {
		labels = append(labels, label)
	}
	// Order by code so output follows the CRM's option order.
	sort.Slice(labels, func(i, j int) bool {
		return table[labels[i]] < table[labels[j]]
	})
	return labels
}

// HasLabel reports whether label is known for the given enum field.
func HasLabel(field, label string) bool {
	switch strings.ToLower(field) {
	case "contact_type":
		return ContactTypeID(label).Valid()
	case "housing_type":
		return HousingTypeID(label).Valid()
	case "deal_type":
		return DealTypeID(label).Valid()
	}
	return false
}
