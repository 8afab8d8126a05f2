package reconciler

import "fmt"

// Organization is passed to the CRM unchanged, so it keeps whatever
// attributes the caller supplies. Only "name" is interpreted.
type Organization map[string]any

// Name returns the organization's search key.
func (o Organization) Name() string {
	name, _ := o["name"].(string)
	return name
}

// Person is a contact and the attributes collected alongside it.
type Person struct {
	Name         string `json:"name" yaml:"name"`
	Email        string `json:"email" yaml:"email"`
	Phone        string `json:"phone" yaml:"phone"`
	ContactType  string `json:"contact_type" yaml:"contact_type"`
	HousingType  string `json:"housing_type" yaml:"housing_type"`
	PropertySize any    `json:"property_size" yaml:"property_size"`
	DealType     string `json:"deal_type" yaml:"deal_type"`
	Comment      string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Lead is a sales opportunity linking a person and an organization.
type Lead struct {
	Name           string
	DealType       string
	HousingType    string
	PropertySize   any
	Comment        string
	PersonID       int64
	OrganizationID int64
}

// NewLead builds the lead for person, attached to the given ids.
func NewLead(person Person, personID, organizationID int64, comment string) Lead {
	return Lead{
		Name:           person.Name,
		DealType:       person.DealType,
		HousingType:    person.HousingType,
		PropertySize:   person.PropertySize,
		Comment:        comment,
		PersonID:       personID,
		OrganizationID: organizationID,
	}
}

// Title is the lead's display name and its search key.
func (l Lead) Title() string {
	return fmt.Sprintf("Lead: %s for %s", l.DealType, l.Name)
}
