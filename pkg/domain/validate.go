package domain

import (
	"fmt"

	"flyrecord/internal/validation"
)

// RecordView is the read-only lookup surface flight validation uses for
// relational checks. A nil view skips those checks, which is how callers
// run lightweight field-only revalidation.
type RecordView interface {
	FindClient(id int) (Client, bool)
	FindAirline(id int) (Airline, bool)
}

// Validate checks all client fields. Address lines 2 and 3 may be empty
// but still obey the length ceiling; every other field is required.
func (c Client) Validate() validation.Errors {
	errs := validation.Errors{}
	checkRequiredString(errs, "name", "Name", c.Name, 100)
	checkRequiredString(errs, "address_line1", "Address line 1", c.AddressLine1, 100)
	errs.Add("address_line2", validation.String(c.AddressLine2, "Address line 2", 0, 100))
	errs.Add("address_line3", validation.String(c.AddressLine3, "Address line 3", 0, 100))
	checkRequiredString(errs, "city", "City", c.City, 50)
	checkRequiredString(errs, "state", "State", c.State, 50)
	checkRequiredString(errs, "zip_code", "Zip code", c.ZipCode, 20)
	checkRequiredString(errs, "country", "Country", c.Country, 100)
	if msg := validation.Required(c.PhoneNumber, "Phone number"); msg != "" {
		errs.Add("phone_number", msg)
	} else {
		errs.Add("phone_number", validation.PhoneNumber(c.PhoneNumber, "Phone number"))
	}
	return errs
}

// Validate checks the airline company name.
func (a Airline) Validate() validation.Errors {
	errs := validation.Errors{}
	checkRequiredString(errs, "company_name", "Company name", a.CompanyName, 100)
	return errs
}

// Validate checks all flight fields. When view is non-nil it additionally
// verifies that ClientID and AirlineID resolve to existing records,
// attaching a "does not exist" message to the offending field.
func (f Flight) Validate(view RecordView) validation.Errors {
	errs := validation.Errors{}
	one := validation.IntPtr(1)
	errs.Add("client_id", validation.Integer(f.ClientID, "Client ID", one, nil))
	errs.Add("airline_id", validation.Integer(f.AirlineID, "Airline ID", one, nil))
	errs.Add("date", validation.Date(f.Date, "Date"))
	checkRequiredString(errs, "start_city", "Start city", f.StartCity, 50)
	checkRequiredString(errs, "end_city", "End city", f.EndCity, 50)

	if view == nil {
		return errs
	}
	if _, ok := errs["client_id"]; !ok {
		if _, found := view.FindClient(f.ClientID); !found {
			errs.Add("client_id", fmt.Sprintf("Client with ID %d does not exist", f.ClientID))
		}
	}
	if _, ok := errs["airline_id"]; !ok {
		if _, found := view.FindAirline(f.AirlineID); !found {
			errs.Add("airline_id", fmt.Sprintf("Airline with ID %d does not exist", f.AirlineID))
		}
	}
	return errs
}

func checkRequiredString(errs validation.Errors, field, label, value string, maxLength int) {
	if msg := validation.Required(value, label); msg != "" {
		errs.Add(field, msg)
		return
	}
	errs.Add(field, validation.String(value, label, 1, maxLength))
}
