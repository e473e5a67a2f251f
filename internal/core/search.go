package core

import (
	"context"
	"strconv"
	"strings"
)

// Search performs case-insensitive free-text matching over records. A
// query is split into terms on commas and whitespace; a record matches
// when every term appears somewhere in its searchable text.
type Search struct {
	store PersistentStore
}

// NewSearch constructs a search facade over the supplied store.
func NewSearch(store PersistentStore) *Search {
	return &Search{store: store}
}

// flightDateLayout is the textual rendering used when matching flight
// dates against search terms.
const flightDateLayout = "2006-01-02 15:04"

func splitTerms(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}

func matchesAll(haystack []string, terms []string) bool {
	for _, term := range terms {
		found := false
		for _, h := range haystack {
			if strings.Contains(h, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Clients returns the clients matching the query, sorted by ID. An
// empty or whitespace-only query returns every client.
func (s *Search) Clients(ctx context.Context, query string) ([]Client, error) {
	terms := splitTerms(query)
	var matched []Client
	err := s.store.View(ctx, func(view TransactionView) error {
		for _, c := range view.ListClients() {
			haystack := []string{
				strconv.Itoa(c.ID),
				strings.ToLower(c.Name),
				strings.ToLower(c.Country),
				strings.ToLower(c.PhoneNumber),
			}
			if matchesAll(haystack, terms) {
				matched = append(matched, c)
			}
		}
		return nil
	})
	return matched, err
}

// Airlines returns the airlines matching the query, sorted by ID.
func (s *Search) Airlines(ctx context.Context, query string) ([]Airline, error) {
	terms := splitTerms(query)
	var matched []Airline
	err := s.store.View(ctx, func(view TransactionView) error {
		for _, a := range view.ListAirlines() {
			haystack := []string{
				strconv.Itoa(a.ID),
				strings.ToLower(a.CompanyName),
			}
			if matchesAll(haystack, terms) {
				matched = append(matched, a)
			}
		}
		return nil
	})
	return matched, err
}

// Flights returns the flights matching the query, sorted by ID. Flight
// matching spans the flight's own fields plus the names of the linked
// client and airline; a dangling reference simply contributes nothing.
func (s *Search) Flights(ctx context.Context, query string) ([]Flight, error) {
	terms := splitTerms(query)
	var matched []Flight
	err := s.store.View(ctx, func(view TransactionView) error {
		for _, f := range view.ListFlights() {
			haystack := []string{
				strconv.Itoa(f.ID),
				strconv.Itoa(f.ClientID),
				strconv.Itoa(f.AirlineID),
				strings.ToLower(f.StartCity),
				strings.ToLower(f.EndCity),
				strings.ToLower(f.Date.Format(flightDateLayout)),
			}
			if client, ok := view.FindClient(f.ClientID); ok {
				haystack = append(haystack, strings.ToLower(client.Name))
			}
			if airline, ok := view.FindAirline(f.AirlineID); ok {
				haystack = append(haystack, strings.ToLower(airline.CompanyName))
			}
			if matchesAll(haystack, terms) {
				matched = append(matched, f)
			}
		}
		return nil
	})
	return matched, err
}
