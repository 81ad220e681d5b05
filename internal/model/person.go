package model

// Person is a public figure mentioned in coverage, keyed by Wikidata ID.
type Person struct {
	WikidataID  string
	Name        string
	Description string
	Occupation  string
}
