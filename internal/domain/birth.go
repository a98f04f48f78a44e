package domain

// Birth data as supplied by a caller. Date is YYYY-MM-DD, Time is HH:MM
// or HH:MM:SS local clock time; no timezone conversion is applied.
type BirthInput struct {
	Date    string
	Time    string
	Country string
	City    string
}

// A validated calendar instant.
type BirthMoment struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}
