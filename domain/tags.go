package domain

// FilenameTags holds what could be inferred from a raw filename.
// Empty strings and nil pointers mean the tag was not found.
type FilenameTags struct {
	Year       string
	Quality    string
	Season     *int
	Episode    *int
	Language   string
	Extension  string
	CleanTitle string
}
