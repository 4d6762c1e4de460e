package models

// Category is one entry of the upstream side navigation.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Slug string `json:"slug"`
}
