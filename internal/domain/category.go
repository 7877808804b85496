package domain

// Category is one recyclable-material type from the fixed catalog.
type Category struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	ImageURL string `json:"image_url,omitempty"`
}
