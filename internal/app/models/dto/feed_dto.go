package dto

// FeedEntry is a calendar-widget-ready projection of a practical session
// plus its live availability. Start and end carry dates only, the format
// the calendar front-end consumes.
type FeedEntry struct {
	Title           string `json:"title" example:"Microscopy lab"`
	Start           string `json:"start" example:"2026-03-02"`
	End             string `json:"end" example:"2026-03-02"`
	Description     string `json:"description"`
	SeatsRemaining  int    `json:"seatsRemaining" example:"25"`
	RegistrationURL string `json:"url" example:"http://localhost:8080/courses/course-v1:OU+CS101+2026/register"`
}
