package model

import "resume-builder/internal/domain"

// ResumePayload is the request body accepted by the create and update
// endpoints. It mirrors schema/resume.schema.json.
type ResumePayload struct {
	Username string        `json:"username"`
	Name     string        `json:"name"`
	Title    *string       `json:"title"`
	Email    *string       `json:"email"`
	Phone    *string       `json:"phone"`
	Location *string       `json:"location"`
	LinkedIn *string       `json:"linkedin"`
	Sections []interface{} `json:"sections"`
}

func (p ResumePayload) Fields() domain.ResumeFields {
	return domain.ResumeFields{
		Name:     p.Name,
		Title:    p.Title,
		Email:    p.Email,
		Phone:    p.Phone,
		Location: p.Location,
		LinkedIn: p.LinkedIn,
		Sections: p.Sections,
	}
}
