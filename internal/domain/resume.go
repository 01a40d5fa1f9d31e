package domain

import "time"

// Resume is a stored resume row. Sections holds arbitrary JSON values in the
// order the client submitted them.
type Resume struct {
	ID        int64         `json:"id"`
	Username  string        `json:"username"`
	Name      string        `json:"name"`
	Title     *string       `json:"title"`
	Email     *string       `json:"email"`
	Phone     *string       `json:"phone"`
	Location  *string       `json:"location"`
	LinkedIn  *string       `json:"linkedin"`
	Sections  []interface{} `json:"sections"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ResumeFields are the columns replaced by an update.
type ResumeFields struct {
	Name     string
	Title    *string
	Email    *string
	Phone    *string
	Location *string
	LinkedIn *string
	Sections []interface{}
}

// Apply copies the mutable fields onto r.
func (f ResumeFields) Apply(r *Resume) {
	r.Name = f.Name
	r.Title = f.Title
	r.Email = f.Email
	r.Phone = f.Phone
	r.Location = f.Location
	r.LinkedIn = f.LinkedIn
	r.Sections = f.Sections
}
