// Package tasks defines the request payloads sent to the Todoist REST API.
package tasks

import "encoding/json"

// Duration units accepted by the API. DurationUnit is free text and is not
// checked against these.
const (
	DurationMinute = "minute"
	DurationDay    = "day"
)

// NewTask is the body of a "create task" request.
//
// Content is required; every other field is optional and is left out of the
// encoded body while nil. Fields are assigned directly after New. A non-nil
// empty Labels slice is sent as an empty list, a nil one is not sent.
type NewTask struct {
	Content      string
	Description  *string
	ProjectID    *string
	SectionID    *string
	ParentID     *string
	Order        *int32
	Labels       []string
	Priority     *uint8 // 1 (normal) to 4 (urgent) by API convention
	Due          Due
	AssigneeID   *string
	Duration     *uint32
	DurationUnit *string
}

// New returns a NewTask with the given content and all optional fields unset.
func New(content string) *NewTask {
	return &NewTask{Content: content}
}

// wireTask is the encoded layout of NewTask. Due keys sit at the top level
// next to content; only the active Due variant fills its own keys.
type wireTask struct {
	Content      string    `json:"content"`
	Description  *string   `json:"description,omitempty"`
	ProjectID    *string   `json:"project_id,omitempty"`
	SectionID    *string   `json:"section_id,omitempty"`
	ParentID     *string   `json:"parent_id,omitempty"`
	Order        *int32    `json:"order,omitempty"`
	Labels       *[]string `json:"labels,omitempty"`
	Priority     *uint8    `json:"priority,omitempty"`
	DueString    *string   `json:"due_string,omitempty"`
	DueLang      *string   `json:"due_lang,omitempty"`
	DueDate      *string   `json:"due_date,omitempty"`
	DueDatetime  *string   `json:"due_datetime,omitempty"`
	AssigneeID   *string   `json:"assignee_id,omitempty"`
	Duration     *uint32   `json:"duration,omitempty"`
	DurationUnit *string   `json:"duration_unit,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (t NewTask) MarshalJSON() ([]byte, error) {
	w := wireTask{
		Content:      t.Content,
		Description:  t.Description,
		ProjectID:    t.ProjectID,
		SectionID:    t.SectionID,
		ParentID:     t.ParentID,
		Order:        t.Order,
		Priority:     t.Priority,
		AssigneeID:   t.AssigneeID,
		Duration:     t.Duration,
		DurationUnit: t.DurationUnit,
	}
	if t.Labels != nil {
		labels := t.Labels
		w.Labels = &labels
	}
	if t.Due != nil {
		t.Due.flatten(&w)
	}
	return json.Marshal(w)
}

// Body returns the encoded request body. Every field type is directly
// encodable, so the error from MarshalJSON is always nil.
func (t *NewTask) Body() []byte {
	data, _ := json.Marshal(t)
	return data
}

// Ptr returns a pointer to v, for assigning optional fields.
func Ptr[T any](v T) *T {
	return &v
}
