package dto

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DueDate parses due_date from JSON as either date-only ("2006-01-02") or an
// ISO-8601 datetime. An unparseable or empty value becomes null instead of an
// error: task creation stays permissive, a bad date just means "no date".
// It also records whether the key was present at all, so a partial update can
// tell "clear the date" apart from "leave it alone".
type DueDate struct {
	t   *time.Time
	set bool
}

func (d *DueDate) UnmarshalJSON(data []byte) error {
	d.set = true
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not a JSON string (number, object, ...) — treat as no date.
		d.t = nil
		return nil
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02", // date only
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			// Date-only means start of that day in UTC.
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			d.t = &parsed
			return nil
		}
	}
	d.t = nil
	return nil
}

// Ptr returns *time.Time for use in service/domain.
func (d DueDate) Ptr() *time.Time { return d.t }

// Present reports whether the JSON body carried the due_date key at all.
func (d DueDate) Present() bool { return d.set }

// FlexBool coerces JSON booleans, numbers and common string spellings
// ("true", "1", "yes", "on", ...) to bool. Anything unparseable is false.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		*b = false
		return nil
	}
	switch t := v.(type) {
	case bool:
		*b = FlexBool(t)
	case float64:
		*b = FlexBool(t != 0)
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "y", "on":
			*b = true
		default:
			if n, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil && n != 0 {
				*b = true
			} else {
				*b = false
			}
		}
	default:
		*b = false
	}
	return nil
}

// Bool unwraps the coerced value.
func (b FlexBool) Bool() bool { return bool(b) }

// OptString is a string field that records whether its key was present in the
// JSON body. Key presence, not non-null-ness, is what a partial update keys
// off: an explicit null reads as present with an empty value.
type OptString struct {
	s   string
	set bool
}

func (o *OptString) UnmarshalJSON(data []byte) error {
	o.set = true
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		o.s = ""
		return nil
	}
	o.s = *raw
	return nil
}

// Value returns the decoded string; empty for null or non-string input.
func (o OptString) Value() string { return o.s }

// Present reports whether the JSON body carried the key at all.
func (o OptString) Present() bool { return o.set }

// OptBool is a FlexBool that records key presence. An explicit null coerces
// to false like any other unparseable value.
type OptBool struct {
	b   bool
	set bool
}

func (o *OptBool) UnmarshalJSON(data []byte) error {
	o.set = true
	var fb FlexBool
	_ = fb.UnmarshalJSON(data)
	o.b = fb.Bool()
	return nil
}

// Bool returns the coerced value.
func (o OptBool) Bool() bool { return o.b }

// Present reports whether the JSON body carried the key at all.
func (o OptBool) Present() bool { return o.set }

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Completed   FlexBool `json:"completed"`
	Priority    string   `json:"priority"`
	DueDate     DueDate  `json:"due_date"` // optional: "2025-11-30" or RFC3339
}

// UpdateTaskRequest is a true partial update: an absent key means "leave as
// is", a present key goes through the same normalization as Create even when
// its value is null.
type UpdateTaskRequest struct {
	Title       OptString `json:"title"`
	Description OptString `json:"description"`
	Completed   OptBool   `json:"completed"`
	Priority    OptString `json:"priority"`
	DueDate     DueDate   `json:"due_date"`
}

type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	UserID      int64      `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
