package subscription

import "time"

// Subscription ties an identity to a messageset. An identity may hold any
// number of active subscriptions, one per messageset.
type Subscription struct {
	ID                 string         `json:"id"`
	Version            int            `json:"version,omitempty"`
	Identity           string         `json:"identity"`
	Messageset         int            `json:"messageset"`
	NextSequenceNumber int            `json:"next_sequence_number"`
	Lang               string         `json:"lang"`
	Active             bool           `json:"active"`
	Completed          bool           `json:"completed"`
	Schedule           int            `json:"schedule,omitempty"`
	ProcessStatus      int            `json:"process_status,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
	CreatedAt          time.Time      `json:"created_at,omitzero"`
	UpdatedAt          time.Time      `json:"updated_at,omitzero"`
}

// MessageSet is a named message sequence. NextSet chains messagesets forward
// for stage progression; nil ends the chain.
type MessageSet struct {
	ID              int       `json:"id"`
	ShortName       string    `json:"short_name"`
	NextSet         *int      `json:"next_set"`
	DefaultSchedule int       `json:"default_schedule"`
	ContentType     string    `json:"content_type"`
	CreatedAt       time.Time `json:"created_at,omitzero"`
	UpdatedAt       time.Time `json:"updated_at,omitzero"`
}

// Patch is the subscription update payload. The registry expects the full
// identifying tuple alongside the mutated fields.
type Patch struct {
	ID                 string `json:"id"`
	Identity           string `json:"identity"`
	Messageset         int    `json:"messageset"`
	NextSequenceNumber int    `json:"next_sequence_number"`
	Lang               string `json:"lang"`
	Active             bool   `json:"active"`
	Completed          bool   `json:"completed"`
}
