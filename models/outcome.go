package models

// OutcomeStatus tags the result of a best-effort side channel.
type OutcomeStatus string

const (
	OutcomeSent    OutcomeStatus = "sent"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeFailed  OutcomeStatus = "failed"
)

// Outcome is what a side channel reports instead of an error.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Detail string        `json:"detail,omitempty"`
}

func Sent() Outcome { return Outcome{Status: OutcomeSent} }

func Skipped(detail string) Outcome { return Outcome{Status: OutcomeSkipped, Detail: detail} }

func Failed(detail string) Outcome { return Outcome{Status: OutcomeFailed, Detail: detail} }

// Identity is the host environment's view of the caller.
type Identity struct {
	DisplayName string `json:"displayName"`
	UserID      string `json:"userId"`
}

// Environment describes what the host offers for one submission.
// HostAvailable is resolved once at startup; Identity comes from the request.
type Environment struct {
	HostAvailable bool
	Identity      *Identity
}

// Embedded reports whether the caller is signed in inside the host messaging environment.
func (e Environment) Embedded() bool {
	return e.HostAvailable && e.Identity != nil && e.Identity.UserID != ""
}

// SubmissionResult aggregates a successful submission and its side channels.
type SubmissionResult struct {
	Booking   Booking `json:"booking"`
	Recorded  bool    `json:"recorded"`
	Notified  Outcome `json:"notified"`
	Announced Outcome `json:"announced"`
}

// WebhookPayload is the body posted to the external endpoint.
type WebhookPayload struct {
	Action string  `json:"action"`
	Data   Booking `json:"data"`
}
