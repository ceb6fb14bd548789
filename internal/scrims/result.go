// internal/scrims/result.go
package scrims

// Reason classifies why an operation was rejected. Handlers key HTTP status
// codes off it; the Message carries the human-readable text.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonNotFound     Reason = "not_found"
	ReasonMaintenance  Reason = "maintenance"
	ReasonNotOpen      Reason = "not_open"
	ReasonValidation   Reason = "validation"
	ReasonBadSlot      Reason = "bad_slot"
	ReasonFull         Reason = "full"
	ReasonDuplicateIP  Reason = "duplicate_ip"
	ReasonDuplicateTag Reason = "duplicate_tag"
	ReasonSlotLocked   Reason = "locked"
	ReasonSlotTaken    Reason = "taken"
	ReasonOccupied     Reason = "occupied"
)

// Result is the uniform outcome of scrim operations. Business-rule
// violations are reported here, never as Go errors; a non-nil error from a
// service method always means an infrastructure failure.
type Result struct {
	OK         bool   `json:"success"`
	Reason     Reason `json:"reason,omitempty"`
	Message    string `json:"message"`
	SlotNumber int    `json:"slot,omitempty"`
}

func ok(message string) Result {
	return Result{OK: true, Message: message}
}

func reject(reason Reason, message string) Result {
	return Result{OK: false, Reason: reason, Message: message}
}
