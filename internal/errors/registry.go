package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Invariant Violations (L001-L019)
	// ============================================

	"L001": {
		Category: CategoryInvariant,
		Message:  "Listener discarded after teardown",
		Detail:   "Discard was called on an event listener whose registration token is already gone. The handle was torn down through another path first; this is a framework bug.",
	},
	"L004": {
		Category: CategoryInvariant,
		Message:  "Deferred value discarded twice",
		Detail:   "A deferred value runs its teardown exactly once. A second Discard means two owners released the same value.",
	},
	"L005": {
		Category: CategoryInvariant,
		Message:  "Deferred callback discarded twice",
		Detail:   "A deferred callback is one-shot. A second Discard would run cleanup logic again.",
	},
	"L006": {
		Category: CategoryInvariant,
		Message:  "Group discarded twice",
		Detail:   "A discard group releases its members exactly once.",
	},
	"L007": {
		Category: CategoryInvariant,
		Message:  "Group used after teardown",
		Detail:   "A resource was added to a group that has already been discarded or dropped.",
	},
	"L008": {
		Category: CategoryInvariant,
		Message:  "Resource discarded after drop",
		Detail:   "Drop already consumed this resource through the implicit path. Explicit teardown can no longer run.",
	},

	// ============================================
	// Host Failures (L002-L003, L010-L019)
	// ============================================

	"L002": {
		Category: CategoryHost,
		Message:  "Host registration failed",
		Detail:   "The host event system could not attach the listener. Registration is not retried.",
	},
	"L003": {
		Category: CategoryHost,
		Message:  "Host unregistration failed",
		Detail:   "The host event system could not detach the listener, usually because the token is unknown to it.",
	},
	"L010": {
		Category: CategoryHost,
		Message:  "Host connection closed",
		Detail:   "The remote host went away while registrations were still attached.",
	},

	// ============================================
	// Protocol Errors (L020-L029)
	// ============================================

	"L020": {
		Category: CategoryProtocol,
		Message:  "Invalid frame",
		Detail:   "A frame from the remote host could not be decoded.",
	},
	"L021": {
		Category: CategoryProtocol,
		Message:  "Frame too large",
		Detail:   "The frame payload exceeds the 16-bit frame length or the configured maximum message size.",
	},
	"L022": {
		Category: CategoryProtocol,
		Message:  "Event for unknown listener",
		Detail:   "The remote host delivered an event for a token this side never issued.",
	},

	// ============================================
	// Config / CLI Errors (L030-L049)
	// ============================================

	"L030": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The listen.json file contains an invalid value.",
	},
	"L031": {
		Category: CategoryConfig,
		Message:  "Configuration file unreadable",
		Detail:   "The listen.json file exists but could not be read or parsed.",
	},
	"L040": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The listen daemon stopped with an error.",
	},
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
