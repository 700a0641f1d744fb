package core

// Kind classifies a core operation failure so the transport layer can map
// it to an HTTP status without inspecting message text.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation marks malformed or missing input.
	KindValidation
	// KindConflict marks a nickname collision.
	KindConflict
	// KindNotFound marks an unknown user, chat, or message.
	KindNotFound
	// KindForbidden marks a sender that is not a chat participant.
	KindForbidden
)

// Error is the discriminated failure result of every core operation.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func validationErr(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func conflictErr(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }
func notFoundErr(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func forbiddenErr(msg string) *Error  { return &Error{Kind: KindForbidden, Message: msg} }

// KindOf extracts the kind from an error returned by a core operation.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnknown
}
