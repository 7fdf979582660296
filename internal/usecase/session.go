package usecase

// Session carries the authenticated caller's identity into every operation.
// It is always passed explicitly by the transport layer; no use case reads
// ambient user state, which keeps multi-user tests straightforward.
type Session struct {
	UserID string
}
