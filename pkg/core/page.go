package core

// PagingToken is an opaque resumption marker produced by a row source.
// It is treated as an uninterpreted byte sequence everywhere outside the
// source that minted it, and is passed back verbatim to resume a scan.
// A nil token means "no state": start from the beginning on input, no more
// data on output.
type PagingToken []byte

// Clone returns a copy of the token, or nil for a nil token.
func (t PagingToken) Clone() PagingToken {
	if t == nil {
		return nil
	}
	c := make(PagingToken, len(t))
	copy(c, t)
	return c
}

// Page is one bounded batch of rows returned by a row source.
type Page interface {
	// Rows returns the page's rows in source order. May be empty.
	Rows() []Row

	// PagingState returns the token resuming after the whole page, or nil
	// when the source is exhausted.
	PagingState() PagingToken

	// PagingStateAfter returns a token resuming the scan immediately after
	// rows[i]. Used to hand out document-granular resumption points that do
	// not fall on a page boundary. Like all tokens it is store-defined.
	PagingStateAfter(i int) PagingToken
}
