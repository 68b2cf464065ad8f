// Package parcel implements the event-sourced parcel lifecycle model.
//
// A parcel is owned exclusively by its ordered event stream: the Parcel type
// is a projection derived by replaying events, never a mutable record. Next
// validates a candidate event against the current projection and either
// advances it or rejects the event with ErrInvalidTransition, leaving the
// stream unchanged. The Event union is closed over the seven lifecycle
// variants, and the projector matches them exhaustively.
package parcel
