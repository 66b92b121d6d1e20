package model

import "time"

// WishlistEntry links a user to an event they saved for later,
// stored in the `wishlist_entries` table. The (user_id, event_id)
// pair carries a unique index; adding the same pair twice returns
// the existing entry instead of erroring. Entries are not cascaded
// when the event is deleted — stale rows are filtered out at read
// time by joining against events.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the entry.
//  EventID   – saved event.
//  CreatedAt – when the entry was added.
type WishlistEntry struct {
	ID        uint64    // wishlist_entries.id
	UserID    uint64    // wishlist_entries.user_id
	EventID   uint64    // wishlist_entries.event_id
	CreatedAt time.Time // wishlist_entries.created_at
}
