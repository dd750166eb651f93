package wishlist

import "errors"

var (
	// ErrNotInWishlist is returned when moving a product that is not saved
	ErrNotInWishlist = errors.New("product is not in the wishlist")
	// ErrNotPersisted wraps storage failures; the in-memory wishlist still holds the change
	ErrNotPersisted = errors.New("wishlist changes could not be saved")
)
