// Package cart implements the session-held shopping cart: a quantity map
// keyed by product id, plus the resolver that joins it against the live
// catalog.
package cart

import (
	"strconv"

	"github.com/aguaviva/storefront/internal/session"
)

const sessionKey = "cart"

// Contents returns the quantity map for the session, attaching an empty one
// on first access. Keys are product ids in string form; values are requested
// quantities. No catalog validation happens here.
func Contents(sess *session.Session) map[string]int {
	if v, ok := sess.Get(sessionKey); ok {
		if quantities, ok := v.(map[string]int); ok {
			return quantities
		}
	}
	quantities := make(map[string]int)
	sess.Set(sessionKey, quantities)
	return quantities
}

// Add increments the quantity for a product by one, starting at one.
func Add(sess *session.Session, productID int64) {
	quantities := Contents(sess)
	quantities[strconv.FormatInt(productID, 10)]++
	sess.MarkModified()
}

// SetQuantity overwrites the quantity for a product. Zero or negative
// removes the entry; quantities that low are never stored.
func SetQuantity(sess *session.Session, productID int64, quantity int) {
	quantities := Contents(sess)
	key := strconv.FormatInt(productID, 10)
	if quantity <= 0 {
		delete(quantities, key)
	} else {
		quantities[key] = quantity
	}
	sess.MarkModified()
}

// Remove drops a product from the cart. Removing an absent product is a
// no-op.
func Remove(sess *session.Session, productID int64) {
	quantities := Contents(sess)
	delete(quantities, strconv.FormatInt(productID, 10))
	sess.MarkModified()
}

// Clear empties the cart.
func Clear(sess *session.Session) {
	sess.Delete(sessionKey)
}
