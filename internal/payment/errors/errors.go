package errors

import "errors"

// ErrPaymentNotFound means no row matched the requested id under the
// operation's filter.
var ErrPaymentNotFound = errors.New("payment not found")

func IsNotFound(err error) bool {
	return errors.Is(err, ErrPaymentNotFound)
}
