package terminal

import "errors"

var (
	ErrOutboxWrite      = errors.New("failed to write to outbox")
	ErrInvalidSale      = errors.New("invalid sale")
	ErrPendingCart      = errors.New("a cart is still open")
	ErrShiftNotOpen     = errors.New("no shift is open")
	ErrShiftAlreadyOpen = errors.New("a shift is already open")
	ErrEmptyChangeBatch = errors.New("server reported more changes but sent none")
)
