package cart

import "errors"

var (
	ErrInvalidItem     = errors.New("invalid item")
	ErrItemNotSelected = errors.New("item not selected")
)
