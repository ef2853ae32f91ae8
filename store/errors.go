package store

import (
	"errors"
	"fmt"

	"fivem-community/types"
)

// ErrBanNotFound is returned when unbanning a user that has no ban record.
var ErrBanNotFound = errors.New("user is not banned")

type UnknownCategoryError struct {
	Kind types.CategoryKind
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown ticket category: %s", e.Kind)
}

type UnknownImageSlotError struct {
	Slot string
}

func (e *UnknownImageSlotError) Error() string {
	return fmt.Sprintf("unknown image slot: %s", e.Slot)
}
