package application

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var errBlankID = validation.NewError("validation_required", "cannot be blank")

// RequiredID rejects uuid.Nil. validation.Required cannot, because a UUID is
// a fixed-size array and never counts as empty. In and NotIn do not work
// either: they compare the driver.Valuer string form, not the UUID.
var RequiredID = validation.By(func(value any) error {
	switch id := value.(type) {
	case uuid.UUID:
		if id == uuid.Nil {
			return errBlankID
		}
	case *uuid.UUID:
		if id != nil && *id == uuid.Nil {
			return errBlankID
		}
	}
	return nil
})
