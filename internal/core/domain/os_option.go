package domain

import "errors"

var ErrOSOptionNotFound = errors.New("os option not found")
var ErrDuplicateOSOption = errors.New("os option already exists")

// OSOption is a reference-data value for the operating system installed on
// an asset. Names are unique; there is no further lifecycle.
type OSOption struct {
	ID   string `json:"id" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
}
