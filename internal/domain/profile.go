// Package domain holds the source document models, the relational row types
// they migrate into, and the shared conversion rules between the two.
package domain

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUnknownStatus is returned when a source profile carries a status value
// outside the recognized vocabulary.
var ErrUnknownStatus = errors.New("unknown profile status")

// profileStatuses maps the source-store status vocabulary to the relational one.
var profileStatuses = map[string]string{
	"active":  "visible",
	"pending": "pending",
	"hidden":  "hidden",
}

// MapStatus translates a source profile status into the target vocabulary.
func MapStatus(status string) (string, error) {
	mapped, ok := profileStatuses[status]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	return mapped, nil
}

// Avatar is the avatar subdocument embedded in a source profile. Data is only
// populated by the dedicated avatar fetch; the profile listing projects it out.
type Avatar struct {
	Name string           `bson:"name"`
	Data primitive.Binary `bson:"data"`
}

// Profile is a municipality profile as stored in the source document store.
type Profile struct {
	ID             primitive.ObjectID `bson:"_id"`
	Name           string             `bson:"name"`
	Status         string             `bson:"status"`
	URL            string             `bson:"url"`
	Email          string             `bson:"email"`
	ICO            string             `bson:"ico"`
	Edesky         *int64             `bson:"edesky"`
	Mapasamospravy *int64             `bson:"mapasamospravy"`
	GPS            []float64          `bson:"gps"`
	Avatar         *Avatar            `bson:"avatar"`
}
