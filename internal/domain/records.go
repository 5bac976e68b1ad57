package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Etl is one fiscal-year import record from the source store. The relational
// schema stores it as a row of app.years.
type Etl struct {
	ID       primitive.ObjectID  `bson:"_id"`
	Profile  primitive.ObjectID  `bson:"profile"`
	Year     int                 `bson:"year"`
	Validity *primitive.DateTime `bson:"validity"`
	Visible  bool                `bson:"visible"`
}

// Event is a tracked municipal event (investment action, project) from the
// source store. SrcID is the identifier assigned by the upstream accounting
// system; it is kept as a raw string because source data contains non-numeric
// and empty values.
type Event struct {
	ID      primitive.ObjectID `bson:"_id"`
	Profile primitive.ObjectID `bson:"profile"`
	Year    int                `bson:"year"`
	SrcID   string             `bson:"srcId"`
	Name    string             `bson:"name"`
}

// Payment is a single expenditure payment record from the source store.
type Payment struct {
	ID               primitive.ObjectID  `bson:"_id"`
	Profile          primitive.ObjectID  `bson:"profile"`
	Event            primitive.ObjectID  `bson:"event"`
	Year             int                 `bson:"year"`
	Paragraph        string              `bson:"paragraph"`
	Item             string              `bson:"item"`
	Amount           float64             `bson:"amount"`
	Date             *primitive.DateTime `bson:"date"`
	CounterpartyID   string              `bson:"counterpartyId"`
	CounterpartyName string              `bson:"counterpartyName"`
	Description      string              `bson:"description"`
}
