package models

import (
	"strings"
	"time"

	"triprecord/core/utils"
)

// Trip types shared by charges and trips.
const (
	TripIn        = "In"
	TripOut       = "Out"
	TripAnchorage = "Anchorage"
	TripShift     = "Shift"
	TripOther     = "Other"
)

// SourceMigration tags trips created by the charge migration.
const SourceMigration = "migration"

// Charge is a legacy billing record from the old intake. Charges are
// append-mostly and read-only for the reconciliation engine; their field
// quality varies, boarding in particular holds whatever the intake wrote.
type Charge struct {
	ID          string     `gorm:"column:id;primaryKey" json:"id"`
	Ship        string     `gorm:"column:ship" json:"ship"`
	GT          float64    `gorm:"column:gt" json:"gt"`
	Boarding    string     `gorm:"column:boarding" json:"boarding"`
	TypeTrip    string     `gorm:"column:type_trip" json:"typeTrip"`
	Port        string     `gorm:"column:port" json:"port"`
	Pilot       string     `gorm:"column:pilot" json:"pilot"`
	VisitID     *string    `gorm:"column:visit_id" json:"visitid"`
	CreatedBy   string     `gorm:"column:created_by" json:"createdBy"`
	CreatedByID string     `gorm:"column:created_by_id" json:"createdById"`
	UpdatedAt   *time.Time `gorm:"column:updated_at" json:"updatedAt"`
	SailingNote string     `gorm:"column:sailing_note" json:"sailingNote"`
	ExtraNote   string     `gorm:"column:extra_note" json:"extraNote"`
}

// TableName maps Charge onto the legacy charge collection.
func (Charge) TableName() string {
	return "charges"
}

// BoardingTime interprets the raw legacy boarding value.
// The second return value is false when the value is absent or unparseable.
func (c *Charge) BoardingTime() (time.Time, bool) {
	return utils.CoerceTime(c.Boarding)
}

// HasVisitRef reports whether the charge carries a usable visit reference.
func (c *Charge) HasVisitRef() bool {
	return c.VisitID != nil && strings.TrimSpace(*c.VisitID) != ""
}

// Trip is the normalized operational record owned by the live visit workflow.
// A confirmed trip is an immutable billing snapshot; an unconfirmed trip is a
// mutable draft awaiting confirmation.
type Trip struct {
	ID                   string     `gorm:"column:id;primaryKey" json:"id"`
	VisitID              *string    `gorm:"column:visit_id" json:"visitid"`
	TypeTrip             string     `gorm:"column:type_trip" json:"typeTrip"`
	Boarding             *time.Time `gorm:"column:boarding" json:"boarding"`
	Port                 string     `gorm:"column:port" json:"port"`
	Pilot                string     `gorm:"column:pilot" json:"pilot"`
	Ship                 string     `gorm:"column:ship" json:"ship"`
	GT                   float64    `gorm:"column:gt" json:"gt"`
	IsConfirmed          bool       `gorm:"column:is_confirmed" json:"isConfirmed"`
	ConfirmedBy          string     `gorm:"column:confirmed_by" json:"confirmedBy"`
	ConfirmedByID        string     `gorm:"column:confirmed_by_id" json:"confirmedById"`
	ConfirmedAt          *time.Time `gorm:"column:confirmed_at" json:"confirmedAt"`
	Note                 string     `gorm:"column:note" json:"note"`
	ExtraNote            string     `gorm:"column:extra_note" json:"extraNote"`
	Source               string     `gorm:"column:source" json:"source,omitempty"`
	MigratedFromChargeID *string    `gorm:"column:migrated_from_charge_id" json:"migratedFromChargeId,omitempty"`
}

// TableName maps Trip onto the live trip collection.
func (Trip) TableName() string {
	return "trips"
}

// NormalizeShip canonicalizes a free-text ship name for index keys.
func NormalizeShip(ship string) string {
	return strings.ToLower(strings.TrimSpace(ship))
}
