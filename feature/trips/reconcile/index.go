package reconcile

import (
	"time"

	"triprecord/feature/trips/models"
)

const dayLayout = "2006-01-02"

// visitKey addresses trips by visit reference and trip type (tier 1).
type visitKey struct {
	VisitID  string
	TypeTrip string
}

// shipDayKey addresses trips by normalized ship name, trip type and calendar
// date (tier 2). Struct keys avoid the delimiter collisions a concatenated
// string key would invite on free-text ship names.
type shipDayKey struct {
	Ship     string
	TypeTrip string
	Day      string
}

// Indexes are the in-memory lookup structures one run builds over all trips.
// Buckets hold pointers into the loaded slice, in load order; the tie-break
// rule depends on that order being stable.
type Indexes struct {
	// ByVisit buckets trips carrying a visit reference, keyed by
	// (visitid, typeTrip). Multiple trips may share a key.
	ByVisit map[visitKey][]*models.Trip

	// ByShipDay buckets trips with both a ship name and a boarding time,
	// keyed by (ship, typeTrip, date).
	ByShipDay map[shipDayKey][]*models.Trip

	// ByChargeID maps migratedFromChargeID to the trip a previous run
	// created for that charge. It makes orphan creation re-run safe.
	ByChargeID map[string]*models.Trip
}

// BuildIndexes builds all lookup indexes over the loaded trips in one pass.
func BuildIndexes(trips []models.Trip) *Indexes {
	ix := &Indexes{
		ByVisit:    make(map[visitKey][]*models.Trip),
		ByShipDay:  make(map[shipDayKey][]*models.Trip),
		ByChargeID: make(map[string]*models.Trip),
	}

	for i := range trips {
		trip := &trips[i]

		if trip.VisitID != nil && *trip.VisitID != "" {
			key := visitKey{VisitID: *trip.VisitID, TypeTrip: trip.TypeTrip}
			ix.ByVisit[key] = append(ix.ByVisit[key], trip)
		}

		if ship := models.NormalizeShip(trip.Ship); ship != "" && trip.Boarding != nil {
			key := shipDayKey{
				Ship:     ship,
				TypeTrip: trip.TypeTrip,
				Day:      dayKey(*trip.Boarding),
			}
			ix.ByShipDay[key] = append(ix.ByShipDay[key], trip)
		}

		if trip.MigratedFromChargeID != nil && *trip.MigratedFromChargeID != "" {
			ix.ByChargeID[*trip.MigratedFromChargeID] = trip
		}
	}

	return ix
}

// dayKey renders the calendar date of a boarding time as an index key.
func dayKey(t time.Time) string {
	return t.UTC().Format(dayLayout)
}
