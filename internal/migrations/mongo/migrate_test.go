package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestCollections(t *testing.T) {
	defs := Collections()
	if len(defs) != 2 || defs[0].Name != "Hotels" || defs[1].Name != "Bookings" {
		t.Fatalf("unexpected collections %+v", defs)
	}

	for _, def := range defs {
		schema, ok := def.Validator["$jsonSchema"].(bson.M)
		if !ok {
			t.Fatalf("%s: validator has no $jsonSchema", def.Name)
		}
		required, _ := schema["required"].([]string)
		if len(required) == 0 {
			t.Errorf("%s: no required fields", def.Name)
		}
		if len(def.Indexes) == 0 {
			t.Errorf("%s: no indexes", def.Name)
		}
	}
}

func TestBookingsIndexes_CoverLookups(t *testing.T) {
	leading := map[string]bool{}
	for _, idx := range BookingsIndexes {
		keys := idx.Keys.(bson.D)
		leading[keys[0].Key] = true
	}
	for _, field := range []string{"user_id", "hotel_id"} {
		if !leading[field] {
			t.Errorf("no index leads with %s", field)
		}
	}
}
