package validators

import "go.mongodb.org/mongo-driver/bson"

var HotelValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"name", "location", "image", "price", "description", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":         bson.M{"bsonType": "objectId"},
			"name":        bson.M{"bsonType": "string", "minLength": 1, "maxLength": 200},
			"location":    bson.M{"bsonType": "string", "minLength": 1, "maxLength": 200},
			"image":       bson.M{"bsonType": "string", "minLength": 1},
			"price":       bson.M{"bsonType": []string{"double", "int", "long", "decimal"}, "minimum": 0},
			"description": bson.M{"bsonType": "string"},
			"amenities": bson.M{
				"bsonType": "array",
				"maxItems": 100,
				"items":    bson.M{"bsonType": "string"},
			},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
