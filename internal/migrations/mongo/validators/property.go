package validators

import "go.mongodb.org/mongo-driver/bson"

var PropertyValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"owner_id",
			"title",
			"description",
			"location",
			"price_per_night_sen",
			"max_guests",
			"amenities",
			"whatsapp_number",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"owner_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 120,
			},

			"description": bson.M{
				"bsonType":  "string",
				"minLength": 10,
				"maxLength": 5000,
			},

			"location": bson.M{
				"bsonType": "object",
				"required": []string{"address", "city", "state", "postcode"},
				"properties": bson.M{
					"address": bson.M{
						"bsonType":  "string",
						"minLength": 3,
						"maxLength": 200,
					},
					"city": bson.M{
						"bsonType":  "string",
						"minLength": 2,
						"maxLength": 100,
					},
					"state": bson.M{
						"bsonType":  "string",
						"minLength": 2,
						"maxLength": 100,
					},
					"postcode": bson.M{
						"bsonType":  "string",
						"minLength": 5,
						"maxLength": 5,
					},
				},
			},

			"price_per_night_sen": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"max_guests": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  50,
			},

			"bedrooms": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  50,
			},

			"bathrooms": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  50,
			},

			"amenities": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 2,
					"maxLength": 50,
				},
			},

			"whatsapp_number": bson.M{
				"bsonType":  "string",
				"minLength": 8,
				"maxLength": 16,
			},

			"images": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"active",
					"inactive",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
