package validators

import "go.mongodb.org/mongo-driver/bson"

var ClassroomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"code",
			"active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"code": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 30,
				"pattern":   `^[A-Z0-9]+(-[A-Z0-9]+)*$`,
			},

			"capacity": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  1000,
			},

			"has_projector": bson.M{
				"bsonType": "bool",
			},

			"has_whiteboard": bson.M{
				"bsonType": "bool",
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
