package validators

import "go.mongodb.org/mongo-driver/bson"

var LessonValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"classroom_id",
			"date",
			"start_time",
			"status",
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
				"maxLength": 150,
			},

			"course_name": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"subject_name": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"classroom_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"start_time": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{2}:\d{2}$`,
			},

			"end_time": bson.M{
				"bsonType": "string",
				"pattern":  `^(\d{2}:\d{2})?$`,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"draft",
					"scheduled",
					"active",
					"completed",
					"cancelled",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
