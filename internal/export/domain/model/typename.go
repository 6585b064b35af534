package model

import (
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint represents a geographical point.
type GeoPoint struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// Reference represents a reference to another document.
type Reference string

// Canonical type tags reported for field values.
const (
	TypeNull      = "null"
	TypeString    = "string"
	TypeBoolean   = "boolean"
	TypeInteger   = "integer"
	TypeDouble    = "double"
	TypeTimestamp = "timestamp"
	TypeBytes     = "bytes"
	TypeReference = "reference"
	TypeGeoPoint  = "geopoint"
	TypeArray     = "array"
	TypeMap       = "map"
	TypeUnknown   = "unknown"
)

// TypeName returns the canonical type tag for a decoded field value.
// Values arrive as the mongo driver decodes them into interface{}, so the
// switch covers both plain Go types and the driver's primitive types.
func TypeName(value interface{}) string {
	switch value.(type) {
	case nil:
		return TypeNull
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	case int, int8, int16, int32, int64:
		return TypeInteger
	case float32, float64:
		return TypeDouble
	case primitive.Decimal128:
		return TypeDouble
	case time.Time:
		return TypeTimestamp
	case primitive.DateTime, primitive.Timestamp:
		return TypeTimestamp
	case []byte:
		return TypeBytes
	case primitive.Binary:
		return TypeBytes
	case Reference:
		return TypeReference
	case primitive.ObjectID:
		return TypeReference
	case GeoPoint, *GeoPoint:
		return TypeGeoPoint
	case primitive.A, []interface{}:
		return TypeArray
	case primitive.M, primitive.D, map[string]interface{}:
		return TypeMap
	default:
		return typeNameReflect(value)
	}
}

// typeNameReflect covers concrete map and slice types the switch cannot
// enumerate, e.g. map[string]string produced by a caller-built snapshot.
func typeNameReflect(value interface{}) string {
	switch reflect.TypeOf(value).Kind() {
	case reflect.Map, reflect.Struct:
		return TypeMap
	case reflect.Slice, reflect.Array:
		return TypeArray
	default:
		return TypeUnknown
	}
}

// DescribeFields maps every top-level field of a document's data to its
// type tag. The result is never nil; an empty document yields an empty map.
func DescribeFields(data map[string]interface{}) map[string]string {
	fields := make(map[string]string, len(data))
	for fieldName, value := range data {
		fields[fieldName] = TypeName(value)
	}
	return fields
}
