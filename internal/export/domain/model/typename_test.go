package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTypeName(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"nil", nil, TypeNull},
		{"string", "hello", TypeString},
		{"bool", true, TypeBoolean},
		{"int", 42, TypeInteger},
		{"int32", int32(7), TypeInteger},
		{"int64", int64(7), TypeInteger},
		{"float64", 3.14, TypeDouble},
		{"decimal128", primitive.NewDecimal128(0, 1), TypeDouble},
		{"time", time.Now(), TypeTimestamp},
		{"bson datetime", primitive.NewDateTimeFromTime(time.Now()), TypeTimestamp},
		{"bytes", []byte{1, 2}, TypeBytes},
		{"bson binary", primitive.Binary{Data: []byte{1}}, TypeBytes},
		{"reference", Reference("users/u1"), TypeReference},
		{"object id", primitive.NewObjectID(), TypeReference},
		{"geopoint", GeoPoint{Latitude: 1, Longitude: 2}, TypeGeoPoint},
		{"bson array", primitive.A{1, 2}, TypeArray},
		{"plain slice", []interface{}{1, "a"}, TypeArray},
		{"typed slice", []string{"a"}, TypeArray},
		{"bson m", bson.M{"a": 1}, TypeMap},
		{"bson d", bson.D{{Key: "a", Value: 1}}, TypeMap},
		{"plain map", map[string]interface{}{"a": 1}, TypeMap},
		{"typed map", map[string]string{"a": "b"}, TypeMap},
		{"unknown", make(chan int), TypeUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TypeName(tc.value))
		})
	}
}

func TestDescribeFields(t *testing.T) {
	fields := DescribeFields(map[string]interface{}{
		"name":    "a",
		"age":     int64(3),
		"tags":    primitive.A{"x"},
		"profile": bson.M{"bio": "y"},
		"deleted": nil,
	})

	assert.Equal(t, map[string]string{
		"name":    TypeString,
		"age":     TypeInteger,
		"tags":    TypeArray,
		"profile": TypeMap,
		"deleted": TypeNull,
	}, fields)
}

func TestDescribeFields_EmptyDocument(t *testing.T) {
	fields := DescribeFields(map[string]interface{}{})
	require.NotNil(t, fields)
	assert.Empty(t, fields)
}

func TestStructureNode_JSONOmitsEmpty(t *testing.T) {
	node := NewStructureNode().Strip()
	raw, err := json.Marshal(node)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))

	node = &StructureNode{Fields: map[string]string{"name": TypeString}}
	raw, err = json.Marshal(node)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fields":{"name":"string"}}`, string(raw))
}
