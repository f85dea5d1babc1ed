package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// The join pipeline is the relational heart of the request workflow;
// pin its stage structure so a refactor cannot silently change the
// inner-join or decoration semantics.
func TestAssetJoinPipelineShape(t *testing.T) {
	pipeline := assetJoinPipeline("employ.email", "emp@corp.com")
	require.Len(t, pipeline, 6)

	assert.Equal(t, bson.D{{Key: "$match", Value: bson.D{{Key: "employ.email", Value: "emp@corp.com"}}}}, pipeline[0])
	assert.Equal(t, bson.D{{Key: "$addFields", Value: bson.D{
		{Key: "assetId", Value: bson.D{{Key: "$toObjectId", Value: "$requestId"}}},
	}}}, pipeline[1])
	assert.Equal(t, bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: "assets"},
		{Key: "localField", Value: "assetId"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "assets"},
	}}}, pipeline[2])
	assert.Equal(t, bson.D{{Key: "$unwind", Value: "$assets"}}, pipeline[3])
	assert.Equal(t, bson.D{{Key: "$addFields", Value: bson.D{
		{Key: "name", Value: "$assets.assetsName"},
		{Key: "companyName", Value: "$assets.companyName"},
	}}}, pipeline[4])
	assert.Equal(t, bson.D{{Key: "$project", Value: bson.D{{Key: "assets", Value: 0}}}}, pipeline[5])
}

func TestAssetJoinPipelineHRVariant(t *testing.T) {
	pipeline := assetJoinPipeline("assetsOwner", "hr@corp.com")
	assert.Equal(t, bson.D{{Key: "$match", Value: bson.D{{Key: "assetsOwner", Value: "hr@corp.com"}}}}, pipeline[0])
}
