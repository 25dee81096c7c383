package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKPIValueNumericRoundTripsThroughJSON(t *testing.T) {
	original := NewNumericKPI("complexity", 12.5)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded KPIValue
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, KindNumeric, decoded.Kind())
	assert.Equal(t, 12.5, decoded.Numeric())
	assert.Equal(t, "complexity", decoded.Name)
}

func TestKPIValueOwnershipRoundTripsThroughJSON(t *testing.T) {
	original := NewOwnershipKPI("code_ownership", Ownership{
		Authors:      []AuthorShare{{Name: "alice", Share: 90}},
		PrimaryOwner: "alice",
	})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded KPIValue
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, KindOwnership, decoded.Kind())
	assert.Equal(t, "alice", decoded.Ownership().PrimaryOwner)
}

func TestKPIValueClassificationRoundTripsThroughJSON(t *testing.T) {
	original := NewClassificationKPI("shared_ownership", "Single owner: alice")

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded KPIValue
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, KindClassification, decoded.Kind())
	assert.Equal(t, "Single owner: alice", decoded.Classification())
}

func TestKPIValuePanicsOnWrongAccessor(t *testing.T) {
	numeric := NewNumericKPI("complexity", 1)
	assert.Panics(t, func() { numeric.Ownership() })
	assert.Panics(t, func() { numeric.Classification() })
}
