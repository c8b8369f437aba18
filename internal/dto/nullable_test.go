package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateTaskRequest_AssigneeTriState(t *testing.T) {
	var absent UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"project_id":"p","title":"x"}`), &absent))
	assert.False(t, absent.AssigneeID.Set)

	var null UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"project_id":"p","assignee_id":null}`), &null))
	assert.True(t, null.AssigneeID.Set)
	assert.False(t, null.AssigneeID.Valid)

	var value UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"project_id":"p","assignee_id":"abc"}`), &value))
	assert.True(t, value.AssigneeID.Set)
	assert.True(t, value.AssigneeID.Valid)
	assert.Equal(t, "abc", value.AssigneeID.Value)
}

func TestNullable_RejectsWrongType(t *testing.T) {
	var n Nullable[string]
	assert.Error(t, json.Unmarshal([]byte(`42`), &n))
}
