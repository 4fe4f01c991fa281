package handler

import (
	"encoding/json"
	"testing"

	"Orbit_Community/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpaceReqCarriesAllFields(t *testing.T) {
	body := `{"name":"general","description":"chit chat","icon":"star",` +
		`"visibility":"paid","post_permission":"moderators","required_tier":"pro"}`
	var req SpaceReq
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	in := req.toInput()
	assert.Equal(t, "general", in.Name)
	assert.Equal(t, "chit chat", in.Description)
	assert.Equal(t, "star", in.Icon)
	assert.Equal(t, model.SpacePaid, in.Visibility)
	assert.Equal(t, model.PostByModerators, in.PostPermission)
	assert.Equal(t, "pro", in.RequiredTier)
}
