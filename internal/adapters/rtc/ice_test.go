package rtc

import (
	"encoding/json"
	"testing"

	"github.com/dkeye/Meet/internal/config"
	"github.com/stretchr/testify/require"
)

func TestICEServers_FallbackToPublicSTUN(t *testing.T) {
	req := require.New(t)

	servers := ICEServers(nil)

	req.Len(servers, 1)
	req.Equal([]string{"stun:stun.l.google.com:19302"}, servers[0].URLs)
}

func TestICEServers_CarriesTURNCredentials(t *testing.T) {
	req := require.New(t)

	servers := ICEServers([]config.ICEServer{
		{URLs: []string{"stun:stun.example.org:3478"}},
		{URLs: []string{"turn:turn.example.org:3478"}, Username: "u", Credential: "p"},
	})

	req.Len(servers, 2)
	req.Empty(servers[0].Username)
	req.Equal("u", servers[1].Username)
	req.Equal("p", servers[1].Credential)

	// Then the JSON shape is what browsers expect
	raw, err := json.Marshal(servers[1])
	req.NoError(err)
	var decoded map[string]any
	req.NoError(json.Unmarshal(raw, &decoded))
	req.Equal([]any{"turn:turn.example.org:3478"}, decoded["urls"])
	req.Equal("u", decoded["username"])
	req.Equal("p", decoded["credential"])
}
