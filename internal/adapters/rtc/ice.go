// Package rtc exposes the media-layer settings clients need to build their
// own peer connections. The server never terminates media itself.
package rtc

import (
	"github.com/dkeye/Meet/internal/config"
	"github.com/pion/webrtc/v4"
)

var defaultICEServers = []webrtc.ICEServer{
	{URLs: []string{"stun:stun.l.google.com:19302"}},
}

// ICEServers converts configured servers into the RTCIceServer shape browsers
// accept. An empty list falls back to a public STUN server.
func ICEServers(servers []config.ICEServer) []webrtc.ICEServer {
	if len(servers) == 0 {
		return defaultICEServers
	}
	out := make([]webrtc.ICEServer, 0, len(servers))
	for _, s := range servers {
		ice := webrtc.ICEServer{URLs: s.URLs}
		if s.Username != "" {
			ice.Username = s.Username
			ice.Credential = s.Credential
			ice.CredentialType = webrtc.ICECredentialTypePassword
		}
		out = append(out, ice)
	}
	return out
}
