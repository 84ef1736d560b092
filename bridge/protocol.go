package bridge

// ProtocolVersion is the Model Context Protocol version the bridge speaks
// when it has to answer an initialize request on the remote's behalf.
const ProtocolVersion = "2024-11-05"

// ServerInfo identifies the bridge when it synthesizes a local initialize
// response.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ServerCapabilities represents the server's supported capabilities. The
// local fallback advertises none; the fields exist so a populated remote
// result round-trips through the same shape in tests.
type ServerCapabilities struct {
	Experimental map[string]interface{} `json:"experimental,omitempty"`
	Logging      *struct{}              `json:"logging,omitempty"`
	Tools        *struct {
		ListChanged bool `json:"listChanged"`
	} `json:"tools,omitempty"`
}

// Tool represents a single tool descriptor
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	InputSchema map[string]interface{} `json:"inputSchema,omitempty"`
}

// InitializeResult is the minimal initialize response the bridge emits
// when the remote's initialize attempt fails.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
	Tools           []Tool             `json:"tools"`
}
