// mcp/protocol.go
// Definisi struktur dasar MCP protocol

package mcp

// ToolRequest adalah amplop request ke /mcp/route.
// Params berisi payload tool; field "question" di dalamnya dipakai router
// untuk memilih tool bila "tool" kosong.
type ToolRequest struct {
	Tool   string      `json:"tool"`
	Params interface{} `json:"params"`
}

type ToolResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
