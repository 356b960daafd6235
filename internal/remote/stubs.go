// Package remote evaluates tile tasks on worker processes over net/rpc.
package remote

import "tilelife/internal/tile"

// RPC method names served by Worker.
var (
	AdvanceTile = "Worker.AdvanceTile"
	Ping        = "Worker.Ping"
)

// AdvanceRequest carries one self-contained tile task.
type AdvanceRequest struct {
	Convolver string
	Task      tile.Task
}

// AdvanceResponse holds the tile's next cells, row-major.
type AdvanceResponse struct {
	Cells []uint8
}

// ProtocolVersion changes whenever the request or response types do.
const ProtocolVersion = 1

// PingRequest announces the caller's protocol version.
type PingRequest struct {
	Version int
}

// PingResponse lists the convolvers the worker can run.
type PingResponse struct {
	Convolvers []string
}
