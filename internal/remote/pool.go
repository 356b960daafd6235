package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"slices"
	"sync/atomic"

	"tilelife/internal/tile"
)

type conn struct {
	addr   string
	client *rpc.Client
}

// Pool dispatches tile tasks round-robin across a fixed set of workers. It
// implements engine.Backend. Failed calls are not retried.
type Pool struct {
	conns     []conn
	convolver string
	next      atomic.Uint64
}

// Dial connects to every address and checks that each worker supports the
// named convolver.
func Dial(ctx context.Context, addrs []string, convolver string) (*Pool, error) {
	if len(addrs) == 0 {
		return nil, errors.New("remote: no worker addresses")
	}
	p := &Pool{convolver: convolver}
	var d net.Dialer
	for _, addr := range addrs {
		nc, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("dial worker %s: %w", addr, err)
		}
		c := conn{addr: addr, client: rpc.NewClient(nc)}
		p.conns = append(p.conns, c)

		var res PingResponse
		if err := c.call(ctx, Ping, PingRequest{Version: ProtocolVersion}, &res); err != nil {
			p.Close()
			return nil, err
		}
		if !slices.Contains(res.Convolvers, convolver) {
			p.Close()
			return nil, fmt.Errorf("worker %s does not support convolver %q", addr, convolver)
		}
	}
	return p, nil
}

func (c conn) call(ctx context.Context, method string, args, reply any) error {
	call := c.client.Go(method, args, reply, make(chan *rpc.Call, 1))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-call.Done:
		if call.Error != nil {
			return fmt.Errorf("worker %s: %w", c.addr, call.Error)
		}
		return nil
	}
}

// Size returns the number of connected workers.
func (p *Pool) Size() int { return len(p.conns) }

// Advance sends task to the next worker and waits for its cells.
func (p *Pool) Advance(ctx context.Context, task tile.Task) ([]uint8, error) {
	c := p.conns[(p.next.Add(1)-1)%uint64(len(p.conns))]
	var res AdvanceResponse
	if err := c.call(ctx, AdvanceTile, AdvanceRequest{Convolver: p.convolver, Task: task}, &res); err != nil {
		return nil, err
	}
	return res.Cells, nil
}

// Close closes every worker connection.
func (p *Pool) Close() error {
	var errs []error
	for _, c := range p.conns {
		if err := c.client.Close(); err != nil && !errors.Is(err, rpc.ErrShutdown) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
