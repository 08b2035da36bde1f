package database

import "context"

// FakeConn 是測試用的 Conn；未設定的 Ping/Close 會 panic
type FakeConn struct {
	State    ReadyState
	HostName string
	DBName   string
	PingFn   func(ctx context.Context) error
	CloseFn  func(ctx context.Context) error
}

func (f *FakeConn) ReadyState() ReadyState { return f.State }
func (f *FakeConn) Host() string           { return f.HostName }
func (f *FakeConn) Name() string           { return f.DBName }

func (f *FakeConn) Ping(ctx context.Context) error {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	panic("unexpected Ping")
}

func (f *FakeConn) Close(ctx context.Context) error {
	if f.CloseFn != nil {
		return f.CloseFn(ctx)
	}
	panic("unexpected Close")
}

var _ Conn = (*FakeConn)(nil)
