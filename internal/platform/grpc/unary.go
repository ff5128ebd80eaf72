package grpc

import (
	"context"

	gogrpc "google.golang.org/grpc"
)

// UnaryHandler builds a MethodHandler for a service interface S whose method
// takes *Req and returns *Resp. It decodes the request with the negotiated
// codec and honours server interceptors the same way generated stubs do.
func UnaryHandler[S any, Req any, Resp any](fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) gogrpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor gogrpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &gogrpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// InvokeJSON performs a unary call with the JSON codec and decodes the reply
// into a fresh *Resp.
func InvokeJSON[Resp any](ctx context.Context, cc gogrpc.ClientConnInterface, fullMethod string, in any, opts ...gogrpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, fullMethod, in, out, JSONCallOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}
