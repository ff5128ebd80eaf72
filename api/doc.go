// Package api holds the wire contracts exchanged between the facade and its
// backends. Messages are plain Go structs carried over gRPC with the JSON
// codec registered by internal/platform/grpc.
package api
