// Package errors provides the coarse error taxonomy shared by txfacade services.
package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unclassified failure.
	CodeUnknown Code = "UNKNOWN"
	// CodeValidation marks bad or missing input. It is never retried.
	CodeValidation Code = "VALIDATION"
	// CodeUpstream marks a backend that was unreachable, answered with a
	// non-OK status, or replied with an undecodable body.
	CodeUpstream Code = "UPSTREAM"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeValidation:
		return codes.InvalidArgument
	case CodeUpstream:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// codeFromGRPC maps a gRPC status code back to the closest domain code.
func codeFromGRPC(c codes.Code) Code {
	switch c {
	case codes.InvalidArgument:
		return CodeValidation
	case codes.Unavailable, codes.DeadlineExceeded:
		return CodeUpstream
	default:
		return CodeUnknown
	}
}
