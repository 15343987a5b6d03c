package subgrapherrors

import "errors"

var ErrUnsupportedNetwork = errors.New("unsupported network")
var ErrTransport = errors.New("subgraph transport error")
var ErrUpstream = errors.New("subgraph returned errors")
var ErrMalformedResponse = errors.New("malformed subgraph response")
var ErrUnknown = errors.New("unknown error")
