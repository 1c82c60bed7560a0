/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
	"testing"
)

const (
	APIServer = "api_server"
)

var (
	IsDevelopment bool
	ServiceName   string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "service name reported to logging and tracing")
	// Parsing here breaks `go test` binaries: the testing package registers
	// its -test.* flags after package init, so an init-time Parse rejects
	// them. Under tests the framework calls flag.Parse itself before running.
	if !testing.Testing() {
		flag.Parse()
	}
}
