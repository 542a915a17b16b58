// Package version carries build information set through -ldflags.
package version

// Version is the application version, overridden at build time with
// -ldflags "-X github.com/ndewijer/TradeTrack-Backend/internal/version.Version=1.2.3".
var Version = "dev"
