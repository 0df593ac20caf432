package config

// Version is the knowbase binary version.
// Set at build time via: -ldflags "-X github.com/knowbaseai/knowbase/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
