// Package config provides configuration loading, merging, and validation
// facilities for the familylists client.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags (assembled by the CLI layer)
//  3. JSON config file
//
// The main entry points are [GetStructuredConfig] for the merged raw view
// and [GetClientConfig] for the validated client runtime configuration.
package config
