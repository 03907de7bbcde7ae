// Package config resolves the effective configuration of the web host.
//
// Configuration is assembled from ranked sources; a later (higher-rank)
// source overrides the keys it shares with earlier ones:
//  1. Base JSON file (App_Data/appsettings.json), required
//  2. Overlay JSON file (App_Data/{Directory}/appsettings.json), loaded only
//     when both the `appsettings` and `Directory` keys are set by the
//     environment or the command line
//  3. Environment variables (`__` is read as the `:` key separator)
//  4. Command-line arguments (`--key=value`)
//
// Keys are hierarchical (`Section:Key`) and case-insensitive. The merged
// [Configuration] is bound to the typed [StructuredConfig] once at startup by
// [GetStructuredConfig]; file sources can be watched for changes with
// [Watcher].
package config
