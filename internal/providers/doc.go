// Package providers holds clients for data that lives outside a workspace.
//
// Available Providers:
//   - songs: the Spotify playlist, built in or refreshed from a remote URL
package providers
