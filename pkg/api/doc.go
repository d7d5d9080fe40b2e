// Package api defines the wire messages of the groupspend v1 services.
//
// Messages are plain structs carried as JSON by the codec in package
// apiconnect. Field names follow the snake_case JSON convention of the web
// client.
package api
