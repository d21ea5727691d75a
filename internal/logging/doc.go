// Package logging builds the structured zap logger shared by the storage
// and repair components.
package logging
