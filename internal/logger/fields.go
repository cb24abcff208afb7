package logger

// Standard field keys used across capture and restore passes.
// Keeping the key names in one place keeps log output greppable.
const (
	KeyPath    = "path"
	KeyCommand = "command"
	KeyRef     = "ref"
	KeyStore   = "store"
	KeyCount   = "count"
	KeyError   = "error"
)
