package clrmeta

// Version is the module release reported by cmd/sigdump.
const Version = "0.1.0"
