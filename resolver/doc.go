// Package resolver locates and loads referenced assemblies on disk.
//
// A Resolver probes the installed runtime directory for framework
// assemblies (references that carry a public key token) and then a list of
// search directories, trying <name>.dll, <name>.exe and <name>/<name>.dll in
// each. Loading the image is delegated to a Loader. Results are cached by
// assembly full name, and concurrent resolutions of the same reference
// share one load.
//
// Resolution never fails loudly: a reference that cannot be found or whose
// image fails to load is reported as not found, and the cause is logged.
//
// The runtime directory is either configured directly or selected from an
// installation root by runtime name and version:
//
//	dir := resolver.SelectRuntimeDirectory(resolver.FindRuntimeBaseDirectory(),
//		"Microsoft.NETCore.App", "8.0.0")
package resolver
