// Package registry is the table of tile handlers built once at startup.
//
// Modules register a handler per tile identity before any batch runs. The
// batch driver then resolves identities through the registry, and
// ValidateRegistry checks the authored tiles for problems before the first
// evaluation.
package registry
