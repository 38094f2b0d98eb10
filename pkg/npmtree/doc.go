// Package npmtree queries and decodes pnpm dependency trees.
//
// The package has two halves: a [Source] that shells out to the package
// manager for a production dependency listing, and [Parse], which decodes the
// listing into workspace entries.
//
// # Querying
//
// [ExecSource] runs "pnpm list --prod --depth Infinity --json" in a workspace
// directory. pnpm frequently exits non-zero for warnings while still printing
// a complete tree on stdout, so a non-zero exit with non-empty stdout is
// treated as success. Only a query that yields no usable output fails, with a
// SOURCE_UNAVAILABLE error.
//
// # Decoding
//
// The listing is either a single workspace entry or an array of entries (one
// per workspace project). Both decode to []Entry. The same physical package
// may appear as many nodes at different tree positions, all sharing one Path;
// consumers deduplicate by Path (see the closure package).
package npmtree
