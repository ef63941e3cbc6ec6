// Package output renders derived tracker views and filter listings and
// sends them to their destination.
//
// The package is organized around three concerns:
//
//   - Formatting (format.go): table, CSV, JSON and YAML renderings of a
//     view. The table format paints annotated values with their display
//     color unless color is disabled.
//
//   - Registry (registry.go): formats are looked up by name through a
//     [Registry], so commands share one set of renderers.
//
//   - Writers (writer.go): output destinations via the [Writer] interface,
//     with [StdoutWriter] and [FileWriter] implementations.
package output
